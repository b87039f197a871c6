// Package netutil collects small networking helpers: reachability probes,
// local address discovery, and URL parsing/building.
package netutil

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// CheckConnection reports whether a TCP connection to host:port can be
// established within timeout.
func CheckConnection(host string, port int, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, fmt.Sprint(port)), timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// IsPortOpen is an alias of CheckConnection kept for symmetry with the CLI
// verbs.
func IsPortOpen(host string, port int, timeout time.Duration) bool {
	return CheckConnection(host, port, timeout)
}

// LocalIP returns the machine's outbound IPv4 address. No packets are sent;
// the UDP dial only selects a route.
func LocalIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", pberrors.Wrap(pberrors.ErrCodeNetwork, err, "determining local address")
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String(), nil
}

// Hostname returns the machine's hostname.
func Hostname() (string, error) {
	return os.Hostname()
}

// URLParts is the decomposition of a parsed URL.
type URLParts struct {
	Scheme   string
	Host     string
	Port     string
	Path     string
	Query    map[string]string
	Fragment string
}

// IsValidURL reports whether s parses as an absolute http(s) URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ParseURL decomposes an absolute URL into its parts. Repeated query keys
// keep their first value.
func ParseURL(s string) (URLParts, error) {
	u, err := url.Parse(s)
	if err != nil {
		return URLParts{}, pberrors.Wrap(pberrors.ErrCodeInvalidInput, err, "parsing %s", s)
	}
	if u.Scheme == "" || u.Host == "" {
		return URLParts{}, pberrors.New(pberrors.ErrCodeInvalidInput, "%s is not an absolute URL", s)
	}
	query := make(map[string]string)
	for key, values := range u.Query() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}
	return URLParts{
		Scheme:   u.Scheme,
		Host:     u.Hostname(),
		Port:     u.Port(),
		Path:     u.Path,
		Query:    query,
		Fragment: u.Fragment,
	}, nil
}

// BuildURL appends params to base as a query string, keys sorted for
// deterministic output.
func BuildURL(base string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", pberrors.Wrap(pberrors.ErrCodeInvalidInput, err, "parsing %s", base)
	}
	q := u.Query()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, params[k])
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Domain returns the registrable host of the URL, with any "www." prefix
// stripped.
func Domain(s string) (string, error) {
	parts, err := ParseURL(s)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(parts.Host, "www."), nil
}

// Encode percent-encodes s for safe use in a query component.
func Encode(s string) string {
	return url.QueryEscape(s)
}

// Decode reverses percent-encoding.
func Decode(s string) (string, error) {
	out, err := url.QueryUnescape(s)
	if err != nil {
		return "", pberrors.Wrap(pberrors.ErrCodeInvalidInput, err, "decoding %q", s)
	}
	return out, nil
}
