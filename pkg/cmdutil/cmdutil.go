// Package cmdutil exposes a small catalog of common shell commands, a
// context-aware runner for them, and basic host information.
package cmdutil

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
	"sort"

	pberrors "github.com/pagebinder/pagebinder/pkg/errors"
)

// Command describes one catalog entry.
type Command struct {
	Name        string
	Category    string
	Description string
	Example     string
}

// Catalog returns the reference list of common shell commands, grouped by
// category and sorted by name within it.
func Catalog() []Command {
	cmds := []Command{
		{"ls", "file ops", "list directory contents", "ls -la"},
		{"cp", "file ops", "copy files and directories", "cp src dest"},
		{"mv", "file ops", "move or rename files", "mv old new"},
		{"rm", "file ops", "remove files", "rm file.txt"},
		{"find", "file ops", "search for files", "find . -name '*.pdf'"},
		{"uname", "system info", "print system information", "uname -a"},
		{"df", "system info", "report disk usage", "df -h"},
		{"free", "system info", "report memory usage", "free -m"},
		{"uptime", "system info", "show load and uptime", "uptime"},
		{"ping", "network", "probe a host", "ping -c 4 example.com"},
		{"curl", "network", "transfer data from a URL", "curl -O https://example.com/file.pdf"},
		{"ss", "network", "list sockets", "ss -tlnp"},
		{"ps", "process", "list processes", "ps aux"},
		{"kill", "process", "signal a process", "kill -TERM 1234"},
		{"top", "process", "monitor processes", "top"},
		{"tar", "archive", "create or extract tarballs", "tar -czf out.tar.gz dir/"},
		{"zip", "archive", "create zip archives", "zip -r out.zip dir/"},
		{"unzip", "archive", "extract zip archives", "unzip out.zip"},
	}
	sort.Slice(cmds, func(i, j int) bool {
		if cmds[i].Category != cmds[j].Category {
			return cmds[i].Category < cmds[j].Category
		}
		return cmds[i].Name < cmds[j].Name
	})
	return cmds
}

// Run executes name with args, capturing stdout and stderr separately. The
// context cancels the process.
func Run(ctx context.Context, name string, args ...string) (string, string, error) {
	if name == "" {
		return "", "", pberrors.New(pberrors.ErrCodeInvalidInput, "no command given")
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		err = pberrors.Wrap(pberrors.ErrCodeInternal, err, "running %s", name)
	}
	return stdout.String(), stderr.String(), err
}

// Info holds basic facts about the host and process.
type Info struct {
	OS        string
	Arch      string
	CPUs      int
	GoVersion string
	Hostname  string
	WorkDir   string
}

// SystemInfo collects host information. Hostname and working directory are
// best-effort and left empty on error.
func SystemInfo() Info {
	info := Info{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPUs:      runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}
	if wd, err := os.Getwd(); err == nil {
		info.WorkDir = wd
	}
	return info
}
