// Package textutil provides string analysis and transformation helpers:
// counting, case conversion, pattern extraction, and basic cleanup.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	spaceRe = regexp.MustCompile(`\s+`)
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	urlRe   = regexp.MustCompile(`https?://[^\s<>"']+`)
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	wordRe  = regexp.MustCompile(`[A-Za-z0-9]+`)
)

// CountWords returns the number of whitespace-separated words in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// CountChars returns the number of runes in s, optionally excluding spaces.
func CountChars(s string, includeSpaces bool) int {
	n := 0
	for _, r := range s {
		if !includeSpaces && unicode.IsSpace(r) {
			continue
		}
		n++
	}
	return n
}

// Reverse returns s with its runes in reverse order.
func Reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// TitleCase capitalizes the first letter of each word.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// SnakeCase converts s to lower snake_case.
func SnakeCase(s string) string {
	return strings.Join(splitWords(s), "_")
}

// KebabCase converts s to lower kebab-case.
func KebabCase(s string) string {
	return strings.Join(splitWords(s), "-")
}

// CamelCase converts s to lowerCamelCase.
func CamelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	caser := cases.Title(language.English)
	for _, w := range words[1:] {
		b.WriteString(caser.String(w))
	}
	return b.String()
}

// CollapseSpaces trims s and folds runs of whitespace into single spaces.
func CollapseSpaces(s string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ExtractEmails returns every email address found in s, in order.
func ExtractEmails(s string) []string {
	return emailRe.FindAllString(s, -1)
}

// ExtractURLs returns every http(s) URL found in s, in order.
func ExtractURLs(s string) []string {
	return urlRe.FindAllString(s, -1)
}

// Truncate shortens s to at most maxLen runes, appending suffix when it
// cuts. The suffix counts toward maxLen.
func Truncate(s string, maxLen int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	cut := maxLen - len([]rune(suffix))
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + suffix
}

// StripTags removes anything that looks like an HTML/XML tag from s.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// CountOccurrences counts non-overlapping occurrences of substr in s.
func CountOccurrences(s, substr string, caseSensitive bool) int {
	if substr == "" {
		return 0
	}
	if !caseSensitive {
		s = strings.ToLower(s)
		substr = strings.ToLower(substr)
	}
	return strings.Count(s, substr)
}

// ReplaceAll applies every old→new replacement in the map to s.
func ReplaceAll(s string, replacements map[string]string) string {
	for old, new := range replacements {
		s = strings.ReplaceAll(s, old, new)
	}
	return s
}

// splitWords lowercases s and splits it into words on any separator or
// camelCase boundary.
func splitWords(s string) []string {
	// Mark camelCase boundaries before tokenizing.
	var marked strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
			marked.WriteByte(' ')
		}
		marked.WriteRune(r)
	}
	return wordRe.FindAllString(strings.ToLower(marked.String()), -1)
}
