package textutil

import (
	"reflect"
	"testing"
)

func TestCountWords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"  spaced   out  words ", 3},
		{"tabs\tand\nnewlines", 3},
	}
	for _, tt := range tests {
		if got := CountWords(tt.in); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCountChars(t *testing.T) {
	if got := CountChars("a b c", true); got != 5 {
		t.Errorf("CountChars with spaces = %d, want 5", got)
	}
	if got := CountChars("a b c", false); got != 3 {
		t.Errorf("CountChars without spaces = %d, want 3", got)
	}
	if got := CountChars("héllo", true); got != 5 {
		t.Errorf("CountChars counts runes, got %d, want 5", got)
	}
}

func TestReverse(t *testing.T) {
	if got := Reverse("abc"); got != "cba" {
		t.Errorf("Reverse(abc) = %q", got)
	}
	if got := Reverse("héllo"); got != "olléh" {
		t.Errorf("Reverse(héllo) = %q", got)
	}
}

func TestCaseConversions(t *testing.T) {
	tests := []struct {
		in                 string
		snake, kebab, camel string
	}{
		{"Hello World", "hello_world", "hello-world", "helloWorld"},
		{"alreadyCamelCase", "already_camel_case", "already-camel-case", "alreadyCamelCase"},
		{"with-mixed_separators here", "with_mixed_separators_here", "with-mixed-separators-here", "withMixedSeparatorsHere"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		if got := SnakeCase(tt.in); got != tt.snake {
			t.Errorf("SnakeCase(%q) = %q, want %q", tt.in, got, tt.snake)
		}
		if got := KebabCase(tt.in); got != tt.kebab {
			t.Errorf("KebabCase(%q) = %q, want %q", tt.in, got, tt.kebab)
		}
		if got := CamelCase(tt.in); got != tt.camel {
			t.Errorf("CamelCase(%q) = %q, want %q", tt.in, got, tt.camel)
		}
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("hello world"); got != "Hello World" {
		t.Errorf("TitleCase = %q, want %q", got, "Hello World")
	}
}

func TestCollapseSpaces(t *testing.T) {
	if got := CollapseSpaces("  a \t b \n c  "); got != "a b c" {
		t.Errorf("CollapseSpaces = %q, want %q", got, "a b c")
	}
}

func TestExtractEmails(t *testing.T) {
	in := "contact a@example.com or b.c+tag@sub.example.org today"
	want := []string{"a@example.com", "b.c+tag@sub.example.org"}
	if got := ExtractEmails(in); !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractEmails = %v, want %v", got, want)
	}
}

func TestExtractURLs(t *testing.T) {
	in := "see https://example.com/a?b=1 and http://test.org."
	got := ExtractURLs(in)
	if len(got) != 2 {
		t.Fatalf("ExtractURLs found %d URLs, want 2", len(got))
	}
	if got[0] != "https://example.com/a?b=1" {
		t.Errorf("first URL = %q", got[0])
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 8, "..."); got != "hello..." {
		t.Errorf("Truncate = %q, want %q", got, "hello...")
	}
	if got := Truncate("short", 10, "..."); got != "short" {
		t.Errorf("Truncate should not cut short strings, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("<p>hello <b>world</b></p>"); got != "hello world" {
		t.Errorf("StripTags = %q, want %q", got, "hello world")
	}
}

func TestCountOccurrences(t *testing.T) {
	if got := CountOccurrences("Go go GO", "go", false); got != 3 {
		t.Errorf("case-insensitive count = %d, want 3", got)
	}
	if got := CountOccurrences("Go go GO", "go", true); got != 1 {
		t.Errorf("case-sensitive count = %d, want 1", got)
	}
	if got := CountOccurrences("abc", "", true); got != 0 {
		t.Errorf("empty substr count = %d, want 0", got)
	}
}

func TestReplaceAll(t *testing.T) {
	got := ReplaceAll("a b c", map[string]string{"a": "x", "c": "z"})
	if got != "x b z" {
		t.Errorf("ReplaceAll = %q, want %q", got, "x b z")
	}
}
