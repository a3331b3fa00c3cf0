package match

import (
	"reflect"
	"testing"
)

func TestCompile_InvalidPatterns(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"bad filename pattern", "[", ""},
		{"bad content pattern", "", "(unclosed"},
		{"bare star with metachars", "*.yaml", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.filename, tt.content); err == nil {
				t.Errorf("Compile(%q, %q) expected error, got nil", tt.filename, tt.content)
			}
		})
	}
}

func TestCompile_GlobTranslation(t *testing.T) {
	m, err := Compile("*token*", "")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !m.MatchFilename("my-token-file.txt") {
		t.Error("expected glob *token* to match my-token-file.txt")
	}
	if m.MatchFilename("config.yaml") {
		t.Error("expected glob *token* not to match config.yaml")
	}
}

func TestMatchFilename(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"suffix anchor", `.*\.yaml$`, "deep/nested/config.yaml", true},
		{"suffix anchor miss", `.*\.yaml$`, "deep/nested/config.yml", false},
		{"substring search", "secret", "prod-secrets.env", true},
		{"base name only", "nested", "deep/nested/config.yaml", false},
		{"absent pattern never matches", "", "anything.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile(tt.pattern, "")
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.pattern, err)
			}
			if got := m.MatchFilename(tt.path); got != tt.want {
				t.Errorf("MatchFilename(%q) with pattern %q = %v, want %v", tt.path, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestContentMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    []string
	}{
		{"all non-overlapping matches", `key=\w+`, "key=AAA key=BBB", []string{"key=AAA", "key=BBB"}},
		{"no match", `key=\w+`, "nothing to see", nil},
		{"absent pattern returns empty", "", "key=AAA", nil},
		{"single match", "password", "the password is hidden", []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Compile("", tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q): %v", tt.pattern, err)
			}
			got := m.ContentMatches(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ContentMatches(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
