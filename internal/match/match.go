package match

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Matcher holds the compiled filename and content patterns for a scan run.
// Either pattern may be absent, in which case that dimension is skipped
// entirely (an absent pattern never matches).
type Matcher struct {
	filename *regexp.Regexp
	content  *regexp.Regexp
}

// Compile validates and compiles both patterns. An empty pattern string means
// that dimension is not used. Invalid patterns are rejected here, before any
// scanning starts.
func Compile(filenamePattern, contentPattern string) (*Matcher, error) {
	m := &Matcher{}
	if filenamePattern != "" {
		re, err := compilePattern(filenamePattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filename pattern: %w", err)
		}
		m.filename = re
	}
	if contentPattern != "" {
		re, err := compilePattern(contentPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid content pattern: %w", err)
		}
		m.content = re
	}
	return m, nil
}

// compilePattern compiles pattern as a regular expression. Glob-style
// wildcards are translated first: a `*` becomes `.*` when the pattern carries
// no other regex metacharacters.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if strings.Contains(pattern, "*") && !strings.ContainsAny(pattern, ".^${}[]()") {
		pattern = strings.ReplaceAll(pattern, "*", ".*")
	}
	return regexp.Compile(pattern)
}

// MatchFilename reports whether the base name of path matches the filename
// pattern. The pattern is searched, not anchored. False when no filename
// pattern was supplied.
func (m *Matcher) MatchFilename(path string) bool {
	if m.filename == nil {
		return false
	}
	return m.filename.MatchString(filepath.Base(path))
}

// ContentMatches returns every non-overlapping match of the content pattern
// in text, in order of occurrence. Nil when no content pattern was supplied
// or nothing matched.
func (m *Matcher) ContentMatches(text string) []string {
	if m.content == nil {
		return nil
	}
	return m.content.FindAllString(text, -1)
}
