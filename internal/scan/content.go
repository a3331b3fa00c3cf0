package scan

import (
	"unicode/utf8"

	"github.com/dshills/githuntr/internal/entropy"
	"github.com/dshills/githuntr/internal/match"
)

// BlobFinding holds the content-derived scan dimensions for one blob: the
// content pattern matches and the entropy secret candidates. Filename
// matching is path-derived and intentionally excluded so a BlobFinding stays
// valid for a renamed-but-unchanged file.
type BlobFinding struct {
	ContentMatches   []string
	SecretCandidates []string

	// Undecodable marks bytes that are not valid UTF-8. Such a blob yields
	// no finding at all, not even a filename match, and cacheing the bit
	// means the bytes are decoded only once.
	Undecodable bool
}

// Empty reports whether neither dimension matched.
func (b BlobFinding) Empty() bool {
	return len(b.ContentMatches) == 0 && len(b.SecretCandidates) == 0
}

// ContentScanner scans raw file bytes. It performs no I/O of its own; bytes
// are supplied by the caller so the blob cache can short-circuit it.
type ContentScanner struct {
	matcher *match.Matcher
	entropy bool
}

// NewContentScanner returns a scanner applying the given matcher, with
// entropy analysis enabled or not.
func NewContentScanner(m *match.Matcher, entropyEnabled bool) *ContentScanner {
	return &ContentScanner{matcher: m, entropy: entropyEnabled}
}

// ScanBlob decodes raw bytes as UTF-8 and runs the content pattern and,
// when enabled, entropy analysis. Bytes that are not valid UTF-8 are treated
// as binary and yield an undecodable finding; this is an expected condition,
// not an error.
func (s *ContentScanner) ScanBlob(raw []byte) BlobFinding {
	if !utf8.Valid(raw) {
		return BlobFinding{Undecodable: true}
	}
	text := string(raw)
	finding := BlobFinding{ContentMatches: s.matcher.ContentMatches(text)}
	if s.entropy {
		finding.SecretCandidates = entropy.Candidates(text)
	}
	return finding
}
