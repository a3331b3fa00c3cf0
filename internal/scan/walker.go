package scan

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/dshills/githuntr/internal/match"
)

// TreeWalker scans every file of a snapshot, routing blob scans through the
// cache and assembling the per-tree result. Files whose bytes cannot be
// retrieved or decoded are skipped, never fatal.
type TreeWalker struct {
	source  Source
	scanner *ContentScanner
	matcher *match.Matcher
	cache   *BlobCache
}

// NewTreeWalker returns a walker over the given source. The matcher must be
// the same one the scanner was built with, so the filename view and the
// content view agree.
func NewTreeWalker(source Source, scanner *ContentScanner, matcher *match.Matcher, cache *BlobCache) *TreeWalker {
	return &TreeWalker{source: source, scanner: scanner, matcher: matcher, cache: cache}
}

// Walk scans every entry of snap and returns the assembled TreeResult. It
// returns an error only when ctx is cancelled; per-file failures are skipped.
func (w *TreeWalker) Walk(ctx context.Context, snap Snapshot) (*TreeResult, error) {
	result := NewTreeResult()
	for _, entry := range snap {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isVCSInternal(entry.Path) {
			continue
		}

		blob, err := w.cache.GetOrCompute(entry.ID, func() (BlobFinding, error) {
			raw, err := w.source.ReadBlob(entry.ID)
			if err != nil {
				return BlobFinding{}, err
			}
			return w.scanner.ScanBlob(raw), nil
		})
		if err != nil {
			// Read failures are routine for partial clones and pruned
			// objects; too frequent to warn about.
			log.WithFields(log.Fields{"path": entry.Path, "error": err}).Debug("skipping unreadable blob")
			continue
		}
		if blob.Undecodable {
			// A decode failure excludes the file entirely, even from the
			// filename view.
			continue
		}

		finding := FileFinding{
			Path:             entry.Path,
			FilenameMatch:    w.matcher.MatchFilename(entry.Path),
			ContentMatches:   blob.ContentMatches,
			SecretCandidates: blob.SecretCandidates,
		}
		if finding.Empty() {
			continue
		}
		result.Add(finding)
	}
	return result, nil
}

// isVCSInternal reports whether path lies inside version-control internal
// storage and must never be scanned.
func isVCSInternal(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if part == ".git" {
			return true
		}
	}
	return false
}
