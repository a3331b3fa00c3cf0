package scan

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// HistoryScanner walks historical commits, bounded by an optional maximum,
// and keeps only commits with at least one finding. Commits whose trees
// cannot be read are skipped with a warning.
type HistoryScanner struct {
	source  Source
	walker  *TreeWalker
	workers int
}

// NewHistoryScanner returns a scanner processing up to workers commits
// concurrently.
func NewHistoryScanner(source Source, walker *TreeWalker, workers int) *HistoryScanner {
	if workers < 1 {
		workers = 1
	}
	return &HistoryScanner{source: source, walker: walker, workers: workers}
}

// Scan processes at most maxCommits commits (all when maxCommits <= 0),
// most recent first, and returns the qualifying findings in commit-iteration
// order regardless of which worker finished first.
func (h *HistoryScanner) Scan(ctx context.Context, maxCommits int) ([]*CommitFinding, error) {
	commits, err := h.source.Commits(ctx, maxCommits)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}
	log.WithField("commits", len(commits)).Info("scanning commit history")

	results := make([]*CommitFinding, len(commits))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.workers)
	for i, commit := range commits {
		i, commit := i, commit
		g.Go(func() error {
			snap, err := h.source.CommitTree(commit.Hash)
			if err != nil {
				log.WithFields(log.Fields{"commit": shortHash(commit.Hash), "error": err}).Warn("could not read commit tree, skipping")
				return nil
			}
			tree, err := h.walker.Walk(gctx, snap)
			if err != nil {
				return err
			}
			if tree.Empty() {
				return nil
			}
			results[i] = &CommitFinding{
				TreeResult: tree,
				Commit: CommitInfo{
					Hash:    commit.Hash,
					Author:  commit.Author,
					Date:    commit.Date,
					Message: commit.Message,
				},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var findings []*CommitFinding
	for _, r := range results {
		if r != nil {
			findings = append(findings, r)
		}
	}
	return findings, nil
}
