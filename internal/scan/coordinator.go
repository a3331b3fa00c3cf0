package scan

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/githuntr/internal/match"
)

// DefaultWorkers bounds branch and commit concurrency when no explicit
// worker count is configured.
const DefaultWorkers = 4

// Config holds the knobs for one scan run.
type Config struct {
	// Repo identifies the repository in the report.
	Repo string

	// Matcher holds the compiled filename/content patterns.
	Matcher *match.Matcher

	// Entropy enables statistical secret detection.
	Entropy bool

	// History enables scanning historical commits after the branches.
	History bool

	// MaxCommits bounds history scanning; zero or less means all commits.
	MaxCommits int

	// Workers bounds branch and commit concurrency.
	Workers int
}

// Coordinator orchestrates a full scan: every branch, then optionally the
// commit history, merged into one report.
type Coordinator struct {
	source Source
	cfg    Config
}

// NewCoordinator returns a coordinator over the given source.
func NewCoordinator(source Source, cfg Config) *Coordinator {
	return &Coordinator{source: source, cfg: cfg}
}

// Run performs the scan and returns the completed report. The blob cache is
// scoped to this call and released on every exit path. On cancellation or
// error no partial report is returned.
func (c *Coordinator) Run(ctx context.Context) (*Report, error) {
	workers := c.cfg.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}

	cache := NewBlobCache()
	defer cache.Clear()

	scanner := NewContentScanner(c.cfg.Matcher, c.cfg.Entropy)
	walker := NewTreeWalker(c.source, scanner, c.cfg.Matcher, cache)

	branches, err := c.source.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	log.WithField("branches", len(branches)).Info("scanning branches")

	// Results land in enumeration-order slots so the report order does not
	// depend on worker completion order.
	trees := make([]*TreeResult, len(branches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, branch := range branches {
		i, branch := i, branch
		g.Go(func() error {
			snap, err := c.source.Snapshot(branch)
			if err != nil {
				log.WithFields(log.Fields{"branch": branch, "error": err}).Warn("could not materialize branch, skipping")
				trees[i] = NewTreeResult()
				return nil
			}
			tree, err := walker.Walk(gctx, snap)
			if err != nil {
				return err
			}
			trees[i] = tree
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := NewReport(c.cfg.Repo)
	for i, branch := range branches {
		report.AddBranch(branch, trees[i])
	}

	if c.cfg.History {
		history := NewHistoryScanner(c.source, walker, workers)
		findings, err := history.Scan(ctx, c.cfg.MaxCommits)
		if err != nil {
			return nil, err
		}
		for _, f := range findings {
			report.AddCommit(f)
		}
	}

	return report, nil
}
