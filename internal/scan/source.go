package scan

import (
	"context"
	"time"
)

// Entry is one file visible in a snapshot: its repository-relative path and
// the content-derived identity of its bytes. Two byte-identical files share
// one ID regardless of path or commit.
type Entry struct {
	Path string
	ID   string
}

// Snapshot is the complete file listing visible at one point in a repository:
// a branch tip or a historical commit. Snapshots are produced fresh per
// branch or commit and never mutated.
type Snapshot []Entry

// Commit is the immutable metadata of one commit.
type Commit struct {
	Hash    string
	Author  string
	Date    time.Time
	Message string
}

// Source is the version-control provider the engine scans. Implementations
// must return branches and commits in a deterministic order; commits are
// reverse-chronological. Blob reads are the only blocking I/O the engine
// performs and may be called concurrently.
type Source interface {
	// Branches lists branch names in enumeration order.
	Branches() ([]string, error)

	// Snapshot returns the file listing at the tip of the named branch.
	// An error means the branch could not be materialized; the caller
	// skips it.
	Snapshot(branch string) (Snapshot, error)

	// Commits lists up to max commits, most recent first. A max of zero or
	// less means all commits.
	Commits(ctx context.Context, max int) ([]Commit, error)

	// CommitTree returns the file listing as of the given commit.
	CommitTree(hash string) (Snapshot, error)

	// ReadBlob returns the raw bytes for a content identifier.
	ReadBlob(id string) ([]byte, error)
}
