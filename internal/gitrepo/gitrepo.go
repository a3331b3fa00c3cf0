package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	log "github.com/sirupsen/logrus"

	"github.com/dshills/githuntr/internal/scan"
)

// Sentinel errors for per-unit failures the engine treats as skips.
var (
	// ErrCheckout wraps failures to materialize a branch snapshot.
	ErrCheckout = errors.New("branch checkout failed")

	// ErrUnreadableBlob wraps blob read failures.
	ErrUnreadableBlob = errors.New("unreadable blob")
)

// Repository is a scannable git repository. Clone-created repositories own a
// temporary working directory that Close removes.
type Repository struct {
	url  string
	dir  string
	repo *git.Repository
}

var _ scan.Source = (*Repository)(nil)

// Clone clones url into a fresh temporary directory. The directory is
// removed again by Close, or immediately if the clone itself fails.
func Clone(ctx context.Context, url string) (*Repository, error) {
	dir, err := os.MkdirTemp("", "githuntr-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	log.WithFields(log.Fields{"url": url, "dir": dir}).Debug("cloning repository")
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{URL: url})
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("cloning %s: %w", url, err)
	}
	return &Repository{url: url, dir: dir, repo: repo}, nil
}

// Open opens an existing repository at path without cloning. Close is a
// no-op for opened repositories; the caller keeps the directory.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &Repository{url: path, repo: repo}, nil
}

// Close releases the temporary working directory, if any.
func (r *Repository) Close() error {
	if r.dir == "" {
		return nil
	}
	return os.RemoveAll(r.dir)
}

// URL returns the identifier the repository was cloned from or opened at.
func (r *Repository) URL() string {
	return r.url
}

// Branches lists branch names in reference enumeration order. Remote-tracking
// branches are preferred (a fresh clone has every branch there); a repository
// with no remote refs falls back to local branches. The symbolic HEAD is
// excluded.
func (r *Repository) Branches() ([]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, fmt.Errorf("listing references: %w", err)
	}
	var names []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference || !ref.Name().IsRemote() {
			return nil
		}
		short := ref.Name().Short() // "origin/main"
		if i := strings.Index(short, "/"); i >= 0 {
			short = short[i+1:]
		}
		if short == "HEAD" {
			return nil
		}
		names = append(names, short)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating references: %w", err)
	}
	if len(names) > 0 {
		return names, nil
	}

	branches, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	err = branches.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating branches: %w", err)
	}
	return names, nil
}

// Snapshot returns the file listing at the tip of branch. Failures to
// resolve the branch are checkout errors the caller skips.
func (r *Repository) Snapshot(branch string) (scan.Snapshot, error) {
	hash, err := r.resolveBranch(branch)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCheckout, branch, err)
	}
	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCheckout, branch, err)
	}
	return treeSnapshot(commit)
}

func (r *Repository) resolveBranch(branch string) (plumbing.Hash, error) {
	if ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true); err == nil {
		return ref.Hash(), nil
	}
	ref, err := r.repo.Reference(plumbing.NewRemoteReferenceName(git.DefaultRemoteName, branch), true)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return ref.Hash(), nil
}

// Commits lists up to max commits across all refs, most recent first. A max
// of zero or less lists every commit.
func (r *Repository) Commits(ctx context.Context, max int) ([]scan.Commit, error) {
	iter, err := r.repo.Log(&git.LogOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}
	defer iter.Close()

	var commits []scan.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if max > 0 && len(commits) >= max {
			return storer.ErrStop
		}
		commits = append(commits, scan.Commit{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Date:    c.Author.When,
			Message: strings.TrimSpace(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}
	return commits, nil
}

// CommitTree returns the file listing as of the commit with the given hash.
func (r *Repository) CommitTree(hash string) (scan.Snapshot, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", hash, err)
	}
	return treeSnapshot(commit)
}

// ReadBlob returns the raw bytes of the blob with the given content
// identifier (its git object hash).
func (r *Repository) ReadBlob(id string) ([]byte, error) {
	blob, err := r.repo.BlobObject(plumbing.NewHash(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableBlob, id, err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableBlob, id, err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableBlob, id, err)
	}
	return data, nil
}

func treeSnapshot(commit *object.Commit) (scan.Snapshot, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("tree of %s: %w", commit.Hash, err)
	}
	var snap scan.Snapshot
	err = tree.Files().ForEach(func(f *object.File) error {
		snap = append(snap, scan.Entry{Path: f.Name, ID: f.Hash.String()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tree of %s: %w", commit.Hash, err)
	}
	return snap, nil
}
