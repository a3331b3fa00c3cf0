package scan

import (
	"context"
	"errors"
	"sync"
	"time"
)

// fakeSource is an in-memory Source for engine tests. It counts blob reads
// so cache behavior can be asserted.
type fakeSource struct {
	branches []string
	tips     map[string]Snapshot // branch -> snapshot
	commits  []Commit
	trees    map[string]Snapshot // commit hash -> snapshot
	blobs    map[string][]byte   // content id -> bytes

	failTips  map[string]bool // branches whose snapshot fails
	failTrees map[string]bool // commits whose tree fails

	mu           sync.Mutex
	reads        map[string]int
	requestedMax int
}

var errFakeUnavailable = errors.New("unavailable")

func newFakeSource() *fakeSource {
	return &fakeSource{
		tips:      map[string]Snapshot{},
		trees:     map[string]Snapshot{},
		blobs:     map[string][]byte{},
		failTips:  map[string]bool{},
		failTrees: map[string]bool{},
		reads:     map[string]int{},
	}
}

// addBranch registers a branch whose tip holds the given files, storing each
// file's bytes under a caller-chosen content id.
func (f *fakeSource) addBranch(name string, files map[string]string) {
	f.branches = append(f.branches, name)
	var snap Snapshot
	for path, content := range files {
		id := name + ":" + path
		f.blobs[id] = []byte(content)
		snap = append(snap, Entry{Path: path, ID: id})
	}
	f.tips[name] = snap
}

// addCommit registers a commit whose tree references existing blob ids.
func (f *fakeSource) addCommit(hash string, entries Snapshot) {
	f.commits = append(f.commits, Commit{
		Hash:    hash,
		Author:  "Test Author",
		Date:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Message: "commit " + hash,
	})
	f.trees[hash] = entries
}

func (f *fakeSource) putBlob(id string, content []byte) {
	f.blobs[id] = content
}

func (f *fakeSource) readCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads[id]
}

func (f *fakeSource) Branches() ([]string, error) {
	return f.branches, nil
}

func (f *fakeSource) Snapshot(branch string) (Snapshot, error) {
	if f.failTips[branch] {
		return nil, errFakeUnavailable
	}
	snap, ok := f.tips[branch]
	if !ok {
		return nil, errFakeUnavailable
	}
	return snap, nil
}

func (f *fakeSource) Commits(_ context.Context, max int) ([]Commit, error) {
	f.mu.Lock()
	f.requestedMax = max
	f.mu.Unlock()
	if max > 0 && max < len(f.commits) {
		return f.commits[:max], nil
	}
	return f.commits, nil
}

func (f *fakeSource) CommitTree(hash string) (Snapshot, error) {
	if f.failTrees[hash] {
		return nil, errFakeUnavailable
	}
	tree, ok := f.trees[hash]
	if !ok {
		return nil, errFakeUnavailable
	}
	return tree, nil
}

func (f *fakeSource) ReadBlob(id string) ([]byte, error) {
	f.mu.Lock()
	f.reads[id]++
	f.mu.Unlock()
	data, ok := f.blobs[id]
	if !ok {
		return nil, errFakeUnavailable
	}
	return data, nil
}
