package scan

import (
	"bytes"
	"encoding/json"
	"time"
)

// FileFinding is the result of scanning one file. A finding with no matched
// dimension is discarded by the caller, never stored.
type FileFinding struct {
	Path             string
	FilenameMatch    bool
	ContentMatches   []string
	SecretCandidates []string
}

// Empty reports whether no dimension matched.
func (f FileFinding) Empty() bool {
	return !f.FilenameMatch && len(f.ContentMatches) == 0 && len(f.SecretCandidates) == 0
}

// TreeResult aggregates the findings for one tree (branch tip or commit),
// partitioned into the three reporting views. A path appears in a view only
// if that view's dimension actually matched.
type TreeResult struct {
	Filenames []string            `json:"filenames"`
	Content   map[string][]string `json:"content"`
	Entropy   map[string][]string `json:"entropy"`
}

// NewTreeResult returns an empty TreeResult with all views initialized, so an
// empty result serializes as empty collections rather than null.
func NewTreeResult() *TreeResult {
	return &TreeResult{
		Filenames: []string{},
		Content:   map[string][]string{},
		Entropy:   map[string][]string{},
	}
}

// Add records a finding's matched dimensions in the corresponding views.
// Empty findings contribute nothing.
func (t *TreeResult) Add(f FileFinding) {
	if f.FilenameMatch {
		t.Filenames = append(t.Filenames, f.Path)
	}
	if len(f.ContentMatches) > 0 {
		t.Content[f.Path] = f.ContentMatches
	}
	if len(f.SecretCandidates) > 0 {
		t.Entropy[f.Path] = f.SecretCandidates
	}
}

// Empty reports whether no view holds any finding.
func (t *TreeResult) Empty() bool {
	return len(t.Filenames) == 0 && len(t.Content) == 0 && len(t.Entropy) == 0
}

// CommitInfo is the immutable metadata attached to a qualifying commit.
type CommitInfo struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}

// ShortHash returns the abbreviated commit hash used in logs and summaries.
func (c CommitInfo) ShortHash() string {
	return shortHash(c.Hash)
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

// CommitFinding is a TreeResult for one historical commit plus that commit's
// metadata. Created once per qualifying commit and never mutated.
type CommitFinding struct {
	*TreeResult
	Commit CommitInfo `json:"commit_info"`
}

// Report is the top-level scan aggregate: branch results keyed by branch
// name and qualifying history results keyed by commit hash. Insertion order
// is preserved for both and reflected in the serialized output.
type Report struct {
	Repo string

	branchOrder []string
	branches    map[string]*TreeResult

	commitOrder []string
	commits     map[string]*CommitFinding
}

// NewReport returns an empty report for the given repository identifier.
func NewReport(repo string) *Report {
	return &Report{
		Repo:     repo,
		branches: map[string]*TreeResult{},
		commits:  map[string]*CommitFinding{},
	}
}

// AddBranch records the result for a branch, preserving enumeration order.
func (r *Report) AddBranch(name string, tree *TreeResult) {
	if _, ok := r.branches[name]; !ok {
		r.branchOrder = append(r.branchOrder, name)
	}
	r.branches[name] = tree
}

// AddCommit records a qualifying commit finding, preserving insertion order.
func (r *Report) AddCommit(f *CommitFinding) {
	hash := f.Commit.Hash
	if _, ok := r.commits[hash]; !ok {
		r.commitOrder = append(r.commitOrder, hash)
	}
	r.commits[hash] = f
}

// Branches returns branch names in the order they were added.
func (r *Report) Branches() []string {
	return r.branchOrder
}

// Branch returns the result for one branch.
func (r *Report) Branch(name string) (*TreeResult, bool) {
	t, ok := r.branches[name]
	return t, ok
}

// CommitHashes returns qualifying commit hashes in the order they were added.
func (r *Report) CommitHashes() []string {
	return r.commitOrder
}

// Commit returns the finding for one commit hash.
func (r *Report) Commit(hash string) (*CommitFinding, bool) {
	f, ok := r.commits[hash]
	return f, ok
}

// MarshalJSON serializes the report with branches and commit history as JSON
// objects whose key order follows insertion order.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"repo":`)
	if err := encodeTo(&buf, r.Repo); err != nil {
		return nil, err
	}
	buf.WriteString(`,"branches":`)
	if err := encodeOrdered(&buf, r.branchOrder, func(name string) any { return r.branches[name] }); err != nil {
		return nil, err
	}
	buf.WriteString(`,"commit_history":`)
	if err := encodeOrdered(&buf, r.commitOrder, func(hash string) any { return r.commits[hash] }); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeTo(buf *bytes.Buffer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

func encodeOrdered(buf *bytes.Buffer, keys []string, value func(string) any) error {
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeTo(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := encodeTo(buf, value(key)); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}
