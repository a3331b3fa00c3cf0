package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dshills/githuntr/internal/scan"
)

// TextWriter outputs a human-readable scan summary.
type TextWriter struct{}

var (
	headerColor = color.New(color.FgCyan)
	branchColor = color.New(color.FgGreen, color.Bold)
	commitColor = color.New(color.FgYellow, color.Bold)
	secretColor = color.New(color.FgRed)
)

func (t *TextWriter) Write(w io.Writer, report *scan.Report) error {
	ew := &errWriter{w: w}

	headerColor.Fprintf(w, "GitHuntr scan — %s\n", report.Repo)
	ew.println(strings.Repeat("─", 60))

	for _, name := range report.Branches() {
		tree, _ := report.Branch(name)
		branchColor.Fprintf(w, "\nbranch %s", name)
		if tree.Empty() {
			ew.println("  (no findings)")
			continue
		}
		ew.println("")
		writeTree(ew, w, tree)
	}

	if hashes := report.CommitHashes(); len(hashes) > 0 {
		ew.println("\n" + strings.Repeat("─", 60))
		headerColor.Fprintf(w, "commit history — %d commits with findings\n", len(hashes))
		for _, hash := range hashes {
			finding, _ := report.Commit(hash)
			commitColor.Fprintf(w, "\ncommit %s", finding.Commit.ShortHash())
			ew.printf("  %s <%s>  %s\n", finding.Commit.Author,
				finding.Commit.Date.Format("2006-01-02"), firstLine(finding.Commit.Message))
			writeTree(ew, w, finding.TreeResult)
		}
	}

	return ew.err
}

func writeTree(ew *errWriter, w io.Writer, tree *scan.TreeResult) {
	for _, path := range tree.Filenames {
		ew.printf("  filename  %s\n", path)
	}
	for path, matches := range tree.Content {
		ew.printf("  content   %s  (%d matches)\n", path, len(matches))
	}
	for path, candidates := range tree.Entropy {
		ew.printf("  entropy   %s\n", path)
		for _, c := range candidates {
			secretColor.Fprintf(w, "            %s\n", c)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// errWriter accumulates the first write error so formatting code stays flat.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) println(s string) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintln(e.w, s)
}
