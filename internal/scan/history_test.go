package scan

import (
	"context"
	"fmt"
	"testing"
)

func newTestHistoryScanner(t *testing.T, src Source, contentPattern string, workers int) *HistoryScanner {
	t.Helper()
	walker := newTestWalker(t, src, "", contentPattern, false)
	return NewHistoryScanner(src, walker, workers)
}

func TestHistoryScan_OnlyQualifyingCommits(t *testing.T) {
	src := newFakeSource()
	src.putBlob("hit", []byte("password=topsecretvalue"))
	src.putBlob("miss", []byte("nothing interesting"))
	src.addCommit("c1", Snapshot{{Path: "app.env", ID: "hit"}})
	src.addCommit("c2", Snapshot{{Path: "notes.txt", ID: "miss"}})
	src.addCommit("c3", Snapshot{{Path: "app.env", ID: "hit"}})

	h := newTestHistoryScanner(t, src, "password", 2)
	findings, err := h.Scan(context.Background(), 0)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(findings) != 2 {
		t.Fatalf("got %d qualifying commits, want 2", len(findings))
	}
	// Iteration order preserved regardless of worker completion order.
	if findings[0].Commit.Hash != "c1" || findings[1].Commit.Hash != "c3" {
		t.Errorf("qualifying order = [%s %s], want [c1 c3]", findings[0].Commit.Hash, findings[1].Commit.Hash)
	}
	if findings[0].Commit.Author == "" || findings[0].Commit.Message == "" {
		t.Error("commit metadata must be carried on the finding")
	}
}

func TestHistoryScan_MaxCommitsBound(t *testing.T) {
	src := newFakeSource()
	src.putBlob("hit", []byte("password=topsecretvalue"))
	for i := 0; i < 1000; i++ {
		src.addCommit(fmt.Sprintf("c%03d", i), Snapshot{{Path: "app.env", ID: "hit"}})
	}

	h := newTestHistoryScanner(t, src, "password", 4)
	findings, err := h.Scan(context.Background(), 10)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if src.requestedMax != 10 {
		t.Errorf("source asked for %d commits, want 10", src.requestedMax)
	}
	if len(findings) != 10 {
		t.Fatalf("processed %d commits, want 10", len(findings))
	}
	// The bound selects the most recent commits in iteration order.
	if findings[0].Commit.Hash != "c000" || findings[9].Commit.Hash != "c009" {
		t.Errorf("bounded scan covered [%s..%s], want [c000..c009]", findings[0].Commit.Hash, findings[9].Commit.Hash)
	}
}

func TestHistoryScan_UnreadableTreeSkipped(t *testing.T) {
	src := newFakeSource()
	src.putBlob("hit", []byte("password=topsecretvalue"))
	src.addCommit("good", Snapshot{{Path: "app.env", ID: "hit"}})
	src.addCommit("corrupt", nil)
	src.failTrees["corrupt"] = true

	h := newTestHistoryScanner(t, src, "password", 1)
	findings, err := h.Scan(context.Background(), 0)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(findings) != 1 || findings[0].Commit.Hash != "good" {
		t.Errorf("findings = %+v, want only commit good", findings)
	}
}

func TestHistoryScan_DedupAcrossCommits(t *testing.T) {
	src := newFakeSource()
	src.putBlob("same", []byte("password=sharedacrosshistory"))
	src.putBlob("changed", []byte("password=sharedacrosshistorX"))
	src.addCommit("c1", Snapshot{{Path: "app.env", ID: "same"}})
	src.addCommit("c2", Snapshot{{Path: "renamed.env", ID: "same"}})
	src.addCommit("c3", Snapshot{{Path: "app.env", ID: "changed"}})

	h := newTestHistoryScanner(t, src, "password", 1)
	findings, err := h.Scan(context.Background(), 0)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got := src.readCount("same"); got != 1 {
		t.Errorf("byte-identical blob read %d times across commits, want 1", got)
	}
	if got := src.readCount("changed"); got != 1 {
		t.Errorf("differing blob read %d times, want 1", got)
	}
	if len(findings) != 3 {
		t.Fatalf("got %d qualifying commits, want 3", len(findings))
	}
	// The cached result still carries the current path.
	if _, ok := findings[1].Content["renamed.env"]; !ok {
		t.Errorf("renamed file finding keyed as %v, want renamed.env", findings[1].Content)
	}
}
