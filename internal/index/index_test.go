package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mwhitt/arc/internal/archive"
)

// setupIndex creates an index in a temp directory.
func setupIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "archive_db.idx.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testRecords() []*archive.Record {
	report := archive.NewRecord("A-001", "Annual report", "2025-01-01",
		"Archive Office", archive.ModeText, "Budget summary for the fiscal year", nil)
	memo := archive.NewRecord("B-002", "Relocation memo", "2025-02-10",
		"Facilities", archive.ModeText, "The reading room moves to building 4", nil)
	return []*archive.Record{report, memo}
}

func TestPathFor(t *testing.T) {
	if got := PathFor("/data/archive_db.json"); got != "/data/archive_db.idx.db" {
		t.Errorf("PathFor = %q, want %q", got, "/data/archive_db.idx.db")
	}
	if got := PathFor("archive_db"); got != "archive_db.idx.db" {
		t.Errorf("PathFor = %q, want %q", got, "archive_db.idx.db")
	}
}

func TestRebuildAndSearch(t *testing.T) {
	idx := setupIndex(t)

	n, err := idx.Rebuild(testRecords(), func(r *archive.Record) string { return r.Content })
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if n != 2 {
		t.Errorf("Rebuild = %d, want 2", n)
	}

	// Title match
	hits, err := idx.Search("annual", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Index != "A-001" {
		t.Fatalf("Search(annual) = %+v, want A-001", hits)
	}

	// Body match
	hits, err = idx.Search("reading room", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Index != "B-002" {
		t.Fatalf("Search(reading room) = %+v, want B-002", hits)
	}

	// No match
	hits, err = idx.Search("nonexistent", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("Search(nonexistent) = %+v, want none", hits)
	}
}

func TestRebuildReplacesOldEntries(t *testing.T) {
	idx := setupIndex(t)

	if _, err := idx.Rebuild(testRecords(), nil); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if _, err := idx.Rebuild(testRecords()[:1], nil); err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}

	hits, err := idx.Search("memo", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("stale entry survived rebuild: %+v", hits)
	}
}

func TestStalenessHash(t *testing.T) {
	idx := setupIndex(t)

	stale, err := idx.NeedsRebuild("abc")
	if err != nil {
		t.Fatalf("NeedsRebuild: %v", err)
	}
	if !stale {
		t.Error("fresh index should report stale")
	}

	if err := idx.SetStoredHash("abc"); err != nil {
		t.Fatalf("SetStoredHash: %v", err)
	}
	stale, err = idx.NeedsRebuild("abc")
	if err != nil {
		t.Fatalf("NeedsRebuild: %v", err)
	}
	if stale {
		t.Error("matching hash should not be stale")
	}

	stale, _ = idx.NeedsRebuild("other")
	if !stale {
		t.Error("changed hash should be stale")
	}
}

func TestLastRebuildTime(t *testing.T) {
	idx := setupIndex(t)

	got, err := idx.LastRebuildTime()
	if err != nil {
		t.Fatalf("LastRebuildTime: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("LastRebuildTime = %v, want zero", got)
	}

	now := time.Now().Truncate(time.Second)
	if err := idx.SetLastRebuildTime(now); err != nil {
		t.Fatalf("SetLastRebuildTime: %v", err)
	}
	got, err = idx.LastRebuildTime()
	if err != nil {
		t.Fatalf("LastRebuildTime: %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("LastRebuildTime = %v, want %v", got, now)
	}
}

func TestComputeSourceHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive_db.json")

	missing, err := ComputeSourceHash(path)
	if err != nil {
		t.Fatalf("ComputeSourceHash(missing): %v", err)
	}
	if missing == "" {
		t.Error("missing document should hash as empty content")
	}

	if err := os.WriteFile(path, []byte(`{"records":[]}`), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	first, err := ComputeSourceHash(path)
	if err != nil {
		t.Fatalf("ComputeSourceHash: %v", err)
	}
	if first == missing {
		t.Error("content change should change the hash")
	}

	second, _ := ComputeSourceHash(path)
	if first != second {
		t.Error("hash should be deterministic")
	}
}

func TestPrepareFTSQuery(t *testing.T) {
	if got := PrepareFTSQuery("annual report"); got != "annual report" {
		t.Errorf("plain query = %q", got)
	}
	if got := PrepareFTSQuery(`build-4 "room"`); got != `"build-4 ""room"""` {
		t.Errorf("escaped query = %q", got)
	}
	if got := PrepareFTSQuery("   "); got != "" {
		t.Errorf("blank query = %q", got)
	}
}
