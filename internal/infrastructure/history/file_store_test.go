package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/foxbrief/internal/domain"
)

func testRecord(workspace, thread string, ts time.Time) domain.RunRecord {
	return domain.RunRecord{
		Timestamp:     ts,
		WorkspaceSlug: workspace,
		ThreadSlug:    thread,
		IOCCount:      42,
		QuestionCount: 4,
		TurnsOK:       4,
		Status:        "ok",
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := &FileStore{path: filepath.Join(t.TempDir(), "history.jsonl")}

	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	for i, slug := range []string{"run-a", "run-b", "run-c"} {
		if err := store.Save(testRecord("threatfox-daily", slug, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].ThreadSlug != "run-c" {
		t.Errorf("first record = %q, want newest first", records[0].ThreadSlug)
	}
	if records[0].IOCCount != 42 || records[0].Status != "ok" {
		t.Errorf("record fields lost in roundtrip: %+v", records[0])
	}
}

func TestFileStoreLimit(t *testing.T) {
	store := &FileStore{path: filepath.Join(t.TempDir(), "history.jsonl")}
	for _, slug := range []string{"a", "b", "c", "d"} {
		if err := store.Save(testRecord("ws", slug, time.Now())); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.Records(2, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ThreadSlug != "d" || records[1].ThreadSlug != "c" {
		t.Errorf("limit must keep the newest records, got %q, %q", records[0].ThreadSlug, records[1].ThreadSlug)
	}
}

func TestFileStoreSearch(t *testing.T) {
	store := &FileStore{path: filepath.Join(t.TempDir(), "history.jsonl")}
	store.Save(testRecord("threatfox-daily", "2026-08-30-aaaa", time.Now()))
	store.Save(testRecord("incident-review", "2026-08-31-bbbb", time.Now()))

	records, err := store.Records(0, "incident")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 1 || records[0].WorkspaceSlug != "incident-review" {
		t.Errorf("search result = %+v", records)
	}

	records, err = store.Records(0, "2026-08-30")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 1 || records[0].ThreadSlug != "2026-08-30-aaaa" {
		t.Errorf("thread slug search result = %+v", records)
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	store := &FileStore{path: filepath.Join(t.TempDir(), "absent.jsonl")}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from a missing file", len(records))
	}
}
