package journal_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/datalang/dlc/internal/journal"
)

func openTemp(t *testing.T) *journal.Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestAppendAndRecent(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	if err := j.Append(ctx, "a.datalang", 0, 1); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := j.Append(ctx, "b.datalang", 2, 0); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := j.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].FilePath != "b.datalang" || records[0].Succeeded {
		t.Errorf("expected most recent record to be the failed b.datalang compile, got %+v", records[0])
	}
	if records[1].FilePath != "a.datalang" || !records[1].Succeeded {
		t.Errorf("expected the older record to be the successful a.datalang compile, got %+v", records[1])
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := j.Append(ctx, "x.datalang", 0, 0); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	records, err := j.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected limit to cap at 2 records, got %d", len(records))
	}
}

func TestAppendAfterCloseErrors(t *testing.T) {
	j := openTemp(t)
	j.Close()
	if err := j.Append(context.Background(), "x.datalang", 0, 0); err == nil {
		t.Fatalf("expected Append on a closed journal to error")
	}
}
