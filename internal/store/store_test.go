package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/funvibe/fixed/internal/calc"
	"github.com/google/uuid"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	set, revisit := calc.Reference()
	results, total, err := calc.Run(set, revisit)
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	stored, err := s.Record(ctx, Run{Source: "reference", Total: total, Results: results})
	if err != nil {
		t.Fatalf("Record() unexpected error: %v", err)
	}
	if stored.ID == uuid.Nil {
		t.Error("Record() did not assign an ID")
	}
	if stored.Started.IsZero() {
		t.Error("Record() did not assign a start time")
	}

	runs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() unexpected error: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Recent() returned %d runs, want 1", len(runs))
	}
	got := runs[0]
	if got.ID != stored.ID {
		t.Errorf("ID = %s, want %s", got.ID, stored.ID)
	}
	if got.Source != "reference" || got.Total != total {
		t.Errorf("run = %+v, want source=reference total=%v", got, total)
	}
	if len(got.Results) != len(results) {
		t.Fatalf("got %d results, want %d", len(got.Results), len(results))
	}
	for i := range results {
		if got.Results[i] != results[i] {
			t.Errorf("result %d = %+v, want %+v", i, got.Results[i], results[i])
		}
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	base := time.Unix(1700000000, 0)
	for i, src := range []string{"a", "b", "c"} {
		if _, err := s.Record(ctx, Run{Source: src, Total: float64(i), Started: base.Add(time.Duration(i) * time.Second)}); err != nil {
			t.Fatalf("Record(%s) unexpected error: %v", src, err)
		}
	}

	runs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Recent(2) returned %d runs", len(runs))
	}
	if runs[0].Source != "c" || runs[1].Source != "b" {
		t.Errorf("order = %s,%s; want c,b", runs[0].Source, runs[1].Source)
	}
	if !runs[0].Started.Equal(base.Add(2 * time.Second)) {
		t.Errorf("Started = %v, want %v", runs[0].Started, base.Add(2*time.Second))
	}
}

func TestRecordDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	id := uuid.New()
	if _, err := s.Record(ctx, Run{ID: id, Source: "first"}); err != nil {
		t.Fatalf("first Record() unexpected error: %v", err)
	}
	if _, err := s.Record(ctx, Run{ID: id, Source: "second"}); err == nil {
		t.Fatal("expected error recording duplicate id")
	}

	runs, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() unexpected error: %v", err)
	}
	if len(runs) != 1 || runs[0].Source != "first" {
		t.Errorf("runs = %+v, want only the first", runs)
	}
}

func TestOpenFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if _, err := s.Record(ctx, Run{Source: "file", Total: 1}); err != nil {
		t.Fatalf("Record() unexpected error: %v", err)
	}
	s.Close()

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen unexpected error: %v", err)
	}
	defer s.Close()
	runs, err := s.Recent(ctx, 1)
	if err != nil || len(runs) != 1 {
		t.Fatalf("Recent() = %v, %v; want one run", runs, err)
	}
}
