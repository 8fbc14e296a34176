package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/typedrill/typedrill/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(filepath.Join(dir, "typedrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestKVRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.GetValue(ctx, "settings"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := st.PutValue(ctx, "settings", `{"theme":"dark"}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	value, ok, err := st.GetValue(ctx, "settings")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != `{"theme":"dark"}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := st.PutValue(ctx, "settings", `{"theme":"light"}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = st.GetValue(ctx, "settings")
	if value != `{"theme":"light"}` {
		t.Fatalf("overwrite did not replace value: %q", value)
	}

	if err := st.DeleteValue(ctx, "settings"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := st.GetValue(ctx, "settings"); ok {
		t.Fatalf("expected key gone after delete")
	}
}

func TestProgressQueries(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	records := []model.WordProgress{
		{Word: "ephemeral", Status: model.StatusLearning, LastPracticed: now, NextReview: now.Add(-2 * time.Hour), CorrectCount: 1},
		{Word: "ubiquitous", Status: model.StatusReview, LastPracticed: now, NextReview: now.Add(-24 * time.Hour), IncorrectCount: 2},
		{Word: "serendipity", Status: model.StatusNew, LastPracticed: now, NextReview: now},
		{Word: "mellifluous", Status: model.StatusMastered, LastPracticed: now, NextReview: now.Add(-time.Hour), CorrectCount: 4},
		{Word: "pragmatic", Status: model.StatusLearning, LastPracticed: now, NextReview: now.Add(48 * time.Hour), CorrectCount: 1},
	}
	for _, p := range records {
		if err := st.UpsertProgress(ctx, "user-1", p); err != nil {
			t.Fatalf("upsert %s: %v", p.Word, err)
		}
	}

	// Earliest due among learning/review only; mastered and future reviews
	// are excluded.
	due, ok, err := st.NextDueProgress(ctx, "user-1", now)
	if err != nil || !ok {
		t.Fatalf("next due: ok=%v err=%v", ok, err)
	}
	if due.Word != "ubiquitous" {
		t.Fatalf("expected earliest-due ubiquitous, got %s", due.Word)
	}

	fresh, ok, err := st.FirstNewProgress(ctx, "user-1")
	if err != nil || !ok {
		t.Fatalf("first new: ok=%v err=%v", ok, err)
	}
	if fresh.Word != "serendipity" {
		t.Fatalf("expected serendipity, got %s", fresh.Word)
	}

	all, err := st.ListProgress(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(all))
	}

	// Users are isolated.
	if _, ok, _ := st.NextDueProgress(ctx, "user-2", now); ok {
		t.Fatalf("unexpected progress for other user")
	}

	// Upsert replaces in place.
	due.CorrectCount = 3
	due.Status = model.StatusMastered
	if err := st.UpsertProgress(ctx, "user-1", due); err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	got, ok, err := st.GetProgress(ctx, "user-1", "ubiquitous")
	if err != nil || !ok {
		t.Fatalf("get after update: ok=%v err=%v", ok, err)
	}
	if got.Status != model.StatusMastered || got.CorrectCount != 3 {
		t.Fatalf("update not applied: %+v", got)
	}
}
