package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/typedrill/typedrill/internal/model"
	"github.com/typedrill/typedrill/internal/store"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "typedrill.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return New(st)
}

func sampleResult(wpm int) model.TestResult {
	return model.TestResult{
		WPM:               wpm,
		Accuracy:          95,
		Errors:            3,
		TimeElapsed:       60,
		Timestamp:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		TextSource:        "quotes",
		TextLength:        model.LengthMedium,
		CharactersTyped:   250,
		CharactersCorrect: 247,
	}
}

func TestSettingsDefaultWhenEmpty(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	settings, err := a.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings != model.DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	want := model.DefaultSettings()
	want.Theme = "dark"
	want.TextLength = model.LengthLong
	if err := a.SaveSettings(ctx, want); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	got, err := a.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAppendPrependsNewestFirst(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	for _, wpm := range []int{40, 50, 60} {
		if _, err := a.Append(ctx, sampleResult(wpm)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	results, err := a.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []int{60, 50, 40} {
		if results[i].WPM != want {
			t.Errorf("results[%d].WPM = %d, want %d", i, results[i].WPM, want)
		}
	}
}

func TestAppendEvictsOldestPastCap(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	for i := 0; i < MaxResults+1; i++ {
		if _, err := a.Append(ctx, sampleResult(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	results, err := a.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(results))
	}
	// The first result (wpm 0) falls off; the newest sits at the front.
	if results[0].WPM != MaxResults {
		t.Errorf("newest WPM = %d, want %d", results[0].WPM, MaxResults)
	}
	if results[len(results)-1].WPM != 1 {
		t.Errorf("oldest WPM = %d, want 1", results[len(results)-1].WPM)
	}
}

func TestAggregatesRecomputedFromFullList(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	first := sampleResult(40)
	first.Accuracy = 90
	first.Errors = 5
	second := sampleResult(61)
	second.Accuracy = 100
	second.Errors = 0

	if _, err := a.Append(ctx, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	aggs, err := a.Append(ctx, second)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if aggs.TotalTests != 2 {
		t.Errorf("TotalTests = %d, want 2", aggs.TotalTests)
	}
	if aggs.BestWPM != 61 {
		t.Errorf("BestWPM = %d, want 61", aggs.BestWPM)
	}
	// (40+61)/2 = 50.5 rounds to 51, (90+100)/2 = 95.
	if aggs.AverageWPM != 51 {
		t.Errorf("AverageWPM = %d, want 51", aggs.AverageWPM)
	}
	if aggs.AverageAccuracy != 95 {
		t.Errorf("AverageAccuracy = %d, want 95", aggs.AverageAccuracy)
	}
	if aggs.TotalTime != 120 {
		t.Errorf("TotalTime = %v, want 120", aggs.TotalTime)
	}
	if aggs.TotalErrors != 5 {
		t.Errorf("TotalErrors = %d, want 5", aggs.TotalErrors)
	}
	if aggs.TotalCharacters != 500 {
		t.Errorf("TotalCharacters = %d, want 500", aggs.TotalCharacters)
	}

	stored, err := a.Aggregates(ctx)
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	if stored != aggs {
		t.Errorf("stored aggregates %+v differ from returned %+v", stored, aggs)
	}
}

func TestClearKeepsSettings(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.Theme = "dark"
	if err := a.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if _, err := a.Append(ctx, sampleResult(50)); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := a.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	results, err := a.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results after clear, got %d", len(results))
	}
	aggs, err := a.Aggregates(ctx)
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	if aggs != (model.AggregateStats{}) {
		t.Errorf("expected zero aggregates after clear, got %+v", aggs)
	}
	got, err := a.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got.Theme != "dark" {
		t.Errorf("settings lost on clear: theme = %q", got.Theme)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestArchive(t)
	dst := newTestArchive(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.Theme = "dark"
	if err := src.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if _, err := src.Append(ctx, sampleResult(72)); err != nil {
		t.Fatalf("append: %v", err)
	}

	raw, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var doc ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if doc.Date.IsZero() {
		t.Error("export date not set")
	}

	if err := dst.Import(ctx, raw); err != nil {
		t.Fatalf("import: %v", err)
	}
	gotSettings, err := dst.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if gotSettings.Theme != "dark" {
		t.Errorf("imported theme = %q, want dark", gotSettings.Theme)
	}
	results, err := dst.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != 1 || results[0].WPM != 72 {
		t.Errorf("imported results = %+v, want single 72 WPM entry", results)
	}
	aggs, err := dst.Aggregates(ctx)
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	if aggs.BestWPM != 72 {
		t.Errorf("imported BestWPM = %d, want 72", aggs.BestWPM)
	}
}

func TestImportPartialDocument(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	raw := []byte(`{"results":[{"wpm":44,"accuracy":91,"errors":2,"timeElapsed":55,"timestamp":"2025-05-01T10:00:00Z","textSource":"quotes","textLength":"short","charactersTyped":200,"charactersCorrect":196}]}`)
	if err := a.Import(ctx, raw); err != nil {
		t.Fatalf("import: %v", err)
	}
	results, err := a.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != 1 || results[0].WPM != 44 {
		t.Fatalf("imported results = %+v, want single 44 WPM entry", results)
	}
	// Settings were absent from the document and stay at defaults.
	settings, err := a.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings != model.DefaultSettings() {
		t.Errorf("settings changed by partial import: %+v", settings)
	}
}

func TestImportRejectsMalformedDocument(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	if _, err := a.Append(ctx, sampleResult(50)); err != nil {
		t.Fatalf("append: %v", err)
	}

	cases := []string{
		`{not json`,
		`{"results":"oops"}`,
		`{"settings":[1,2,3]}`,
		`{}`,
	}
	for _, raw := range cases {
		if err := a.Import(ctx, []byte(raw)); err == nil {
			t.Errorf("import %q: expected error", raw)
		}
	}

	// The existing archive survives every failed import untouched.
	results, err := a.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != 1 || results[0].WPM != 50 {
		t.Errorf("archive modified by failed import: %+v", results)
	}
}

func TestComputeAggregatesEmpty(t *testing.T) {
	if got := ComputeAggregates(nil); got != (model.AggregateStats{}) {
		t.Fatalf("expected zero aggregates, got %+v", got)
	}
}

func TestImportTrimsOversizedResultList(t *testing.T) {
	a := newTestArchive(t)
	ctx := context.Background()

	var entries []string
	for i := 0; i < MaxResults+10; i++ {
		entries = append(entries, fmt.Sprintf(`{"wpm":%d,"accuracy":90,"errors":1,"timeElapsed":60,"timestamp":"2025-05-01T10:00:00Z","textSource":"quotes","textLength":"short","charactersTyped":100,"charactersCorrect":99}`, i))
	}
	raw := []byte(`{"results":[` + strings.Join(entries, ",") + `]}`)
	if err := a.Import(ctx, raw); err != nil {
		t.Fatalf("import: %v", err)
	}
	results, err := a.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(results))
	}
}
