// Package archive keeps the bounded local log of completed tests and its
// rolling aggregate statistics.
package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/typedrill/typedrill/internal/model"
	"github.com/typedrill/typedrill/internal/store"
)

// Namespaced kv entries.
const (
	settingsKey = "typedrill/settings"
	resultsKey  = "typedrill/results"
	statsKey    = "typedrill/stats"
)

// MaxResults bounds the retained result list; appending past the cap evicts
// the oldest entry.
const MaxResults = 100

// Archive is the append-only local result log plus settings and aggregate
// persistence, backed by the kv store.
type Archive struct {
	store *store.Store
}

// New wraps the store.
func New(st *store.Store) *Archive {
	return &Archive{store: st}
}

// Settings loads the stored settings merged over defaults, so settings
// written by an older version keep sensible values for new fields.
func (a *Archive) Settings(ctx context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()
	raw, ok, err := a.store.GetValue(ctx, settingsKey)
	if err != nil {
		return settings, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return model.DefaultSettings(), fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

// SaveSettings persists the settings object.
func (a *Archive) SaveSettings(ctx context.Context, settings model.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := a.store.PutValue(ctx, settingsKey, string(raw)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Results returns the retained result list, newest first.
func (a *Archive) Results(ctx context.Context) ([]model.TestResult, error) {
	raw, ok, err := a.store.GetValue(ctx, resultsKey)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var results []model.TestResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return results, nil
}

// Append prepends the result, evicts past the cap, and recomputes the
// aggregates from the full retained list. Recomputing instead of folding
// keeps the aggregates drift-free under eviction.
func (a *Archive) Append(ctx context.Context, result model.TestResult) (model.AggregateStats, error) {
	results, err := a.Results(ctx)
	if err != nil {
		return model.AggregateStats{}, err
	}
	results = append([]model.TestResult{result}, results...)
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	if err := a.writeResults(ctx, results); err != nil {
		return model.AggregateStats{}, err
	}

	aggs := ComputeAggregates(results)
	if err := a.writeAggregates(ctx, aggs); err != nil {
		return model.AggregateStats{}, err
	}
	return aggs, nil
}

// Aggregates returns the stored aggregate stats, zeroed when nothing has
// been recorded.
func (a *Archive) Aggregates(ctx context.Context) (model.AggregateStats, error) {
	raw, ok, err := a.store.GetValue(ctx, statsKey)
	if err != nil {
		return model.AggregateStats{}, fmt.Errorf("load stats: %w", err)
	}
	if !ok {
		return model.AggregateStats{}, nil
	}
	var aggs model.AggregateStats
	if err := json.Unmarshal([]byte(raw), &aggs); err != nil {
		return model.AggregateStats{}, fmt.Errorf("decode stats: %w", err)
	}
	return aggs, nil
}

// Clear drops results and aggregates but keeps settings.
func (a *Archive) Clear(ctx context.Context) error {
	if err := a.store.DeleteValue(ctx, resultsKey); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}
	if err := a.store.DeleteValue(ctx, statsKey); err != nil {
		return fmt.Errorf("clear stats: %w", err)
	}
	return nil
}

func (a *Archive) writeResults(ctx context.Context, results []model.TestResult) error {
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := a.store.PutValue(ctx, resultsKey, string(raw)); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	return nil
}

func (a *Archive) writeAggregates(ctx context.Context, aggs model.AggregateStats) error {
	raw, err := json.Marshal(aggs)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	if err := a.store.PutValue(ctx, statsKey, string(raw)); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

// ComputeAggregates derives the rolling summary from the full result list.
func ComputeAggregates(results []model.TestResult) model.AggregateStats {
	aggs := model.AggregateStats{TotalTests: len(results)}
	if len(results) == 0 {
		return aggs
	}
	var wpmSum, accSum int
	for _, r := range results {
		aggs.TotalTime += r.TimeElapsed
		aggs.TotalCharacters += r.CharactersTyped
		aggs.TotalErrors += r.Errors
		wpmSum += r.WPM
		accSum += r.Accuracy
		if r.WPM > aggs.BestWPM {
			aggs.BestWPM = r.WPM
		}
	}
	aggs.AverageWPM = roundDiv(wpmSum, len(results))
	aggs.AverageAccuracy = roundDiv(accSum, len(results))
	return aggs
}

func roundDiv(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(float64(sum)/float64(count) + 0.5)
}
