package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/typedrill/typedrill/internal/model"
)

// ExportDocument is the portable snapshot of the local archive.
type ExportDocument struct {
	Settings *model.Settings       `json:"settings,omitempty"`
	Results  []model.TestResult    `json:"results,omitempty"`
	Stats    *model.AggregateStats `json:"stats,omitempty"`
	Date     time.Time             `json:"exportDate"`
}

// Export bundles settings, results and aggregates into one document.
func (a *Archive) Export(ctx context.Context) ([]byte, error) {
	settings, err := a.Settings(ctx)
	if err != nil {
		return nil, err
	}
	results, err := a.Results(ctx)
	if err != nil {
		return nil, err
	}
	aggs, err := a.Aggregates(ctx)
	if err != nil {
		return nil, err
	}
	doc := ExportDocument{
		Settings: &settings,
		Results:  results,
		Stats:    &aggs,
		Date:     time.Now().UTC(),
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return raw, nil
}

// Import restores a previously exported document. Any subset of the three
// sections may be present; each present section replaces its store. The
// whole document is validated before the first write, so a malformed file
// never leaves the archive partially overwritten.
func (a *Archive) Import(ctx context.Context, raw []byte) error {
	var doc ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode import: %w", err)
	}
	if doc.Settings == nil && doc.Results == nil && doc.Stats == nil {
		return fmt.Errorf("import: no recognizable sections")
	}
	if len(doc.Results) > MaxResults {
		doc.Results = doc.Results[:MaxResults]
	}

	if doc.Settings != nil {
		if err := a.SaveSettings(ctx, *doc.Settings); err != nil {
			return err
		}
	}
	if doc.Results != nil {
		if err := a.writeResults(ctx, doc.Results); err != nil {
			return err
		}
	}
	if doc.Stats != nil {
		if err := a.writeAggregates(ctx, *doc.Stats); err != nil {
			return err
		}
	}
	return nil
}
