// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/typedrill/typedrill/internal/model"
)

// TerminalWidth returns the current terminal width, or the fallback when
// stdout is not a terminal.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// RenderSummary prints aggregate stats and recent results as plain text.
func RenderSummary(w io.Writer, aggs model.AggregateStats, results []model.TestResult) error {
	if aggs.TotalTests == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Tests: %d\n", aggs.TotalTests); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %d\n", aggs.AverageWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %d\n", aggs.BestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %d%%\n", aggs.AverageAccuracy); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Time: %s\n", formatDuration(aggs.TotalTime)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Characters: %d (errors %d)\n\n", aggs.TotalCharacters, aggs.TotalErrors); err != nil {
		return err
	}

	if len(results) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Recent Tests"); err != nil {
		return err
	}
	headers := []string{"When", "Source", "WPM", "Accuracy", "Errors", "Time"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			r.TextSource,
			fmt.Sprintf("%d", r.WPM),
			fmt.Sprintf("%d%%", r.Accuracy),
			fmt.Sprintf("%d", r.Errors),
			formatDuration(r.TimeElapsed),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	wpms := make([]float64, 0, len(results))
	// Results are stored newest-first; plot oldest to newest.
	for i := len(results) - 1; i >= 0; i-- {
		wpms = append(wpms, float64(results[i].WPM))
	}
	width := TerminalWidth(80) - 10
	if width < 10 {
		width = 10
	}
	if _, err := fmt.Fprintf(w, "\nWPM trend %s\n", Sparkline(Resample(wpms, width))); err != nil {
		return err
	}
	return nil
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return d.String()
}
