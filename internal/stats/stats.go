// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// WPM computes words per minute using the 5-characters-per-word convention.
// It over/under-estimates for non-English or symbol-heavy text; that is a
// documented limitation of the convention, not a bug.
func WPM(charactersTyped int, elapsedSeconds float64) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	words := float64(charactersTyped) / 5.0
	minutes := elapsedSeconds / 60.0
	return int(math.Round(words / minutes))
}

// Accuracy returns the percentage of correct characters, rounded. An empty
// input counts as 100.
func Accuracy(correct, typed int) int {
	if typed <= 0 {
		return 100
	}
	return int(math.Round(float64(correct) / float64(typed) * 100))
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample squashes values into at most width buckets by bucket mean, so a
// long WPM history fits a terminal line.
func Resample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, 0, width)
	for b := 0; b < width; b++ {
		start := b * len(values) / width
		end := (b + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		var sum float64
		for i := start; i < end && i < len(values); i++ {
			sum += values[i]
		}
		out = append(out, sum/float64(end-start))
	}
	return out
}
