// Package engine converts keystroke input into typing metrics and owns the
// test lifecycle.
package engine

import (
	"fmt"
	"time"

	"github.com/typedrill/typedrill/internal/model"
	"github.com/typedrill/typedrill/internal/stats"
)

// State is the test lifecycle phase.
type State int

// Lifecycle states. A session moves Idle -> Running on the first typed
// character, Running -> Complete when the input equals the passage, and back
// to Idle only through Reset.
const (
	StateIdle State = iota
	StateRunning
	StateComplete
)

// Session owns one typing test: the target passage, the cumulative input,
// the derived stat snapshot, and the speed history. It is not safe for
// concurrent use; all updates happen on a single event flow.
type Session struct {
	passage []rune
	source  string
	length  model.TextLength

	input     []rune
	state     State
	startedAt time.Time

	snapshot model.TypingStats
	history  []model.WpmSample

	generation int
}

// NewSession creates a session for the given passage. An empty passage is a
// precondition violation; the text provider must never hand one out.
func NewSession(passage, source string, length model.TextLength) (*Session, error) {
	s := &Session{}
	if err := s.Reset(passage, source, length); err != nil {
		return nil, err
	}
	return s, nil
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Passage returns the target text.
func (s *Session) Passage() string { return string(s.passage) }

// Source returns the text-source id the passage came from.
func (s *Session) Source() string { return s.source }

// Input returns the cumulative typed input.
func (s *Session) Input() string { return string(s.input) }

// Stats returns the latest stat snapshot. Before the clock starts this is
// the zero snapshot with 100% accuracy.
func (s *Session) Stats() model.TypingStats { return s.snapshot }

// History returns the append-only WPM sample sequence.
func (s *Session) History() []model.WpmSample { return s.history }

// Generation returns the reset token. A passage fetch tagged with an older
// generation must be discarded by the caller.
func (s *Session) Generation() int { return s.generation }

// Update replaces the cumulative input and recomputes stats from scratch.
// The first character starts the clock; this is the only place it is set.
// Input is clamped to the passage length, so completion is reachable even if
// the caller does not enforce a fixed-length field. The returned bool is
// true exactly once, on the update that completes the test.
func (s *Session) Update(input string, now time.Time) (model.TypingStats, bool) {
	if s.state == StateComplete {
		return s.snapshot, false
	}

	runes := []rune(input)
	if len(runes) > len(s.passage) {
		runes = runes[:len(s.passage)]
	}
	s.input = runes

	if s.state == StateIdle {
		if len(runes) == 0 {
			// Clock not started yet; stats stay frozen.
			return s.snapshot, false
		}
		s.state = StateRunning
		s.startedAt = now
	}

	s.snapshot = s.compute(now)
	if s.snapshot.WPM > 0 {
		s.history = append(s.history, model.WpmSample{
			ElapsedSeconds: s.snapshot.ElapsedSeconds,
			WPM:            s.snapshot.WPM,
		})
	}

	if string(s.input) == string(s.passage) {
		s.state = StateComplete
		return s.snapshot, true
	}
	return s.snapshot, false
}

// compute derives the full snapshot from the current input. Comparison is
// strictly index-aligned: one stray character misaligns every later
// position until reset. That matches the product's accuracy semantics and
// is deliberately not "fixed" with an alignment algorithm.
func (s *Session) compute(now time.Time) model.TypingStats {
	elapsed := now.Sub(s.startedAt).Seconds()
	correct := 0
	for i, r := range s.input {
		if r == s.passage[i] {
			correct++
		}
	}
	typed := len(s.input)
	return model.TypingStats{
		WPM:               stats.WPM(typed, elapsed),
		Accuracy:          stats.Accuracy(correct, typed),
		Errors:            typed - correct,
		ElapsedSeconds:    elapsed,
		CharactersTyped:   typed,
		CharactersCorrect: correct,
	}
}

// Result builds the immutable record for a completed test.
func (s *Session) Result(now time.Time) (model.TestResult, error) {
	if s.state != StateComplete {
		return model.TestResult{}, fmt.Errorf("session is not complete")
	}
	return model.TestResult{
		WPM:               s.snapshot.WPM,
		Accuracy:          s.snapshot.Accuracy,
		Errors:            s.snapshot.Errors,
		TimeElapsed:       s.snapshot.ElapsedSeconds,
		Timestamp:         now,
		TextSource:        s.source,
		TextLength:        s.length,
		CharactersTyped:   s.snapshot.CharactersTyped,
		CharactersCorrect: s.snapshot.CharactersCorrect,
	}, nil
}

// Reset discards input, stats, history, and any completion state, loads a
// new passage, and bumps the generation token.
func (s *Session) Reset(passage, source string, length model.TextLength) error {
	if passage == "" {
		return fmt.Errorf("passage must not be empty")
	}
	s.passage = []rune(passage)
	s.source = source
	s.length = length
	s.input = nil
	s.state = StateIdle
	s.startedAt = time.Time{}
	s.snapshot = model.TypingStats{Accuracy: 100}
	s.history = nil
	s.generation++
	return nil
}
