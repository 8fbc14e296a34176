// Package model defines shared data structures.
package model

import "time"

// TextLength selects the approximate passage size.
type TextLength string

// Passage length tiers.
const (
	LengthShort  TextLength = "short"
	LengthMedium TextLength = "medium"
	LengthLong   TextLength = "long"
)

// Settings holds user-facing practice preferences persisted locally.
type Settings struct {
	Theme                string     `json:"theme"`
	SoundEnabled         bool       `json:"soundEnabled"`
	ShowCursor           bool       `json:"showCursor"`
	FontSize             string     `json:"fontSize"`
	AutoStart            bool       `json:"autoStart"`
	ShowTimer            bool       `json:"showTimer"`
	ShowWPM              bool       `json:"showWpm"`
	ShowAccuracy         bool       `json:"showAccuracy"`
	ShowErrors           bool       `json:"showErrors"`
	TextSource           string     `json:"textSource"`
	TextLength           TextLength `json:"textLength"`
	SoundVolume          float64    `json:"soundVolume"`
	VocabularyDifficulty string     `json:"vocabularyDifficulty,omitempty"`
	VocabularyCategory   string     `json:"vocabularyCategory,omitempty"`
}

// DefaultSettings returns the settings applied when nothing is stored yet.
func DefaultSettings() Settings {
	return Settings{
		Theme:        "light",
		SoundEnabled: true,
		ShowCursor:   true,
		FontSize:     "medium",
		AutoStart:    false,
		ShowTimer:    true,
		ShowWPM:      true,
		ShowAccuracy: true,
		ShowErrors:   true,
		TextSource:   "quotes",
		TextLength:   LengthMedium,
		SoundVolume:  0.3,
	}
}

// TypingStats is the derived snapshot recomputed on every input update.
type TypingStats struct {
	WPM               int     `json:"wpm"`
	Accuracy          int     `json:"accuracy"`
	Errors            int     `json:"errors"`
	ElapsedSeconds    float64 `json:"timeElapsed"`
	CharactersTyped   int     `json:"charactersTyped"`
	CharactersCorrect int     `json:"charactersCorrect"`
}

// WpmSample is one point in the chronological speed history.
type WpmSample struct {
	ElapsedSeconds float64 `json:"time"`
	WPM            int     `json:"wpm"`
}

// TestResult is the finalized record of one completed test.
type TestResult struct {
	WPM               int        `json:"wpm"`
	Accuracy          int        `json:"accuracy"`
	Errors            int        `json:"errors"`
	TimeElapsed       float64    `json:"timeElapsed"`
	Timestamp         time.Time  `json:"timestamp"`
	TextSource        string     `json:"textSource"`
	TextLength        TextLength `json:"textLength"`
	CharactersTyped   int        `json:"charactersTyped"`
	CharactersCorrect int        `json:"charactersCorrect"`
}

// AggregateStats summarizes the retained result list. Always recomputed from
// the full list, never folded incrementally.
type AggregateStats struct {
	TotalTests      int     `json:"totalTests"`
	TotalTime       float64 `json:"totalTime"`
	AverageWPM      int     `json:"averageWpm"`
	BestWPM         int     `json:"bestWpm"`
	AverageAccuracy int     `json:"averageAccuracy"`
	TotalCharacters int     `json:"totalCharacters"`
	TotalErrors     int     `json:"totalErrors"`
}

// Difficulty grades a vocabulary word.
type Difficulty string

// Vocabulary difficulties. DifficultyMixed is a filter value, not a grade.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

// VocabularyWord is an immutable catalog entry.
type VocabularyWord struct {
	Word       string     `json:"word"`
	Definition string     `json:"definition"`
	Example    string     `json:"example"`
	Difficulty Difficulty `json:"difficulty"`
	Category   string     `json:"category"`
}

// WordStatus tracks where a word sits in the review ladder.
type WordStatus string

// Word statuses.
const (
	StatusNew      WordStatus = "new"
	StatusLearning WordStatus = "learning"
	StatusReview   WordStatus = "review"
	StatusMastered WordStatus = "mastered"
)

// WordProgress is the per-user, per-word spaced-repetition record.
type WordProgress struct {
	Word           string     `json:"word"`
	Status         WordStatus `json:"status"`
	LastPracticed  time.Time  `json:"lastPracticed"`
	NextReview     time.Time  `json:"nextReview"`
	CorrectCount   int        `json:"correctCount"`
	IncorrectCount int        `json:"incorrectCount"`
}
