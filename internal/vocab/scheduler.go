package vocab

import (
	"context"
	"fmt"
	"time"

	"github.com/typedrill/typedrill/internal/model"
)

// Review intervals per outcome. Mastered words come back weekly, learning
// words every two days, failed words daily.
const (
	masteredInterval = 7 * 24 * time.Hour
	learningInterval = 2 * 24 * time.Hour
	reviewInterval   = 24 * time.Hour
)

const masteredThreshold = 3

// ProgressStore is the persistence the scheduler needs. *store.Store
// satisfies it.
type ProgressStore interface {
	GetProgress(ctx context.Context, userID, word string) (model.WordProgress, bool, error)
	UpsertProgress(ctx context.Context, userID string, p model.WordProgress) error
	NextDueProgress(ctx context.Context, userID string, now time.Time) (model.WordProgress, bool, error)
	FirstNewProgress(ctx context.Context, userID string) (model.WordProgress, bool, error)
	ListProgress(ctx context.Context, userID string) ([]model.WordProgress, error)
}

// ProgressStats counts a user's words per status.
type ProgressStats struct {
	Total    int `json:"total"`
	Mastered int `json:"mastered"`
	Learning int `json:"learning"`
	Review   int `json:"review"`
	New      int `json:"new"`
}

// Scheduler picks the next vocabulary word to practice and records
// outcomes. The transition rule is a deliberately simple spaced-repetition
// approximation, not SM-2; the thresholds are part of the contract.
type Scheduler struct {
	catalog *Catalog
	store   ProgressStore
}

// NewScheduler builds a scheduler over the catalog and progress store.
func NewScheduler(catalog *Catalog, store ProgressStore) *Scheduler {
	return &Scheduler{catalog: catalog, store: store}
}

// NextWord selects the word the user should practice now: the earliest-due
// learning/review word, else any word still marked new, else a random
// catalog word the user has never seen, which is recorded as new. Callers
// should fall back to a plain random catalog word when this errors.
func (s *Scheduler) NextWord(ctx context.Context, userID string, now time.Time) (string, error) {
	due, ok, err := s.store.NextDueProgress(ctx, userID, now)
	if err != nil {
		return "", fmt.Errorf("fetch due words: %w", err)
	}
	if ok {
		return due.Word, nil
	}

	fresh, ok, err := s.store.FirstNewProgress(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("fetch new words: %w", err)
	}
	if ok {
		return fresh.Word, nil
	}

	word, err := s.unseenWord(ctx, userID)
	if err != nil {
		return "", err
	}
	p := model.WordProgress{
		Word:          word,
		Status:        model.StatusNew,
		LastPracticed: now,
		NextReview:    now,
	}
	if err := s.store.UpsertProgress(ctx, userID, p); err != nil {
		return "", fmt.Errorf("record new word: %w", err)
	}
	return word, nil
}

func (s *Scheduler) unseenWord(ctx context.Context, userID string) (string, error) {
	existing, err := s.store.ListProgress(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("list progress: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[p.Word] = struct{}{}
	}
	unseen := make([]model.VocabularyWord, 0, len(s.catalog.Words()))
	for _, w := range s.catalog.Words() {
		if _, ok := seen[w.Word]; !ok {
			unseen = append(unseen, w)
		}
	}
	if len(unseen) == 0 {
		// Whole catalog seen; hand back a random one.
		return s.catalog.Random().Word, nil
	}
	return unseen[s.catalog.rnd.Intn(len(unseen))].Word, nil
}

// RecordAttempt bumps the word's counters and applies the status
// transition:
//
//	correctCount >= 3 and correct > incorrect -> mastered, review in 7 days
//	this attempt correct                      -> learning, review in 2 days
//	otherwise                                 -> review, review in 1 day
//
// First-ever attempts follow the same correct/incorrect offsets.
func (s *Scheduler) RecordAttempt(ctx context.Context, userID, word string, correct bool, now time.Time) error {
	current, exists, err := s.store.GetProgress(ctx, userID, word)
	if err != nil {
		return fmt.Errorf("fetch progress: %w", err)
	}

	correctCount := current.CorrectCount
	incorrectCount := current.IncorrectCount
	if correct {
		correctCount++
	} else {
		incorrectCount++
	}

	var status model.WordStatus
	var interval time.Duration
	switch {
	case exists && correctCount >= masteredThreshold && correctCount > incorrectCount:
		status = model.StatusMastered
		interval = masteredInterval
	case correct:
		status = model.StatusLearning
		interval = learningInterval
	default:
		status = model.StatusReview
		interval = reviewInterval
	}

	updated := model.WordProgress{
		Word:           word,
		Status:         status,
		LastPracticed:  now,
		NextReview:     now.Add(interval),
		CorrectCount:   correctCount,
		IncorrectCount: incorrectCount,
	}
	if err := s.store.UpsertProgress(ctx, userID, updated); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Stats counts the user's words per status.
func (s *Scheduler) Stats(ctx context.Context, userID string) (ProgressStats, error) {
	all, err := s.store.ListProgress(ctx, userID)
	if err != nil {
		return ProgressStats{}, fmt.Errorf("list progress: %w", err)
	}
	stats := ProgressStats{Total: len(all)}
	for _, p := range all {
		switch p.Status {
		case model.StatusMastered:
			stats.Mastered++
		case model.StatusLearning:
			stats.Learning++
		case model.StatusReview:
			stats.Review++
		case model.StatusNew:
			stats.New++
		}
	}
	return stats, nil
}

// Progress returns every progress record for the user, ordered by next
// review time.
func (s *Scheduler) Progress(ctx context.Context, userID string) ([]model.WordProgress, error) {
	return s.store.ListProgress(ctx, userID)
}

// DueWords returns every progress record due at or before now, earliest
// first.
func (s *Scheduler) DueWords(ctx context.Context, userID string, now time.Time) ([]model.WordProgress, error) {
	all, err := s.store.ListProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	due := make([]model.WordProgress, 0, len(all))
	for _, p := range all {
		if !p.NextReview.After(now) {
			due = append(due, p)
		}
	}
	return due, nil
}
