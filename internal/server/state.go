// Package server implements the optional backend: user CRUD, result
// collection, a global leaderboard and a WebSocket presence relay. All
// state is held in memory and lost on restart.
package server

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxLeaderboard bounds the global best-by-WPM list.
const maxLeaderboard = 100

// User is a registered player with their collected results and settings.
type User struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Results  []Result       `json:"-"`
	Settings map[string]any `json:"settings,omitempty"`
}

// Result is one submitted test outcome.
type Result struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId,omitempty"`
	WPM         int       `json:"wpm"`
	Accuracy    int       `json:"accuracy"`
	Errors      int       `json:"errors"`
	TimeElapsed float64   `json:"timeElapsed"`
	TextSource  string    `json:"textSource"`
	Timestamp   time.Time `json:"timestamp"`
}

// UserStats is the per-user aggregate view.
type UserStats struct {
	TotalTests      int      `json:"totalTests"`
	AverageWPM      int      `json:"averageWpm"`
	BestWPM         int      `json:"bestWpm"`
	AverageAccuracy int      `json:"averageAccuracy"`
	TotalTime       float64  `json:"totalTime"`
	RecentResults   []Result `json:"recentResults"`
}

// SourceCount pairs a text source with its usage count.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// GlobalAnalytics summarizes activity across all users.
type GlobalAnalytics struct {
	TotalTests     int           `json:"totalTests"`
	AverageWPM     int           `json:"averageWpm"`
	TotalUsers     int           `json:"totalUsers"`
	PopularSources []SourceCount `json:"popularSources"`
}

// State is the mutex-guarded in-memory backend state.
type State struct {
	mu          sync.Mutex
	users       map[string]*User
	leaderboard []Result
}

// NewState returns empty backend state.
func NewState() *State {
	return &State{users: make(map[string]*User)}
}

func defaultUserSettings() map[string]any {
	return map[string]any{
		"theme":        "light",
		"soundEnabled": true,
		"showCursor":   true,
		"fontSize":     "medium",
		"autoStart":    false,
	}
}

// CreateUser registers a user and returns the stored record.
func (s *State) CreateUser(name, email string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &User{
		ID:       "user_" + uuid.NewString(),
		Name:     name,
		Email:    email,
		Settings: defaultUserSettings(),
	}
	s.users[user.ID] = user
	return *user
}

// AddResult records a result for the user and folds it into the
// leaderboard. Returns the stored result, the current top 10 and whether
// the user exists.
func (s *State) AddResult(userID string, r Result) (Result, []Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return Result{}, nil, false
	}

	r.ID = "test_" + uuid.NewString()
	r.UserID = userID
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	user.Results = append(user.Results, r)

	s.leaderboard = append(s.leaderboard, r)
	sort.SliceStable(s.leaderboard, func(i, j int) bool {
		return s.leaderboard[i].WPM > s.leaderboard[j].WPM
	})
	if len(s.leaderboard) > maxLeaderboard {
		s.leaderboard = s.leaderboard[:maxLeaderboard]
	}

	return r, s.topLocked(10), true
}

// Stats computes the user's aggregates. A registered user with no results
// gets a zeroed view, not an error.
func (s *State) Stats(userID string) (UserStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return UserStats{}, false
	}
	results := user.Results
	stats := UserStats{TotalTests: len(results), RecentResults: []Result{}}
	if len(results) == 0 {
		return stats, true
	}

	var wpmSum, accSum int
	for _, r := range results {
		wpmSum += r.WPM
		accSum += r.Accuracy
		stats.TotalTime += r.TimeElapsed
		if r.WPM > stats.BestWPM {
			stats.BestWPM = r.WPM
		}
	}
	stats.AverageWPM = roundDiv(wpmSum, len(results))
	stats.AverageAccuracy = roundDiv(accSum, len(results))

	// Last 10 results, newest first.
	start := len(results) - 10
	if start < 0 {
		start = 0
	}
	recent := results[start:]
	for i := len(recent) - 1; i >= 0; i-- {
		stats.RecentResults = append(stats.RecentResults, recent[i])
	}
	return stats, true
}

// Leaderboard returns the top results by WPM and the retained total.
func (s *State) Leaderboard(limit int) ([]Result, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topLocked(limit), len(s.leaderboard)
}

func (s *State) topLocked(limit int) []Result {
	if limit < 0 {
		limit = 0
	}
	if limit > len(s.leaderboard) {
		limit = len(s.leaderboard)
	}
	top := make([]Result, limit)
	copy(top, s.leaderboard[:limit])
	return top
}

// UpdateSettings shallow-merges the patch into the user's settings.
func (s *State) UpdateSettings(userID string, patch map[string]any) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, false
	}
	for k, v := range patch {
		user.Settings[k] = v
	}
	return copySettings(user.Settings), true
}

// Settings returns the user's current settings.
func (s *State) Settings(userID string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, false
	}
	return copySettings(user.Settings), true
}

// Analytics aggregates over every user's results.
func (s *State) Analytics() GlobalAnalytics {
	s.mu.Lock()
	defer s.mu.Unlock()

	analytics := GlobalAnalytics{TotalUsers: len(s.users), PopularSources: []SourceCount{}}
	var wpmSum int
	counts := make(map[string]int)
	for _, user := range s.users {
		for _, r := range user.Results {
			analytics.TotalTests++
			wpmSum += r.WPM
			counts[r.TextSource]++
		}
	}
	if analytics.TotalTests == 0 {
		return analytics
	}
	analytics.AverageWPM = roundDiv(wpmSum, analytics.TotalTests)

	for source, count := range counts {
		analytics.PopularSources = append(analytics.PopularSources, SourceCount{Source: source, Count: count})
	}
	sort.Slice(analytics.PopularSources, func(i, j int) bool {
		a, b := analytics.PopularSources[i], analytics.PopularSources[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Source < b.Source
	})
	if len(analytics.PopularSources) > 5 {
		analytics.PopularSources = analytics.PopularSources[:5]
	}
	return analytics
}

func copySettings(settings map[string]any) map[string]any {
	out := make(map[string]any, len(settings))
	for k, v := range settings {
		out[k] = v
	}
	return out
}

func roundDiv(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(float64(sum)/float64(count) + 0.5)
}
