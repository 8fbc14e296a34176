package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *State) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	state := NewState()
	hub := NewHub(logger)
	go hub.Run()
	srv := httptest.NewServer(NewRouter(NewHandler(state, hub, logger), hub))
	t.Cleanup(srv.Close)
	return srv, state
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Errorf("close body: %v", err)
		}
	}()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func createTestUser(t *testing.T, srv *httptest.Server) User {
	t.Helper()
	resp := postJSON(t, srv.URL+"/api/users", map[string]string{"name": "alice", "email": "alice@example.com"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user: status %d", resp.StatusCode)
	}
	var out struct {
		User User `json:"user"`
	}
	decodeBody(t, resp, &out)
	return out.User
}

func TestCreateUserValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/users", map[string]string{"name": "bob"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing email, got %d", resp.StatusCode)
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("close body: %v", err)
	}

	user := createTestUser(t, srv)
	if user.ID == "" {
		t.Error("user ID not assigned")
	}
	if user.Settings["theme"] != "light" {
		t.Errorf("default theme = %v, want light", user.Settings["theme"])
	}
}

func TestPostResultUnknownUser(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/test-results", map[string]any{"userId": "nope", "wpm": 50})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("close body: %v", err)
	}
}

func TestPostResultAndStats(t *testing.T) {
	srv, _ := newTestServer(t)
	user := createTestUser(t, srv)

	for _, wpm := range []int{40, 60} {
		resp := postJSON(t, srv.URL+"/api/test-results", map[string]any{
			"userId":      user.ID,
			"wpm":         wpm,
			"accuracy":    95,
			"errors":      2,
			"timeElapsed": 60.0,
			"textSource":  "quotes",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("post result: status %d", resp.StatusCode)
		}
		var out struct {
			TestResult Result `json:"testResult"`
		}
		decodeBody(t, resp, &out)
		if out.TestResult.ID == "" {
			t.Error("result ID not assigned")
		}
	}

	resp, err := http.Get(srv.URL + "/api/users/" + user.ID + "/stats")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	var stats UserStats
	decodeBody(t, resp, &stats)
	if stats.TotalTests != 2 {
		t.Errorf("TotalTests = %d, want 2", stats.TotalTests)
	}
	if stats.AverageWPM != 50 {
		t.Errorf("AverageWPM = %d, want 50", stats.AverageWPM)
	}
	if stats.BestWPM != 60 {
		t.Errorf("BestWPM = %d, want 60", stats.BestWPM)
	}
	// Newest first.
	if len(stats.RecentResults) != 2 || stats.RecentResults[0].WPM != 60 {
		t.Errorf("RecentResults = %+v, want newest first", stats.RecentResults)
	}
}

func TestStatsZeroedForFreshUser(t *testing.T) {
	srv, _ := newTestServer(t)
	user := createTestUser(t, srv)

	resp, err := http.Get(srv.URL + "/api/users/" + user.ID + "/stats")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	var stats UserStats
	decodeBody(t, resp, &stats)
	if stats.TotalTests != 0 || stats.BestWPM != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
	if stats.RecentResults == nil {
		t.Error("RecentResults should serialize as empty array, not null")
	}
}

func TestLeaderboardOrderAndLimit(t *testing.T) {
	srv, state := newTestServer(t)
	user := createTestUser(t, srv)

	for _, wpm := range []int{30, 90, 60} {
		if _, _, ok := state.AddResult(user.ID, Result{WPM: wpm, TextSource: "quotes"}); !ok {
			t.Fatal("user missing")
		}
	}

	resp, err := http.Get(srv.URL + "/api/leaderboard?limit=2")
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	var out struct {
		Leaderboard  []Result `json:"leaderboard"`
		TotalResults int      `json:"totalResults"`
	}
	decodeBody(t, resp, &out)
	if out.TotalResults != 3 {
		t.Errorf("TotalResults = %d, want 3", out.TotalResults)
	}
	if len(out.Leaderboard) != 2 || out.Leaderboard[0].WPM != 90 || out.Leaderboard[1].WPM != 60 {
		t.Errorf("leaderboard = %+v, want [90 60]", out.Leaderboard)
	}
}

func TestLeaderboardCap(t *testing.T) {
	_, state := newTestServer(t)
	user := state.CreateUser("carol", "carol@example.com")

	for i := 0; i < maxLeaderboard+20; i++ {
		if _, _, ok := state.AddResult(user.ID, Result{WPM: i}); !ok {
			t.Fatal("user missing")
		}
	}
	_, total := state.Leaderboard(10)
	if total != maxLeaderboard {
		t.Fatalf("leaderboard total = %d, want %d", total, maxLeaderboard)
	}
	top, _ := state.Leaderboard(1)
	if top[0].WPM != maxLeaderboard+19 {
		t.Errorf("top WPM = %d, want %d", top[0].WPM, maxLeaderboard+19)
	}
}

func TestSettingsShallowMerge(t *testing.T) {
	srv, _ := newTestServer(t)
	user := createTestUser(t, srv)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/users/"+user.ID+"/settings",
		bytes.NewReader([]byte(`{"theme":"dark"}`)))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put settings: %v", err)
	}
	var out struct {
		Settings map[string]any `json:"settings"`
	}
	decodeBody(t, resp, &out)
	if out.Settings["theme"] != "dark" {
		t.Errorf("theme = %v, want dark", out.Settings["theme"])
	}
	// Untouched keys survive the merge.
	if out.Settings["fontSize"] != "medium" {
		t.Errorf("fontSize = %v, want medium", out.Settings["fontSize"])
	}

	resp, err = http.Get(srv.URL + "/api/users/" + user.ID + "/settings")
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	decodeBody(t, resp, &out)
	if out.Settings["theme"] != "dark" {
		t.Errorf("persisted theme = %v, want dark", out.Settings["theme"])
	}
}

func TestGlobalAnalyticsPopularSources(t *testing.T) {
	srv, state := newTestServer(t)
	user := createTestUser(t, srv)

	for _, source := range []string{"quotes", "quotes", "words", "vocabulary", "quotes"} {
		if _, _, ok := state.AddResult(user.ID, Result{WPM: 50, TextSource: source}); !ok {
			t.Fatal("user missing")
		}
	}

	resp, err := http.Get(srv.URL + "/api/analytics/global")
	if err != nil {
		t.Fatalf("get analytics: %v", err)
	}
	var analytics GlobalAnalytics
	decodeBody(t, resp, &analytics)
	if analytics.TotalTests != 5 || analytics.TotalUsers != 1 {
		t.Errorf("analytics = %+v, want 5 tests / 1 user", analytics)
	}
	if len(analytics.PopularSources) == 0 || analytics.PopularSources[0].Source != "quotes" {
		t.Errorf("popular sources = %+v, want quotes first", analytics.PopularSources)
	}
	if analytics.PopularSources[0].Count != 3 {
		t.Errorf("quotes count = %d, want 3", analytics.PopularSources[0].Count)
	}
}

func TestHealthAndNotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	var health map[string]string
	decodeBody(t, resp, &health)
	if health["status"] != "OK" {
		t.Errorf("status = %q, want OK", health["status"])
	}

	resp, err = http.Get(srv.URL + "/api/no-such-route")
	if err != nil {
		t.Fatalf("get unknown route: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want 404", resp.StatusCode)
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("close body: %v", err)
	}
}

func TestAPIClientRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	client := NewAPIClient(srv.URL)
	ctx := context.Background()

	user, err := client.CreateUser(ctx, "dave", "dave@example.com")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.ID == "" {
		t.Fatal("user ID not assigned")
	}

	result := sampleModelResult(77)
	if err := client.PostResult(ctx, user.ID, result); err != nil {
		t.Fatalf("post result: %v", err)
	}
	top, total, err := client.Leaderboard(ctx, 5)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if total != 1 || len(top) != 1 || top[0].WPM != 77 {
		t.Errorf("leaderboard = %+v (total %d), want single 77 WPM entry", top, total)
	}
}
