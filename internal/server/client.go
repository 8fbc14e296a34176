package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/typedrill/typedrill/internal/model"
)

// APIClient talks to a running backend. Used by the practice shell to
// mirror finished tests to a shared leaderboard.
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient returns a client for the given base URL, e.g. "http://localhost:8085".
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// CreateUser registers a user and returns its assigned ID.
func (c *APIClient) CreateUser(ctx context.Context, name, email string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.post(ctx, "/api/users", map[string]string{"name": name, "email": email}, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// PostResult submits a finished test for the user.
func (c *APIClient) PostResult(ctx context.Context, userID string, result model.TestResult) error {
	body := map[string]any{
		"userId":      userID,
		"wpm":         result.WPM,
		"accuracy":    result.Accuracy,
		"errors":      result.Errors,
		"timeElapsed": result.TimeElapsed,
		"textSource":  result.TextSource,
	}
	return c.post(ctx, "/api/test-results", body, nil)
}

// Leaderboard fetches the top results.
func (c *APIClient) Leaderboard(ctx context.Context, limit int) ([]Result, int, error) {
	url := c.baseURL + "/api/leaderboard"
	if limit > 0 {
		url += "?limit=" + strconv.Itoa(limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("leaderboard: status %d", resp.StatusCode)
	}
	var out struct {
		Leaderboard  []Result `json:"leaderboard"`
		TotalResults int      `json:"totalResults"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, 0, err
	}
	return out.Leaderboard, out.TotalResults, nil
}

func (c *APIClient) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
