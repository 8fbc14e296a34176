package textgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Per-endpoint budget. A slow quote service must not hold up the session;
// the local corpus is always there.
const fetchTimeout = 3 * time.Second

const maxQuoteBody = 1 << 16

// defaultEndpoints are interchangeable public quote services, tried in
// order.
var defaultEndpoints = []string{
	"https://api.quotable.io/random",
	"https://zenquotes.io/api/random",
	"https://api.goprogram.ai/inspiration",
}

// fetchQuote walks the endpoint list and returns the first quote a service
// hands back. Every failure mode (timeout, transport error, non-2xx,
// unusable body) moves on to the next endpoint; an empty string means all
// endpoints failed.
func (g *Generator) fetchQuote(ctx context.Context) string {
	for _, endpoint := range g.endpoints {
		quote, err := g.fetchOne(ctx, endpoint)
		if err != nil {
			continue
		}
		if quote != "" {
			return quote
		}
	}
	return ""
}

func (g *Generator) fetchOne(ctx context.Context, endpoint string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxQuoteBody))
	if err != nil {
		return "", err
	}
	return decodeQuote(body)
}

// decodeQuote accepts the response shapes the interchangeable services use:
// an object keyed by content/quote/q/text, an array of such objects, or a
// bare JSON string.
func decodeQuote(body []byte) (string, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", err
	}
	if quote := quoteFromValue(raw); quote != "" {
		return quote, nil
	}
	return "", fmt.Errorf("no quote field in response")
}

func quoteFromValue(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"content", "quote", "q", "text"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	case []any:
		for _, item := range v {
			if quote := quoteFromValue(item); quote != "" {
				return quote
			}
		}
	}
	return ""
}
