package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler bundles the HTTP endpoints over the in-memory state.
type Handler struct {
	state  *State
	hub    *Hub
	logger *slog.Logger
}

// NewHandler wires the endpoints to state and hub.
func NewHandler(state *State, hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{state: state, hub: hub, logger: logger}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   "1.0.0",
	})
}

// CreateUser registers a new user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" || body.Email == "" {
		h.writeError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	user := h.state.CreateUser(body.Name, body.Email)
	h.logger.Info("user created", "id", user.ID, "name", user.Name)
	h.writeJSON(w, http.StatusCreated, map[string]User{"user": user})
}

// PostResult records a test result, refreshes the leaderboard and pushes
// the update to connected clients.
func (h *Handler) PostResult(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID      string  `json:"userId"`
		WPM         int     `json:"wpm"`
		Accuracy    int     `json:"accuracy"`
		Errors      int     `json:"errors"`
		TimeElapsed float64 `json:"timeElapsed"`
		TextSource  string  `json:"textSource"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, top, ok := h.state.AddResult(body.UserID, Result{
		WPM:         body.WPM,
		Accuracy:    body.Accuracy,
		Errors:      body.Errors,
		TimeElapsed: body.TimeElapsed,
		TextSource:  body.TextSource,
	})
	if !ok {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.logger.Info("result recorded", "user", body.UserID, "wpm", result.WPM)

	h.hub.Broadcast(map[string]any{
		"type": "newTestResult",
		"payload": map[string]any{
			"testResult":  result,
			"leaderboard": top,
		},
	})
	h.writeJSON(w, http.StatusCreated, map[string]Result{"testResult": result})
}

// UserStats serves one user's aggregates.
func (h *Handler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	stats, ok := h.state.Stats(userID)
	if !ok {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// GetLeaderboard serves the top results by WPM.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			limit = n
		}
	}
	top, total := h.state.Leaderboard(limit)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"leaderboard":  top,
		"totalResults": total,
	})
}

// UpdateSettings shallow-merges the request body into the user's settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	settings, ok := h.state.UpdateSettings(userID, patch)
	if !ok {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// GetSettings serves the user's settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	settings, ok := h.state.Settings(userID)
	if !ok {
		h.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

// GlobalAnalytics serves cross-user totals and source popularity.
func (h *Handler) GlobalAnalytics(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.state.Analytics())
}
