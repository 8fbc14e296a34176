package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/typedrill/typedrill/internal/model"
)

func sampleModelResult(wpm int) model.TestResult {
	return model.TestResult{
		WPM:         wpm,
		Accuracy:    96,
		Errors:      1,
		TimeElapsed: 45,
		Timestamp:   time.Now().UTC(),
		TextSource:  "quotes",
		TextLength:  model.LengthMedium,
	}
}

func dialWS(t *testing.T, srv *httptest.Server, room string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?room=" + room
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	if resp != nil {
		if err := resp.Body.Close(); err != nil {
			t.Errorf("close handshake body: %v", err)
		}
	}
	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			// Connection may already be closed by the server.
			_ = err
		}
	})
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	var msg Envelope
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return msg
}

func expectNoMessage(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	if err := conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	var msg Envelope
	if err := conn.ReadJSON(&msg); err == nil {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestHubRebroadcastExcludesSender(t *testing.T) {
	srv, _ := newTestServer(t)

	sender := dialWS(t, srv, "race-1")
	peer := dialWS(t, srv, "race-1")
	outsider := dialWS(t, srv, "race-2")

	// Registration runs through the hub goroutine, give it a beat.
	time.Sleep(50 * time.Millisecond)

	payload := json.RawMessage(`{"userId":"u1","wpm":42}`)
	if err := sender.WriteJSON(Envelope{Type: "typingStart", Payload: payload}); err != nil {
		t.Fatalf("write event: %v", err)
	}

	msg := readEnvelope(t, peer)
	if msg.Type != "userTyping" {
		t.Errorf("peer got %q, want userTyping", msg.Type)
	}
	var decoded struct {
		WPM int `json:"wpm"`
	}
	if err := json.Unmarshal(msg.Payload, &decoded); err != nil || decoded.WPM != 42 {
		t.Errorf("payload not relayed intact: %s", msg.Payload)
	}

	expectNoMessage(t, sender)
	expectNoMessage(t, outsider)
}

func TestHubTypingCompleteEvent(t *testing.T) {
	srv, _ := newTestServer(t)

	sender := dialWS(t, srv, "race-1")
	peer := dialWS(t, srv, "race-1")
	time.Sleep(50 * time.Millisecond)

	if err := sender.WriteJSON(Envelope{Type: "typingComplete", Payload: json.RawMessage(`{"userId":"u1"}`)}); err != nil {
		t.Fatalf("write event: %v", err)
	}
	msg := readEnvelope(t, peer)
	if msg.Type != "userCompleted" {
		t.Errorf("peer got %q, want userCompleted", msg.Type)
	}
}

func TestHubJoinRoomMovesClient(t *testing.T) {
	srv, _ := newTestServer(t)

	mover := dialWS(t, srv, "race-1")
	peer := dialWS(t, srv, "race-2")
	time.Sleep(50 * time.Millisecond)

	if err := mover.WriteJSON(Envelope{Type: "joinRoom", Payload: json.RawMessage(`"race-2"`)}); err != nil {
		t.Fatalf("write joinRoom: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := mover.WriteJSON(Envelope{Type: "typingStart", Payload: json.RawMessage(`{}`)}); err != nil {
		t.Fatalf("write typingStart: %v", err)
	}
	msg := readEnvelope(t, peer)
	if msg.Type != "userTyping" {
		t.Errorf("peer got %q, want userTyping after room move", msg.Type)
	}
}

func TestResultBroadcastReachesAllClients(t *testing.T) {
	srv, state := newTestServer(t)
	user := state.CreateUser("erin", "erin@example.com")

	listener := dialWS(t, srv, "race-1")
	time.Sleep(50 * time.Millisecond)

	resp := postJSON(t, srv.URL+"/api/test-results", map[string]any{
		"userId":     user.ID,
		"wpm":        88,
		"textSource": "quotes",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("post result: status %d", resp.StatusCode)
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("close body: %v", err)
	}

	msg := readEnvelope(t, listener)
	if msg.Type != "newTestResult" {
		t.Fatalf("got %q, want newTestResult", msg.Type)
	}
	var payload struct {
		TestResult  Result   `json:"testResult"`
		Leaderboard []Result `json:"leaderboard"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.TestResult.WPM != 88 {
		t.Errorf("broadcast WPM = %d, want 88", payload.TestResult.WPM)
	}
	if len(payload.Leaderboard) != 1 {
		t.Errorf("broadcast leaderboard size = %d, want 1", len(payload.Leaderboard))
	}
}
