package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestPracticeServerPlaysFullGame(t *testing.T) {
	practice := NewPracticeServer(3, 3, 3, nil)
	server := httptest.NewServer(practice.Router())
	defer server.Close()

	ctx := context.Background()
	alice := NewGameClient(server.URL, "key-a")
	bob := NewGameClient(server.URL, "key-b")

	// alice claims seat 0 first; with only one seat taken she gets null
	if _, err := alice.FetchBoard(ctx); !errors.Is(err, ErrNoBoard) {
		t.Fatalf("expected no board before the opponent joins, got %v", err)
	}
	if err := alice.SetName(ctx, "alice"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := bob.SetName(ctx, "bob"); err != nil {
		t.Fatalf("SetName: %v", err)
	}

	// both seats are claimed and it is alice's turn
	board, err := alice.FetchBoard(ctx)
	if err != nil {
		t.Fatalf("FetchBoard: %v", err)
	}
	if board.M() != 3 || board.N() != 3 || board.K() != 3 {
		t.Fatalf("dimensions %dx%d k=%d, want 3x3 k=3", board.M(), board.N(), board.K())
	}
	if _, err := bob.FetchBoard(ctx); !errors.Is(err, ErrNoBoard) {
		t.Fatalf("expected no board for bob off turn, got %v", err)
	}

	// moving off turn is rejected
	if err := bob.PostMove(ctx, Position{X: 0, Y: 0}); err == nil {
		t.Fatalf("expected an off-turn move to fail")
	}

	// alice wins along the main diagonal
	script := []struct {
		client *GameClient
		pos    Position
	}{
		{alice, Position{X: 0, Y: 0}},
		{bob, Position{X: 1, Y: 0}},
		{alice, Position{X: 1, Y: 1}},
		{bob, Position{X: 2, Y: 0}},
		{alice, Position{X: 2, Y: 2}},
	}
	for i, step := range script {
		if err := step.client.PostMove(ctx, step.pos); err != nil {
			t.Fatalf("move %d at (%d,%d): %v", i, step.pos.X, step.pos.Y, err)
		}
	}

	state := practice.Snapshot()
	if !state.Finished {
		t.Fatalf("game should be finished")
	}
	if state.Winner != 1 {
		t.Fatalf("winner = %d, want seat 1 (alice)", state.Winner)
	}
	if state.Tied {
		t.Fatalf("game should not be tied")
	}
	if len(state.Names) != 2 || state.Names[0] != "alice" || state.Names[1] != "bob" {
		t.Fatalf("names = %v", state.Names)
	}

	// moves after the game ends are rejected
	if err := bob.PostMove(ctx, Position{X: 0, Y: 2}); err == nil {
		t.Fatalf("expected moves after the game to fail")
	}
}

func TestPracticeServerPerspectiveAndReset(t *testing.T) {
	practice := NewPracticeServer(3, 3, 3, nil)
	server := httptest.NewServer(practice.Router())
	defer server.Close()

	ctx := context.Background()
	alice := NewGameClient(server.URL, "key-a")
	bob := NewGameClient(server.URL, "key-b")

	if err := alice.SetName(ctx, "alice"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := bob.SetName(ctx, "bob"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := alice.PostMove(ctx, Position{X: 0, Y: 0}); err != nil {
		t.Fatalf("PostMove: %v", err)
	}

	board, err := bob.FetchBoard(ctx)
	if err != nil {
		t.Fatalf("FetchBoard: %v", err)
	}
	if board.At(0, 0) != CellTheirs {
		t.Fatalf("bob should see alice's stone as an opponent stone, got %v", board.At(0, 0))
	}

	// a third key cannot claim a seat
	eve := NewGameClient(server.URL, "key-c")
	if _, err := eve.FetchBoard(ctx); err == nil || errors.Is(err, ErrNoBoard) {
		t.Fatalf("expected a rejection for a third key, got %v", err)
	}

	resp, err := http.Post(server.URL+"/api/reset", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	resp.Body.Close()

	state := practice.Snapshot()
	if state.Finished || state.Winner != 0 {
		t.Fatalf("reset should clear the result, got %+v", state)
	}
	if state.NextPlayer != 1 {
		t.Fatalf("next player after reset = %d, want 1", state.NextPlayer)
	}
	board, err = alice.FetchBoard(ctx)
	if err != nil {
		t.Fatalf("FetchBoard after reset: %v", err)
	}
	if board.CountEmpty() != 9 {
		t.Fatalf("board should be empty after reset, %d empty cells", board.CountEmpty())
	}
}

func readStateMessage(t *testing.T, conn *websocket.Conn) practiceState {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg wsMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if msg.Type != "state" {
			continue
		}
		var state practiceState
		if err := json.Unmarshal(msg.Payload, &state); err != nil {
			t.Fatalf("unmarshal state: %v", err)
		}
		return state
	}
}

func TestSpectatorWebsocketReceivesState(t *testing.T) {
	hub := NewHub()
	done := make(chan struct{})
	defer close(done)
	go hub.Run(done)

	practice := NewPracticeServer(3, 3, 3, hub)
	server := httptest.NewServer(practice.Router())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/spectate"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// the hub pushes a snapshot on connect
	state := readStateMessage(t, conn)
	if state.M != 3 || state.Finished {
		t.Fatalf("unexpected initial state %+v", state)
	}

	ctx := context.Background()
	alice := NewGameClient(server.URL, "key-a")
	bob := NewGameClient(server.URL, "key-b")
	if err := alice.SetName(ctx, "alice"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := bob.SetName(ctx, "bob"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	if err := alice.PostMove(ctx, Position{X: 1, Y: 1}); err != nil {
		t.Fatalf("PostMove: %v", err)
	}

	state = readStateMessage(t, conn)
	if state.Board[1][1] != 1 {
		t.Fatalf("broadcast board missing the move: %+v", state.Board)
	}
	if state.NextPlayer != 2 {
		t.Fatalf("next player = %d, want 2", state.NextPlayer)
	}

	// an explicit request also yields a snapshot
	if err := conn.WriteJSON(wsMessage{Type: "request_state"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	state = readStateMessage(t, conn)
	if state.Board[1][1] != 1 {
		t.Fatalf("requested state missing the move: %+v", state.Board)
	}
}
