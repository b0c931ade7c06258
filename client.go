package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoBoard means the service has no board waiting for us this cycle; the
// caller should retry on its next poll.
var ErrNoBoard = errors.New("no board available")

// boardWire is the service's board document. The board array is indexed
// [x][y]; a cell is -1 when empty, 0 for our stone, 1 for the opponent's.
type boardWire struct {
	M     int     `json:"m"`
	N     int     `json:"n"`
	K     int     `json:"k"`
	Board [][]int `json:"board"`
}

// GameClient talks to the remote m,n,k service. The solver core never sees
// the wire format; this client hands it a validated Board and posts back a
// Position.
type GameClient struct {
	baseURL string
	key     string
	httpc   *http.Client
}

func NewGameClient(baseURL, key string) *GameClient {
	return &GameClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     key,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchBoard retrieves the current board, or ErrNoBoard when it is not our
// turn or no game is running.
func (c *GameClient) FetchBoard(ctx context.Context) (Board, error) {
	endpoint := fmt.Sprintf("%s/api/board?key=%s", c.baseURL, url.QueryEscape(c.key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Board{}, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return Board{}, fmt.Errorf("fetch board: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Board{}, fmt.Errorf("fetch board: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Board{}, fmt.Errorf("fetch board: unexpected status %d", resp.StatusCode)
	}
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return Board{}, ErrNoBoard
	}
	var wire boardWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return Board{}, fmt.Errorf("fetch board: %w", err)
	}
	return boardFromWire(wire)
}

// boardFromWire validates game parameters and decodes the cell grid. The
// solver's functions are total only over well-formed boards, so malformed
// documents are rejected here and never reach it.
func boardFromWire(wire boardWire) (Board, error) {
	if wire.M < 1 || wire.M > MaxBoardDim || wire.N < 1 || wire.N > MaxBoardDim {
		return Board{}, fmt.Errorf("board dimensions %dx%d out of range", wire.M, wire.N)
	}
	maxDim := wire.M
	if wire.N > maxDim {
		maxDim = wire.N
	}
	if wire.K < 1 || wire.K > maxDim {
		return Board{}, fmt.Errorf("win length %d out of range for %dx%d board", wire.K, wire.M, wire.N)
	}
	if len(wire.Board) != wire.M {
		return Board{}, fmt.Errorf("board data has %d columns, want %d", len(wire.Board), wire.M)
	}
	b := NewBoard(wire.M, wire.N, wire.K)
	for x, column := range wire.Board {
		if len(column) != wire.N {
			return Board{}, fmt.Errorf("board column %d has %d cells, want %d", x, len(column), wire.N)
		}
		for y, raw := range column {
			switch raw {
			case -1:
				// empty
			case 0:
				b.Set(x, y, CellOwn)
			case 1:
				b.Set(x, y, CellTheirs)
			default:
				return Board{}, fmt.Errorf("unknown cell value %d at (%d,%d)", raw, x, y)
			}
		}
	}
	return b, nil
}

// SetName registers the bot's display name with the service.
func (c *GameClient) SetName(ctx context.Context, name string) error {
	form := url.Values{}
	form.Set("key", c.key)
	form.Set("name", name)
	return c.postForm(ctx, "/api/set_name", form)
}

// PostMove submits a chosen move. Failures are reported to the caller for
// logging, never retried here; the next poll cycle fetches fresh state.
func (c *GameClient) PostMove(ctx context.Context, pos Position) error {
	form := url.Values{}
	form.Set("key", c.key)
	form.Set("x", strconv.Itoa(pos.X))
	form.Set("y", strconv.Itoa(pos.Y))
	return c.postForm(ctx, "/api/move", form)
}

func (c *GameClient) postForm(ctx context.Context, path string, form url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}
