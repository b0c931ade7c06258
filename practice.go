package main

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// PracticeServer emulates the remote m,n,k service locally so bots can play
// each other without the real service. Two seats are claimed by API key in
// order of first contact; seat 0 moves first. The board endpoint serves
// each seat from its own perspective, exactly like the remote API, and
// spectators can watch the neutral board over a websocket.
type PracticeServer struct {
	mu       sync.Mutex
	board    Board
	m, n, k  int
	seats    []practiceSeat
	toMove   int
	finished bool
	winner   int // claiming seat index, -1 while undecided or tied
	tied     bool
	hub      *Hub
}

type practiceSeat struct {
	key  string
	name string
}

type practiceState struct {
	M          int     `json:"m"`
	N          int     `json:"n"`
	K          int     `json:"k"`
	Board      [][]int `json:"board"`
	NextPlayer int     `json:"next_player"`
	Winner     int     `json:"winner"`
	Tied       bool    `json:"tied"`
	Finished   bool    `json:"finished"`
	Names      []string `json:"names"`
}

func NewPracticeServer(m, n, k int, hub *Hub) *PracticeServer {
	return &PracticeServer{
		board:  NewBoard(m, n, k),
		m:      m,
		n:      n,
		k:      k,
		winner: -1,
		hub:    hub,
	}
}

func (p *PracticeServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/board", p.handleBoard)
	r.Post("/api/set_name", p.handleSetName)
	r.Post("/api/move", p.handleMove)
	r.Get("/api/status", p.handleStatus)
	r.Post("/api/reset", p.handleReset)
	if p.hub != nil {
		r.Get("/ws/spectate", func(w http.ResponseWriter, r *http.Request) {
			serveSpectatorWS(p.hub, p.Snapshot, w, r)
		})
	}
	return r
}

func (p *PracticeServer) handleBoard(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	p.mu.Lock()
	defer p.mu.Unlock()
	seatIdx, err := p.seatFor(key)
	if err != nil {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
		return
	}
	// the board is only served to the seat whose turn it is, once both
	// seats have joined; everyone else gets null and polls again
	if len(p.seats) < 2 || p.finished || p.toMove != seatIdx {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, p.wireBoardFor(seatIdx))
}

func (p *PracticeServer) handleSetName(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form"})
		return
	}
	key := r.PostForm.Get("key")
	name := r.PostForm.Get("name")
	p.mu.Lock()
	defer p.mu.Unlock()
	seatIdx, err := p.seatFor(key)
	if err != nil {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
		return
	}
	p.seats[seatIdx].name = name
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (p *PracticeServer) handleMove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form"})
		return
	}
	key := r.PostForm.Get("key")
	x, errX := strconv.Atoi(r.PostForm.Get("x"))
	y, errY := strconv.Atoi(r.PostForm.Get("y"))
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid coordinates"})
		return
	}

	p.mu.Lock()
	seatIdx, err := p.seatFor(key)
	if err == nil {
		err = p.applyMove(seatIdx, x, y)
	}
	state := p.snapshotLocked()
	p.mu.Unlock()

	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if p.hub != nil {
		p.hub.BroadcastState(state)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (p *PracticeServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.Snapshot())
}

func (p *PracticeServer) handleReset(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.board = NewBoard(p.m, p.n, p.k)
	p.toMove = 0
	p.finished = false
	p.winner = -1
	p.tied = false
	state := p.snapshotLocked()
	p.mu.Unlock()
	if p.hub != nil {
		p.hub.BroadcastState(state)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// seatFor resolves a key to its seat, claiming a free seat for unknown keys
// while any remain.
func (p *PracticeServer) seatFor(key string) (int, error) {
	if key == "" {
		return 0, fmt.Errorf("missing key")
	}
	for i, s := range p.seats {
		if s.key == key {
			return i, nil
		}
	}
	if len(p.seats) >= 2 {
		return 0, fmt.Errorf("game is full")
	}
	p.seats = append(p.seats, practiceSeat{key: key})
	return len(p.seats) - 1, nil
}

func (p *PracticeServer) applyMove(seatIdx, x, y int) error {
	if len(p.seats) < 2 {
		return fmt.Errorf("waiting for opponent")
	}
	if p.finished {
		return fmt.Errorf("game is over")
	}
	if p.toMove != seatIdx {
		return fmt.Errorf("not your turn")
	}
	if !p.board.InBounds(x, y) {
		return fmt.Errorf("out of bounds")
	}
	if p.board.At(x, y) != CellEmpty {
		return fmt.Errorf("cell occupied")
	}
	stone := CellOwn
	if seatIdx == 1 {
		stone = CellTheirs
	}
	p.board.Set(x, y, stone)
	// the neutral board holds seat 0's stones as CellOwn, so the outcome
	// maps straight onto seat indexes
	switch EvaluateOutcome(p.board) {
	case OutcomeOwnWin:
		p.finished = true
		p.winner = 0
	case OutcomeTheirsWin:
		p.finished = true
		p.winner = 1
	case OutcomeTie:
		p.finished = true
		p.tied = true
	}
	p.toMove = 1 - p.toMove
	return nil
}

// wireBoardFor serializes the board as the remote API would for one seat:
// that seat's stones are 0, the opponent's are 1, empty cells are -1.
func (p *PracticeServer) wireBoardFor(seatIdx int) boardWire {
	own := CellOwn
	if seatIdx == 1 {
		own = CellTheirs
	}
	columns := make([][]int, p.m)
	for x := 0; x < p.m; x++ {
		columns[x] = make([]int, p.n)
		for y := 0; y < p.n; y++ {
			switch cell := p.board.At(x, y); {
			case cell == CellEmpty:
				columns[x][y] = -1
			case cell == own:
				columns[x][y] = 0
			default:
				columns[x][y] = 1
			}
		}
	}
	return boardWire{M: p.m, N: p.n, K: p.k, Board: columns}
}

func (p *PracticeServer) Snapshot() practiceState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *PracticeServer) snapshotLocked() practiceState {
	rows := make([][]int, p.n)
	for y := 0; y < p.n; y++ {
		rows[y] = make([]int, p.m)
		for x := 0; x < p.m; x++ {
			switch p.board.At(x, y) {
			case CellOwn:
				rows[y][x] = 1
			case CellTheirs:
				rows[y][x] = 2
			default:
				rows[y][x] = 0
			}
		}
	}
	names := make([]string, len(p.seats))
	for i, s := range p.seats {
		names[i] = s.name
	}
	winner := 0
	if p.winner >= 0 {
		winner = p.winner + 1
	}
	return practiceState{
		M:          p.m,
		N:          p.n,
		K:          p.k,
		Board:      rows,
		NextPlayer: p.toMove + 1,
		Winner:     winner,
		Tied:       p.tied,
		Finished:   p.finished,
		Names:      names,
	}
}
