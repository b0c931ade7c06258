package main

import "strings"

// MaxBoardDim is the largest board edge the solver supports in either
// dimension.
const MaxBoardDim = 15

type Cell uint8

const (
	CellEmpty Cell = iota
	CellOwn
	CellTheirs
	// CellMarker annotates a chosen move when rendering. It is never
	// produced by gameplay logic and never read by the solver.
	CellMarker
)

// Board is an M x N grid of cells together with the K-in-a-row win length.
// All geometry is bounded by the stored dimensions, so out-of-range cells
// simply do not exist. Search always works on copies and never mutates a
// caller's board.
type Board struct {
	m, n, k int
	cells   []Cell
}

func NewBoard(m, n, k int) Board {
	return Board{m: m, n: n, k: k, cells: make([]Cell, m*n)}
}

func (b Board) M() int { return b.m }
func (b Board) N() int { return b.n }
func (b Board) K() int { return b.k }

func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b *Board) Set(x, y int, value Cell) {
	b.cells[b.index(x, y)] = value
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.m && y < b.n
}

func (b Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Clone() Board {
	clone := Board{m: b.m, n: b.n, k: b.k}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

// CloneWithMove copies the board and places value at pos. This is the only
// way search code derives child positions, so a child differs from its
// parent by exactly one cell.
func (b Board) CloneWithMove(value Cell, pos Position) Board {
	clone := b.Clone()
	clone.Set(pos.X, pos.Y, value)
	return clone
}

// SwapPerspective returns the board with own and opposing stones exchanged.
func (b Board) SwapPerspective() Board {
	clone := b.Clone()
	for i, cell := range clone.cells {
		switch cell {
		case CellOwn:
			clone.cells[i] = CellTheirs
		case CellTheirs:
			clone.cells[i] = CellOwn
		}
	}
	return clone
}

func (b Board) index(x, y int) int {
	return y*b.m + x
}

// Position is a board coordinate. It doubles as the enumeration cursor for
// NextPosition and as the chosen-move output of the solver.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// StartCursor is the before-first sentinel for NextPosition. It is not a
// valid board coordinate.
func StartCursor() Position {
	return Position{X: -1, Y: 0}
}

// NextPosition returns the first empty cell after cursor in scan order
// (x varies fastest). Pass StartCursor to begin; ok is false once the empty
// cells are exhausted. Every empty cell is visited exactly once.
func NextPosition(b Board, cursor Position) (Position, bool) {
	x := cursor.X
	y := cursor.Y
	if x == -1 {
		x = 0
		y = 0
	} else {
		x++
		if x >= b.m {
			x = 0
			y++
			if y >= b.n {
				return Position{}, false
			}
		}
	}
	for y < b.n {
		if b.At(x, y) == CellEmpty {
			return Position{X: x, Y: y}, true
		}
		x++
		if x >= b.m {
			x = 0
			y++
		}
	}
	return Position{}, false
}

// Render draws the board for the console, own stones green, opposing stones
// red, the move marker blue.
func (b Board) Render() string {
	var sb strings.Builder
	for y := 0; y < b.n; y++ {
		for x := 0; x < b.m; x++ {
			switch b.At(x, y) {
			case CellOwn:
				sb.WriteString("\x1b[1;32m #\x1b[m")
			case CellTheirs:
				sb.WriteString("\x1b[1;31m #\x1b[m")
			case CellMarker:
				sb.WriteString("\x1b[1;34m #\x1b[m")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	for i := 0; i < b.m; i++ {
		sb.WriteString("--")
	}
	sb.WriteByte('\n')
	return sb.String()
}
