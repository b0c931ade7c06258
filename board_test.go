package main

import "testing"

// mustBoard builds a board from row strings (y increasing downward) using
// 'X' for our stones, 'O' for the opponent's and '.' for empty cells.
func mustBoard(t *testing.T, k int, rows ...string) Board {
	t.Helper()
	if len(rows) == 0 {
		t.Fatalf("no rows given")
	}
	m := len(rows[0])
	n := len(rows)
	b := NewBoard(m, n, k)
	for y, row := range rows {
		if len(row) != m {
			t.Fatalf("row %d has %d cells, want %d", y, len(row), m)
		}
		for x, ch := range row {
			switch ch {
			case 'X':
				b.Set(x, y, CellOwn)
			case 'O':
				b.Set(x, y, CellTheirs)
			case '.':
			default:
				t.Fatalf("unknown cell %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return b
}

func TestNextPositionEnumeratesEmptyBoardInScanOrder(t *testing.T) {
	b := NewBoard(2, 2, 2)
	want := []Position{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	cursor := StartCursor()
	for i, expected := range want {
		pos, ok := NextPosition(b, cursor)
		if !ok {
			t.Fatalf("enumeration ended early at step %d", i)
		}
		if pos != expected {
			t.Fatalf("step %d: got (%d,%d), want (%d,%d)", i, pos.X, pos.Y, expected.X, expected.Y)
		}
		cursor = pos
	}
	if pos, ok := NextPosition(b, cursor); ok {
		t.Fatalf("expected exhaustion, got (%d,%d)", pos.X, pos.Y)
	}
}

func TestNextPositionSkipsOccupiedCells(t *testing.T) {
	b := mustBoard(t, 3,
		".X.",
		"OOO",
		"..X",
	)
	var visited []Position
	cursor := StartCursor()
	for {
		pos, ok := NextPosition(b, cursor)
		if !ok {
			break
		}
		visited = append(visited, pos)
		cursor = pos
	}
	want := []Position{{0, 0}, {2, 0}, {0, 2}, {1, 2}}
	if len(visited) != len(want) {
		t.Fatalf("visited %d cells, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("step %d: got (%d,%d), want (%d,%d)", i, visited[i].X, visited[i].Y, want[i].X, want[i].Y)
		}
	}
}

func TestCloneWithMoveLeavesParentUntouched(t *testing.T) {
	parent := NewBoard(3, 3, 3)
	child := parent.CloneWithMove(CellOwn, Position{X: 1, Y: 1})
	if parent.At(1, 1) != CellEmpty {
		t.Fatalf("parent board mutated by CloneWithMove")
	}
	if child.At(1, 1) != CellOwn {
		t.Fatalf("child board missing placed stone")
	}
	diff := 0
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if parent.At(x, y) != child.At(x, y) {
				diff++
			}
		}
	}
	if diff != 1 {
		t.Fatalf("child differs from parent in %d cells, want exactly 1", diff)
	}
}

func TestSwapPerspectiveIsInvolution(t *testing.T) {
	b := mustBoard(t, 3,
		"X.O",
		".XO",
		"O..",
	)
	swapped := b.SwapPerspective()
	if swapped.At(0, 0) != CellTheirs || swapped.At(2, 0) != CellOwn {
		t.Fatalf("swap did not exchange stones")
	}
	back := swapped.SwapPerspective()
	for y := 0; y < b.N(); y++ {
		for x := 0; x < b.M(); x++ {
			if back.At(x, y) != b.At(x, y) {
				t.Fatalf("double swap changed cell (%d,%d)", x, y)
			}
		}
	}
}

func TestCountEmpty(t *testing.T) {
	b := mustBoard(t, 3,
		"X.O",
		"...",
		"O.X",
	)
	if got := b.CountEmpty(); got != 5 {
		t.Fatalf("CountEmpty = %d, want 5", got)
	}
}
