package main

const (
	// evalBound is the tightest bound on EvaluateBoard's output for a full
	// 15x15 board. Scores outside (-evalBound, evalBound) can only be the
	// win/loss sentinels or their decayed descendants.
	evalBound = 7230

	scoreWin  = 10000
	scoreLoss = -10000
)

// EvaluateBoard scores a non-terminal board from our perspective. Two
// additive terms:
//
//   - position: each stone is worth 1, or 2 inside the central third of
//     both dimensions, positive for us and negative for the opponent.
//   - run potential: along every row, column and diagonal, a run is a
//     stretch unbroken by the other player (empty cells extend it). The
//     i-th stone in a run adds i+1 to the run's score, and the run's score
//     counts only if the run is at least K long. One stone in an open line
//     of K is worth 2, two stones 5, three 9, and so on.
//
// The score is exactly anti-symmetric: swapping the two players' stones
// negates it.
func EvaluateBoard(b Board) int {
	m, n := b.m, b.n
	score := 0

	for x := 0; x < m; x++ {
		for y := 0; y < n; y++ {
			value := 1
			if x >= m/3 && x < m-m/3 && y >= n/3 && y < n-n/3 {
				value = 2
			}
			switch b.At(x, y) {
			case CellOwn:
				score += value
			case CellTheirs:
				score -= value
			}
		}
	}

	var runs runScorer
	runs.k = b.k

	for y := 0; y < n; y++ {
		runs.resetLine()
		for x := 0; x < m; x++ {
			runs.step(b.At(x, y))
		}
		runs.endLine()
	}

	for x := 0; x < m; x++ {
		runs.resetLine()
		for y := 0; y < n; y++ {
			runs.step(b.At(x, y))
		}
		runs.endLine()
	}

	// diagonal clipping matches EvaluateOutcome, both families
	for i := 0; i < m+n-1; i++ {
		j := 0
		if i >= m {
			j = i - m + 1
		}
		z := n
		if i < n {
			z = i + 1
		}
		runs.resetLine()
		for y := j; y < z; y++ {
			runs.step(b.At(i-y, y))
		}
		runs.endLine()
	}
	for i := 0; i < m+n-1; i++ {
		j := 0
		if i < n {
			j = n - i - 1
		}
		z := n
		if i >= m {
			z = m + n - i - 1
		}
		runs.resetLine()
		for y := j; y < z; y++ {
			runs.step(b.At(i+y-n+1, y))
		}
		runs.endLine()
	}

	return score + runs.total
}

// runScorer accumulates the run-potential term for one line at a time.
// A player's run length grows on both their stones and empty cells and
// resets only when the other player's stone interrupts; an interrupted or
// line-ending run contributes its accumulated score when its length
// reached K.
type runScorer struct {
	k     int
	total int

	lenOwn    int
	stonesOwn int
	scoreOwn  int

	lenTheirs    int
	stonesTheirs int
	scoreTheirs  int
}

func (r *runScorer) resetLine() {
	r.lenOwn, r.stonesOwn, r.scoreOwn = 0, 0, 0
	r.lenTheirs, r.stonesTheirs, r.scoreTheirs = 0, 0, 0
}

func (r *runScorer) step(cell Cell) {
	switch cell {
	case CellOwn:
		r.stonesOwn++
		r.scoreOwn += r.stonesOwn + 1
		r.lenOwn++
		if r.lenTheirs >= r.k {
			r.total -= r.scoreTheirs
		}
		r.lenTheirs, r.stonesTheirs, r.scoreTheirs = 0, 0, 0
	case CellTheirs:
		r.stonesTheirs++
		r.scoreTheirs += r.stonesTheirs + 1
		r.lenTheirs++
		if r.lenOwn >= r.k {
			r.total += r.scoreOwn
		}
		r.lenOwn, r.stonesOwn, r.scoreOwn = 0, 0, 0
	default:
		r.lenOwn++
		r.lenTheirs++
	}
}

func (r *runScorer) endLine() {
	if r.lenTheirs >= r.k {
		r.total -= r.scoreTheirs
	}
	if r.lenOwn >= r.k {
		r.total += r.scoreOwn
	}
}

// HighestScoredMove picks the empty cell whose resulting board evaluates
// highest. It is the next-to-last stage of the move pipeline, used when
// search produced nothing.
func HighestScoredMove(b Board) (Position, bool) {
	best := scoreLoss
	bestPos := Position{}
	found := false
	cursor := StartCursor()
	for {
		pos, ok := NextPosition(b, cursor)
		if !ok {
			break
		}
		score := EvaluateBoard(b.CloneWithMove(CellOwn, pos))
		if score > best || !found {
			best = score
			bestPos = pos
			found = true
		}
		cursor = pos
	}
	return bestPos, found
}
