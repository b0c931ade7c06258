package main

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeOwnWin
	OutcomeTheirsWin
	OutcomeTie
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOwnWin:
		return "own win"
	case OutcomeTheirsWin:
		return "opponent win"
	case OutcomeTie:
		return "tie"
	default:
		return "none"
	}
}

// EvaluateOutcome scans the whole board for a K-in-a-row run. Rows, columns
// and both diagonal families each keep two independent running counts, one
// per player, reset whenever a cell does not belong to that player. The
// first run to reach K in scan order wins; a legal game can never hold two
// completed runs at once, so the short-circuit is safe.
func EvaluateOutcome(b Board) Outcome {
	m, n, k := b.m, b.n, b.k

	// rows
	for y := 0; y < n; y++ {
		count1, count2 := 0, 0
		for x := 0; x < m; x++ {
			if o, done := stepRun(b.At(x, y), &count1, &count2, k); done {
				return o
			}
		}
	}

	// columns
	for x := 0; x < m; x++ {
		count1, count2 := 0, 0
		for y := 0; y < n; y++ {
			if o, done := stepRun(b.At(x, y), &count1, &count2, k); done {
				return o
			}
		}
	}

	// down-left diagonals, indexed by x+y
	for i := 0; i < m+n-1; i++ {
		j := 0
		if i >= m {
			j = i - m + 1
		}
		z := n
		if i < n {
			z = i + 1
		}
		count1, count2 := 0, 0
		for y := j; y < z; y++ {
			x := i - y
			if o, done := stepRun(b.At(x, y), &count1, &count2, k); done {
				return o
			}
		}
	}

	// down-right diagonals. The clipping here is deliberately different
	// from the down-left family and the off-by-ones are easy to get
	// wrong. This pass also doubles as the full-board check for ties.
	hasEmpty := false
	for i := 0; i < m+n-1; i++ {
		j := 0
		if i < n {
			j = n - i - 1
		}
		z := n
		if i >= m {
			z = m + n - i - 1
		}
		count1, count2 := 0, 0
		for y := j; y < z; y++ {
			x := i + y - n + 1
			cell := b.At(x, y)
			if cell == CellEmpty {
				hasEmpty = true
			}
			if o, done := stepRun(cell, &count1, &count2, k); done {
				return o
			}
		}
	}

	if hasEmpty {
		return OutcomeNone
	}
	return OutcomeTie
}

func stepRun(cell Cell, count1, count2 *int, k int) (Outcome, bool) {
	if cell == CellOwn {
		*count1++
	} else {
		*count1 = 0
	}
	if cell == CellTheirs {
		*count2++
	} else {
		*count2 = 0
	}
	if *count1 >= k {
		return OutcomeOwnWin, true
	}
	if *count2 >= k {
		return OutcomeTheirsWin, true
	}
	return OutcomeNone, false
}
