package main

// FindTacticalMove checks a board for forcing moves before any deep search
// runs. A depth-limited search on a mostly empty board may only reach two
// plies and miss forks, so these shallow exhaustive checks run first. Tiers
// in strict priority order:
//
//  1. a move that wins immediately
//  2. a cell the opponent would win with immediately (block it)
//  3. a move that creates two simultaneous winning threats (fork)
//  4. a cell the opponent could fork from (block it); a candidate with only
//     one direct threat still counts if a one-ply-deeper probe finds a fork
//     behind it
//
// The deeper probe exists only on the blocking tiers, not the forking tier.
// That asymmetry is inherited behavior, kept pending product-owner review;
// do not symmetrize it here.
func FindTacticalMove(b Board) (Position, bool) {
	if pos, ok := findWinningMove(b, CellOwn); ok {
		return pos, true
	}
	if pos, ok := findWinningMove(b, CellTheirs); ok {
		return pos, true
	}
	if pos, ok := findForkMove(b); ok {
		return pos, true
	}
	if pos, ok := findForkBlock(b, CellOwn); ok {
		return pos, true
	}
	if pos, ok := findForkBlock(b, CellTheirs); ok {
		return pos, true
	}
	return Position{}, false
}

// findWinningMove returns the first empty cell that completes a K-run for
// the given player.
func findWinningMove(b Board, stone Cell) (Position, bool) {
	want := OutcomeOwnWin
	if stone == CellTheirs {
		want = OutcomeTheirsWin
	}
	cursor := StartCursor()
	for {
		pos, ok := NextPosition(b, cursor)
		if !ok {
			return Position{}, false
		}
		if EvaluateOutcome(b.CloneWithMove(stone, pos)) == want {
			return pos, true
		}
		cursor = pos
	}
}

// countFollowUpWins counts the empty cells from which stone's player would
// win immediately.
func countFollowUpWins(b Board, stone Cell) int {
	want := OutcomeOwnWin
	if stone == CellTheirs {
		want = OutcomeTheirsWin
	}
	wins := 0
	cursor := StartCursor()
	for {
		pos, ok := NextPosition(b, cursor)
		if !ok {
			return wins
		}
		if EvaluateOutcome(b.CloneWithMove(stone, pos)) == want {
			wins++
		}
		cursor = pos
	}
}

// findForkMove returns the first own move that leaves at least two distinct
// immediate winning follow-ups.
func findForkMove(b Board) (Position, bool) {
	cursor := StartCursor()
	for {
		pos, ok := NextPosition(b, cursor)
		if !ok {
			return Position{}, false
		}
		child := b.CloneWithMove(CellOwn, pos)
		if countFollowUpWins(child, CellOwn) >= 2 {
			return pos, true
		}
		cursor = pos
	}
}

// findForkBlock returns the first cell the opponent could fork from, so we
// occupy it ourselves. A candidate that yields exactly one direct winning
// follow-up is probed one level deeper: if any reply by probeStone's player
// leaves that player two winning follow-ups, the candidate counts as a fork
// anyway. The probe runs twice from FindTacticalMove, once for each side's
// delayed forks, in that order.
func findForkBlock(b Board, probeStone Cell) (Position, bool) {
	cursor := StartCursor()
	for {
		pos, ok := NextPosition(b, cursor)
		if !ok {
			return Position{}, false
		}
		child := b.CloneWithMove(CellTheirs, pos)
		winCount := countFollowUpWins(child, CellTheirs)
		if winCount == 1 && hasDeepFork(child, probeStone) {
			winCount++
		}
		if winCount >= 2 {
			return pos, true
		}
		cursor = pos
	}
}

// hasDeepFork reports whether any reply by stone's player creates a fork
// for that player.
func hasDeepFork(b Board, stone Cell) bool {
	cursor := StartCursor()
	for {
		pos, ok := NextPosition(b, cursor)
		if !ok {
			return false
		}
		reply := b.CloneWithMove(stone, pos)
		if countFollowUpWins(reply, stone) >= 2 {
			return true
		}
		cursor = pos
	}
}
