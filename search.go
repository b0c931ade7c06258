package main

import "log"

// maxSearchDepth caps how many plies the depth controller will ever grant.
const maxSearchDepth = 20

// minimax is a depth-bounded adversarial search with alpha-beta pruning.
// Terminal boards return the win/loss sentinels (or 0 for a tie) and
// depth-exhausted leaves return the static evaluation; neither records a
// move. Otherwise every empty cell is tried for the side to move and the
// window is threaded through the recursion, the maximizing branch raising
// alpha and the minimizing branch lowering beta, pruning once alpha >= beta.
//
// When a branch value falls below the clearly-losing bound it is bumped by
// one before returning, so an unavoidable loss further in the future scores
// better than one close at hand: more plies before defeat means more
// chances for an imperfect opponent to err. Winning scores get no such
// decay on purpose — a forced win is a forced win, and taking the nearest
// one ends games sooner. Because of the one-sided decay this must stay
// plain minimax, not negamax.
func minimax(b Board, depth, alpha, beta int, maximizing bool) (int, Position, bool) {
	switch EvaluateOutcome(b) {
	case OutcomeOwnWin:
		return scoreWin, Position{}, false
	case OutcomeTheirsWin:
		return scoreLoss, Position{}, false
	case OutcomeTie:
		return 0, Position{}, false
	}

	if depth == 0 {
		return EvaluateBoard(b), Position{}, false
	}

	if maximizing {
		value := scoreLoss
		best := Position{}
		found := false
		cursor := StartCursor()
		for {
			pos, ok := NextPosition(b, cursor)
			if !ok {
				break
			}
			child := b.CloneWithMove(CellOwn, pos)
			nodeValue, _, _ := minimax(child, depth-1, alpha, beta, false)
			if nodeValue > value {
				value = nodeValue
				best = pos
				found = true
			}
			if value > alpha {
				alpha = value
			}
			if alpha >= beta {
				break
			}
			cursor = pos
		}
		if value < -evalBound {
			value++
		}
		return value, best, found
	}

	value := scoreWin
	best := Position{}
	found := false
	cursor := StartCursor()
	for {
		pos, ok := NextPosition(b, cursor)
		if !ok {
			break
		}
		child := b.CloneWithMove(CellTheirs, pos)
		nodeValue, _, _ := minimax(child, depth-1, alpha, beta, true)
		if nodeValue < value {
			value = nodeValue
			best = pos
			found = true
		}
		if value < beta {
			beta = value
		}
		if alpha >= beta {
			break
		}
		cursor = pos
	}
	if value < -evalBound {
		value++
	}
	return value, best, found
}

// MinimaxMove runs the search for our side with a full window and returns
// the chosen move, if the board had one to choose.
func MinimaxMove(b Board, depth int) (Position, bool) {
	score, pos, ok := minimax(b, depth, scoreLoss, scoreWin, true)
	log.Printf("[mnk] minimax score %d at depth %d", score, depth)
	return pos, ok
}

// ChooseDepth picks the deepest search that stays inside nodeBudget
// projected nodes. Each ply consumes one empty cell, so the branching
// factor shrinks by one per level; the running product of remaining choices
// approximates total nodes searched. Capped at maxSearchDepth.
func ChooseDepth(emptyCount, nodeBudget int) int {
	searched := emptyCount
	open := emptyCount
	for i := 1; i < maxSearchDepth; i++ {
		if open == 0 {
			return i - 1
		}
		if searched >= nodeBudget {
			return i - 1
		}
		open--
		searched *= open
	}
	return maxSearchDepth
}

// ChooseMove is the full move-selection pipeline: tactical solver first,
// then depth-controlled minimax, then a single-ply evaluator ranking, then
// the first empty cell. It returns a move whenever any empty cell exists;
// ok is false only on a board with no empty cells.
func ChooseMove(b Board, nodeBudget int) (Position, bool) {
	if pos, ok := FindTacticalMove(b); ok {
		log.Printf("[mnk] tactical solver found move (%d,%d)", pos.X, pos.Y)
		return pos, true
	}
	depth := ChooseDepth(b.CountEmpty(), nodeBudget)
	log.Printf("[mnk] running minimax with depth=%d", depth)
	if pos, ok := MinimaxMove(b, depth); ok {
		return pos, true
	}
	if pos, ok := HighestScoredMove(b); ok {
		log.Printf("[mnk] falling back to highest scored move (%d,%d)", pos.X, pos.Y)
		return pos, true
	}
	pos, ok := NextPosition(b, StartCursor())
	if ok {
		log.Printf("[mnk] falling back to first empty cell (%d,%d)", pos.X, pos.Y)
	}
	return pos, ok
}
