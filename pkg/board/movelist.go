package board

import "math"

// MovePriority represents a move ordering priority. Higher values are searched first.
type MovePriority int32

// MaxPriority forces a move to the front of the order, e.g., a transposition table hint.
const MaxPriority MovePriority = math.MaxInt32

// MovePriorityFn assigns a priority to a move for ordering purposes.
type MovePriorityFn func(move Move) MovePriority

// MovePredicateFn selects a subset of moves to explore, e.g. restricting quiescence search
// to captures and promotions.
type MovePredicateFn func(move Move) bool

// First forces the given move to the front of the order; every other move keeps the
// priority assigned by fn. Used to search a transposition table's remembered best move
// first without needing to special-case it in the caller's loop.
func First(first Move, fn MovePriorityFn) MovePriorityFn {
	return func(m Move) MovePriority {
		if first.Equals(m) {
			return MaxPriority
		}
		return fn(m)
	}
}

// SortByPriority orders the moves by descending priority in place, preserving relative
// order of equal-priority moves. Implemented as insertion sort: move lists at a search
// node are short (rarely more than a few dozen entries), so the simplicity and stability
// of insertion sort outweighs any asymptotic advantage of a heap.
func SortByPriority(moves []Move, fn MovePriorityFn) {
	priority := make([]MovePriority, len(moves))
	for i, m := range moves {
		priority[i] = fn(m)
	}

	for i := 1; i < len(moves); i++ {
		m, p := moves[i], priority[i]
		j := i - 1
		for j >= 0 && priority[j] < p {
			moves[j+1] = moves[j]
			priority[j+1] = priority[j]
			j--
		}
		moves[j+1] = m
		priority[j+1] = p
	}
}
