package search

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// Exploration defines move ordering and selection in a given position. Selection is
// required by quiescence search (to restrict the search to noisy moves) and can also be
// used for forward pruning in full search. Default: explore all moves in MVV-LVA order.
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn)

// FullExploration orders all moves by MVV-LVA and explores every one of them. Default for
// full-width search.
func FullExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, IsAnyMove
}

// NoisyExploration orders moves by MVV-LVA and restricts exploration to quick material
// gains: promotions, and captures that are either profitable or safe. Default for
// quiescence search.
func NoisyExploration(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
	return MVVLVA, IsQuickGain(b)
}

// MVVLVA implements the MVV-LVA ("most valuable victim, least valuable attacker") move
// priority: order captures and promotions by the value gained, breaking ties in favor of
// the cheapest attacking piece.
func MVVLVA(m board.Move) board.MovePriority {
	if p := board.MovePriority(100 * eval.NominalValueGain(m)); p > 0 {
		return p - board.MovePriority(eval.NominalValue(m.Piece))
	}
	return 0
}

// IsAnyMove selects all moves.
func IsAnyMove(m board.Move) bool {
	return true
}

// NoMove selects no moves. Used to disable quiescence.
func NoMove(m board.Move) bool {
	return false
}

// IsNotUnderPromotion selects any move except an under-promotion.
func IsNotUnderPromotion(m board.Move) bool {
	return !m.IsPromotion() || m.Promotion == board.Queen
}

// IsQuickGain selects promotions and captures that are either immediately profitable or
// land on a square not defended by the opponent.
func IsQuickGain(b *board.Board) board.MovePredicateFn {
	turn := b.Turn()
	return func(m board.Move) bool {
		if m.IsPromotion() {
			return true
		}
		if m.IsCapture() {
			if eval.NominalValue(m.Piece) < eval.NominalValue(m.Capture) {
				return true
			}
			if !b.IsAttacked(turn, m.To) {
				return true
			}
		}
		return false
	}
}
