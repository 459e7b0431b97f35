// Package eval contains position evaluation logic and utilities.
package eval

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
)

// Evaluator is a static position evaluator. The returned score is from the perspective of
// the side to move.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) Score
}

// Material returns the nominal material advantage balance for the side to move, in
// centipawns.
type Material struct{}

func (Material) Evaluate(_ context.Context, b *board.Board) Score {
	turn := b.Turn()

	var score Score
	for p := board.ZeroPiece; p < board.NumPieces; p++ {
		diff := b.Piece(turn, p).PopCount() - b.Piece(turn.Opponent(), p).PopCount()
		score += Score(diff) * NominalValue(p)
	}
	return score
}

// NominalValue is the absolute nominal value in centipawns of a piece. The king has an
// arbitrary value well above any achievable material count, so it never factors into
// material comparisons in practice.
func NominalValue(p board.Piece) Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Bishop, board.Knight:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain, in centipawns, realized by playing m. It
// ignores the possibility of the captured or promoted piece itself being recaptured; it is
// meant to rank moves for ordering, not to evaluate a resulting position.
func NominalValueGain(m board.Move) Score {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}
