package eval_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) *board.Board {
	t.Helper()
	b, err := fen.Decode(board.NewZobristTable(1), s)
	require.NoError(t, err)
	return b
}

func TestScoreNegateAndInvalid(t *testing.T) {
	assert.True(t, eval.InvalidScore.IsInvalid())
	assert.Equal(t, eval.InvalidScore, eval.InvalidScore.Negate())
	assert.Equal(t, eval.Score(-100), eval.Score(100).Negate())
}

func TestScoreIncrementMateDistance(t *testing.T) {
	mate := eval.CheckmateScore
	aged := eval.IncrementMateDistance(mate)
	assert.True(t, aged.IsMate())
	assert.True(t, aged.Less(mate))

	assert.Equal(t, eval.ZeroScore, eval.IncrementMateDistance(eval.ZeroScore))
}

func TestScoreMateIn(t *testing.T) {
	n, ok := eval.MateIn(eval.CheckmateScore)
	require.True(t, ok)
	assert.Equal(t, 0, n)

	_, ok = eval.MateIn(eval.Score(42))
	assert.False(t, ok)
}

func TestMaterialEvaluateStartPositionIsBalanced(t *testing.T) {
	b := mustDecode(t, fen.Initial)
	assert.Equal(t, eval.ZeroScore, eval.Material{}.Evaluate(context.Background(), b))
}

func TestMaterialEvaluateFavorsExtraQueen(t *testing.T) {
	b := mustDecode(t, "4k3/8/8/8/8/8/8/4K2Q w - - 0 1")
	assert.True(t, eval.ZeroScore.Less(eval.Material{}.Evaluate(context.Background(), b)))
}

func TestPieceSquareTableStartPositionIsBalanced(t *testing.T) {
	b := mustDecode(t, fen.Initial)
	assert.Equal(t, eval.ZeroScore, eval.PieceSquareTable{}.Evaluate(context.Background(), b))
}

func TestPieceSquareTableFavorsCentralizedKnight(t *testing.T) {
	centralized := mustDecode(t, "4k3/8/8/3N4/8/8/8/4K3 w - - 0 1")
	edge := mustDecode(t, "4k3/8/8/8/8/8/8/N3K3 w - - 0 1")

	assert.True(t, eval.PieceSquareTable{}.Evaluate(context.Background(), edge).Less(
		eval.PieceSquareTable{}.Evaluate(context.Background(), centralized)))
}

func TestNominalValueGain(t *testing.T) {
	capture := board.Move{Type: board.Capture, Capture: board.Rook}
	assert.Equal(t, eval.NominalValue(board.Rook), eval.NominalValueGain(capture))

	quiet := board.Move{Type: board.Push}
	assert.Equal(t, eval.ZeroScore, eval.NominalValueGain(quiet))
}

func TestFindAttackers(t *testing.T) {
	b := mustDecode(t, "4k3/8/8/3p4/8/8/R7/4K3 w - - 0 1")
	attackers := eval.FindAttackers(b, board.White, board.A5)
	require.Len(t, attackers, 1)
	assert.Equal(t, board.A2, attackers[0].Square)
	assert.Equal(t, board.Rook, attackers[0].Piece)
}

func TestFindPinsDetectsRookPin(t *testing.T) {
	b := mustDecode(t, "k3r3/8/8/8/8/4N3/8/4K3 w - - 0 1")
	pins := eval.FindPins(b, board.White, board.King)
	require.Len(t, pins, 1)
	assert.Equal(t, board.E3, pins[0].Pinned)
	assert.Equal(t, board.E1, pins[0].Target)
	assert.Equal(t, board.E8, pins[0].Attacker)
}
