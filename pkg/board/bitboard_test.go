package board_test

import (
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboardPopCount(t *testing.T) {
	assert.Equal(t, 0, board.EmptyBitboard.PopCount())
	assert.Equal(t, 1, board.BitMask(board.G4).PopCount())
	assert.Equal(t, 2, (board.BitMask(board.G3) | board.BitMask(board.G4)).PopCount())
}

func TestBitboardIsSet(t *testing.T) {
	bb := board.BitMask(board.A1) | board.BitMask(board.H8)
	assert.True(t, bb.IsSet(board.A1))
	assert.True(t, bb.IsSet(board.H8))
	assert.False(t, bb.IsSet(board.D4))
}

func TestBitRankAndFile(t *testing.T) {
	r := board.BitRank(board.Rank1)
	for f := board.ZeroFile; f < board.NumFiles; f++ {
		assert.True(t, r.IsSet(board.NewSquare(f, board.Rank1)))
		assert.False(t, r.IsSet(board.NewSquare(f, board.Rank2)))
	}

	f := board.BitFile(board.FileA)
	for r := board.ZeroRank; r < board.NumRanks; r++ {
		assert.True(t, f.IsSet(board.NewSquare(board.FileA, r)))
		assert.False(t, f.IsSet(board.NewSquare(board.FileB, r)))
	}
}

func TestKingAttackboard(t *testing.T) {
	// A corner king has exactly 3 squares of reach.
	assert.Equal(t, 3, board.KingAttackboard(board.A1).PopCount())
	assert.True(t, board.KingAttackboard(board.A1).IsSet(board.A2))
	assert.True(t, board.KingAttackboard(board.A1).IsSet(board.B1))
	assert.True(t, board.KingAttackboard(board.A1).IsSet(board.B2))

	// A center king has 8.
	assert.Equal(t, 8, board.KingAttackboard(board.D4).PopCount())
}

func TestKnightAttackboard(t *testing.T) {
	// A corner knight has exactly 2 squares of reach.
	assert.Equal(t, 2, board.KnightAttackboard(board.A1).PopCount())
	assert.True(t, board.KnightAttackboard(board.A1).IsSet(board.B3))
	assert.True(t, board.KnightAttackboard(board.A1).IsSet(board.C2))

	// A fully-surrounded center knight has 8.
	assert.Equal(t, 8, board.KnightAttackboard(board.D4).PopCount())
}

func TestRookAttackboard(t *testing.T) {
	// Rook on an empty board sees the full rank and file, minus its own square.
	atk := board.RookAttackboard(board.EmptyBitboard, board.D4)
	assert.Equal(t, 14, atk.PopCount())
	assert.True(t, atk.IsSet(board.A4))
	assert.True(t, atk.IsSet(board.H4))
	assert.True(t, atk.IsSet(board.D1))
	assert.True(t, atk.IsSet(board.D8))
	assert.False(t, atk.IsSet(board.D4))

	// A blocker stops the ray at (and including) the blocking square.
	occ := board.BitMask(board.D6)
	atk = board.RookAttackboard(occ, board.D4)
	assert.True(t, atk.IsSet(board.D5))
	assert.True(t, atk.IsSet(board.D6))
	assert.False(t, atk.IsSet(board.D7))
}

func TestBishopAttackboard(t *testing.T) {
	atk := board.BishopAttackboard(board.EmptyBitboard, board.D4)
	assert.True(t, atk.IsSet(board.A1))
	assert.True(t, atk.IsSet(board.G7))
	assert.True(t, atk.IsSet(board.A7))
	assert.True(t, atk.IsSet(board.F2))
	assert.False(t, atk.IsSet(board.D4))
}
