package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTableSizeRoundsDownToPowerOfTwo(t *testing.T) {
	ctx := context.Background()

	tt := search.NewTranspositionTable(ctx, 0x1000)
	assert.Equal(t, uint64(0x1000), tt.Size())

	tt2 := search.NewTranspositionTable(ctx, 0x1f00)
	assert.Equal(t, uint64(0x1000), tt2.Size())
}

func TestTranspositionTableReadWrite(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x1000)

	a := board.ZobristHash(rand.Uint64())

	_, _, _, _, ok := tt.Read(a)
	assert.False(t, ok)

	m := board.Move{From: board.G4, To: board.G8, Promotion: board.Queen}
	s := eval.Score(2)
	assert.True(t, tt.Write(a, search.ExactBound, 2, s, m))

	bound, depth, score, move, ok := tt.Read(a)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 2, depth)
	assert.Equal(t, s, score)
	assert.Equal(t, m, move)

	_, _, _, _, ok = tt.Read(a ^ 0xff0000)
	assert.False(t, ok)
}

func TestTranspositionTableReplacementPrefersDepth(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x1000)

	a := board.ZobristHash(rand.Uint64())
	m := board.Move{From: board.E2, To: board.E4}

	assert.True(t, tt.Write(a, search.ExactBound, 3, eval.Score(5), m))
	assert.False(t, tt.Write(a, search.ExactBound, 1, eval.Score(5), m), "shallower entry must not replace a deeper one")
	assert.True(t, tt.Write(a, search.ExactBound, 4, eval.Score(5), m), "deeper entry replaces a shallower one")
}

func TestTranspositionTableAdvanceAgeAllowsOverwrite(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x1000)

	a := board.ZobristHash(rand.Uint64())
	m := board.Move{From: board.E2, To: board.E4}

	assert.True(t, tt.Write(a, search.ExactBound, 10, eval.Score(5), m))
	tt.AdvanceAge()
	assert.True(t, tt.Write(a, search.ExactBound, 1, eval.Score(5), m), "a new generation replaces a stale deep entry")
}

func TestNoTranspositionTableNeverStores(t *testing.T) {
	var tt search.NoTranspositionTable

	m := board.Move{From: board.E2, To: board.E4}
	assert.False(t, tt.Write(board.ZobristHash(1), search.ExactBound, 5, eval.Score(1), m))
	_, _, _, _, ok := tt.Read(board.ZobristHash(1))
	assert.False(t, ok)
}
