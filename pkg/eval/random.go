package eval

import (
	"context"
	"math/rand"

	"github.com/corvidchess/corvid/pkg/board"
)

// Random adds a small amount of noise to evaluations, in the range [-limit/2; limit/2]
// centipawns. A zero-value Random always returns zero, which is useful as a default.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(_ context.Context, _ *board.Board) Score {
	if n.limit <= 0 {
		return 0
	}
	return Score(n.rand.Intn(n.limit) - n.limit/2)
}
