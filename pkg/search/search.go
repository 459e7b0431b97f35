// Package search contains game-tree search functionality: negamax alpha-beta search with
// quiescence and a transposition table. The iterative-deepening harness that drives a
// Searcher to a time or depth limit lives in the searchctl subpackage.
package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// ErrHalted is returned by a Searcher when the search was cancelled via its context.
var ErrHalted = errors.New("search halted")

// PV represents the principal variation found at some search depth.
type PV struct {
	Depth int
	Moves []board.Move
	Score eval.Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table utilization [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v", p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), board.PrintMoves(p.Moves))
}
