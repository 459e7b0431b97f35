package search

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
)

// Context carries the per-search parameters threaded through a single Search or
// QuietSearch call: the transposition table to consult, an optional narrowed
// alpha-beta window, a move hint to explore first, and the game history needed for
// repetition detection.
type Context struct {
	TT    TranspositionTable
	Noise eval.Random

	// Alpha and Beta narrow the search window. InvalidScore means unbounded, and so does
	// leaving both at their zero value: the empty window [0;0] is treated as unset.
	Alpha, Beta eval.Score

	// Hint, if non-zero, is searched before any other move at the root. Used to re-explore
	// a remembered best move first, e.g. from a prior iterative-deepening pass.
	Hint board.Move

	// History holds the Zobrist hash of every position reached so far in the game,
	// oldest first, not including the position being searched. Used to detect
	// threefold repetition as the search recurses past the root.
	History []board.ZobristHash
}

// window resolves the effective alpha-beta bounds, defaulting to +/-infinity.
func (c *Context) window() (eval.Score, eval.Score) {
	low, high := eval.NegInfScore, eval.InfScore
	if c == nil || (c.Alpha == eval.ZeroScore && c.Beta == eval.ZeroScore) {
		return low, high
	}
	if !c.Alpha.IsInvalid() {
		low = c.Alpha
	}
	if !c.Beta.IsInvalid() {
		high = c.Beta
	}
	return low, high
}

// Evaluator is a search-aware static evaluator: unlike eval.Evaluator, it may take the
// search window and accumulated noise into account.
type Evaluator interface {
	Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Score
}

// QuietSearch resolves a position to a quiescent (no immediate tactics) score.
type QuietSearch interface {
	QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score)
}

// Searcher searches the game tree to a fixed depth.
type Searcher interface {
	Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

// StaticEval adapts a plain eval.Evaluator, plus optional noise, into an Evaluator.
type StaticEval struct {
	Eval eval.Evaluator
}

func (s StaticEval) Evaluate(ctx context.Context, sctx *Context, b *board.Board) eval.Score {
	score := s.Eval.Evaluate(ctx, b)
	if sctx != nil {
		score += sctx.Noise.Evaluate(ctx, b)
	}
	return score
}

// isThreefoldRepetition reports whether h has already occurred at least twice in history,
// making the current occurrence the third.
func isThreefoldRepetition(history []board.ZobristHash, h board.ZobristHash) bool {
	count := 0
	for _, old := range history {
		if old == h {
			count++
			if count >= 2 {
				return true
			}
		}
	}
	return false
}

// isDrawnByRule reports whether b is an automatic draw independent of the legal move
// count: the fifty-move rule or threefold repetition against the supplied history.
func isDrawnByRule(b *board.Board, history []board.ZobristHash) bool {
	return b.HalfmoveClock() >= 100 || isThreefoldRepetition(history, b.Hash())
}
