package search

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Quiescence implements a configurable alpha-beta QuietSearch: it keeps searching captures
// and promotions past the main search horizon until the position is "quiet", avoiding the
// horizon effect where a tactical sequence is cut off mid-exchange.
type Quiescence struct {
	Explore Exploration
	Eval    Evaluator
}

func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	run := &runQuiescence{explore: noisyIfNotSet(q.Explore), eval: q.Eval}
	alpha, beta := sctx.window()

	score := run.search(ctx, sctx, b, alpha, beta)
	return run.nodes, score
}

type runQuiescence struct {
	explore Exploration
	eval    Evaluator
	nodes   uint64
}

// search returns the score from the perspective of the side to move at b.
func (r *runQuiescence) search(ctx context.Context, sctx *Context, b *board.Board, alpha, beta eval.Score) eval.Score {
	if contextx.IsCancelled(ctx) {
		return eval.InvalidScore
	}
	if isDrawnByRule(b, sctx.History) {
		return eval.ZeroScore
	}

	r.nodes++
	turn := b.Turn()

	// A king in check has no "quiet" option to fall back on -- it must address the check,
	// so the stand-pat score (which assumes a quiet move is available) is suppressed and
	// every response is searched as if this were still the main search.
	inCheck := b.IsChecked(turn)
	if !inCheck {
		score := r.eval.Evaluate(ctx, sctx, b)
		if !alpha.Less(score) {
			return alpha
		}
		alpha = eval.Max(alpha, score)
		if !alpha.Less(beta) {
			return alpha
		}
	}

	priority, explore := r.explore(ctx, b)
	if inCheck {
		explore = IsAnyMove
	}

	moves := b.PseudoLegalMoves()
	board.SortByPriority(moves, priority)

	hasLegalMove := false
	for _, move := range moves {
		if !explore(move) {
			continue
		}
		nb := b.Make(move)
		if nb.IsChecked(turn) {
			continue // not legal
		}
		hasLegalMove = true

		score := r.search(ctx, sctx, nb, beta.Negate(), alpha.Negate())
		if contextx.IsCancelled(ctx) {
			return eval.InvalidScore
		}
		score = eval.IncrementMateDistance(score).Negate()
		alpha = eval.Max(alpha, score)

		if !alpha.Less(beta) {
			break // cutoff
		}
	}

	if !hasLegalMove {
		if inCheck {
			return -eval.CheckmateScore
		}
		// The noisy filter above only tracks legal *noisy* moves: a quiet position with no
		// captures or promotions would otherwise fall through to the stand-pat score even
		// when it has no legal move at all (stalemate).
		if !anyLegalMove(b, moves, turn) {
			return eval.ZeroScore
		}
	}
	return alpha
}

// anyLegalMove reports whether any of the given pseudo-legal moves is actually legal,
// short-circuiting on the first one found.
func anyLegalMove(b *board.Board, moves []board.Move, turn board.Color) bool {
	for _, move := range moves {
		if !b.Make(move).IsChecked(turn) {
			return true
		}
	}
	return false
}

func noisyIfNotSet(e Exploration) Exploration {
	if e == nil {
		return NoisyExploration
	}
	return e
}
