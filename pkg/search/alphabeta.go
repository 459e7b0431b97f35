package search

import (
	"context"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// AlphaBeta implements negamax search with alpha-beta pruning, a transposition table and a
// quiescence search handoff at the search horizon. Pseudo-code (negamax form):
//
// function negamax(node, depth, α, β, color) is
//
//	if depth = 0 or node is a terminal node then
//	    return color * the heuristic value of node
//	value := −∞
//	for each child of node do
//	    value := max(value, −negamax(child, depth − 1, −β, −α, −color))
//	    α := max(α, value)
//	    if α ≥ β then
//	        break (* β cutoff *)
//	return value
//
// See: https://en.wikipedia.org/wiki/Negamax and https://en.wikipedia.org/wiki/Alpha–beta_pruning.
type AlphaBeta struct {
	Explore Exploration
	Eval    QuietSearch
}

func (p AlphaBeta) Search(ctx context.Context, sctx *Context, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	run := &runAlphaBeta{
		explore: fullIfNotSet(p.Explore),
		eval:    p.Eval,
		tt:      sctx.TT,
		noise:   sctx.Noise,
		hint:    sctx.Hint,
		history: append([]board.ZobristHash(nil), sctx.History...),
	}
	alpha, beta := sctx.window()

	score, moves := run.search(ctx, b, depth, alpha, beta)
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, moves, nil
}

type runAlphaBeta struct {
	explore Exploration
	eval    QuietSearch
	tt      TranspositionTable
	noise   eval.Random
	nodes   uint64

	hint    board.Move
	history []board.ZobristHash
}

// search returns the score from the perspective of the side to move at b.
func (m *runAlphaBeta) search(ctx context.Context, b *board.Board, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.InvalidScore, nil
	}
	if isDrawnByRule(b, m.history) {
		return eval.ZeroScore, nil
	}

	var best board.Move
	if bound, d, score, hashmove, ok := m.tt.Read(b.Hash()); ok {
		best = hashmove
		if depth <= d {
			switch {
			case bound == ExactBound:
				return score, nil
			case bound == LowerBound && !score.Less(beta):
				return score, nil
			case bound == UpperBound && !alpha.Less(score):
				return score, nil
			}
		}
	}

	if depth == 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, TT: m.tt, Noise: m.noise, History: m.history}
		nodes, score := m.eval.QuietSearch(ctx, sctx, b)
		m.nodes += nodes

		if score.IsInvalid() {
			return score, nil // cancelled: do not update the transposition table
		}
		m.tt.Write(b.Hash(), ExactBound, 0, score, board.Move{})
		return score, nil
	}

	m.nodes++

	turn := b.Turn()
	hasLegalMove := false
	bound := UpperBound
	var pv []board.Move

	priority, explore := m.explore(ctx, b)
	if best != (board.Move{}) {
		priority = board.First(best, priority)
	}
	if m.hint != (board.Move{}) {
		priority = board.First(m.hint, priority)
		m.hint = board.Move{}
	}

	moves := b.PseudoLegalMoves()
	board.SortByPriority(moves, priority)

	m.history = append(m.history, b.Hash())
	for _, move := range moves {
		if !explore(move) {
			continue
		}
		nb := b.Make(move)
		if nb.IsChecked(turn) {
			continue // not legal
		}
		hasLegalMove = true

		score, rem := m.search(ctx, nb, depth-1, beta.Negate(), alpha.Negate())
		if contextx.IsCancelled(ctx) {
			// Unwind without touching alpha or the transposition table: the caller
			// propagates the same sentinel in turn.
			return eval.InvalidScore, nil
		}
		score = eval.IncrementMateDistance(score).Negate()
		if alpha.Less(score) {
			alpha = score
			bound = ExactBound
			pv = append([]board.Move{move}, rem...)
		}

		if !alpha.Less(beta) {
			bound = LowerBound
			break // cutoff
		}
	}
	m.history = m.history[:len(m.history)-1]

	if !hasLegalMove {
		if b.IsChecked(turn) {
			// Checkmated at this node: the worst possible outcome. The caller's
			// IncrementMateDistance ages this one ply closer to the root on the way up.
			return -eval.CheckmateScore, nil
		}
		return eval.ZeroScore, nil
	}

	m.tt.Write(b.Hash(), bound, depth, alpha, firstOrNone(pv))
	return alpha, pv
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}

func fullIfNotSet(p Exploration) Exploration {
	if p == nil {
		return FullExploration
	}
	return p
}
