package search_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func newQuiescence() search.Quiescence {
	return search.Quiescence{Eval: search.StaticEval{Eval: eval.Material{}}}
}

func TestQuiescenceStandsPatWhenNotInCheck(t *testing.T) {
	ctx := context.Background()
	q := newQuiescence()

	// White is up a queen and has no captures or checks available; the stand-pat score
	// should reflect the material edge without searching further.
	b := mustDecode(t, "4k3/8/8/8/8/8/8/4K2Q w - - 0 1")

	sctx := &search.Context{TT: search.NoTranspositionTable{}}
	_, score := q.QuietSearch(ctx, sctx, b)
	assert.Equal(t, eval.Material{}.Evaluate(ctx, b), score)
}

func TestQuiescenceSearchesQuietEvasionsWhenInCheck(t *testing.T) {
	ctx := context.Background()
	q := newQuiescence()

	// Black king in check along the e-file with no captures available: the only legal
	// replies are quiet king moves (Kd7/Kd8/Kf7/Kf8). A quiescence search that only explores
	// captures/promotions here would wrongly conclude there is no legal move and report
	// checkmate; the in-check override must consider every move.
	b := mustDecode(t, "4k3/8/8/8/8/8/8/K3R3 b - - 0 1")

	sctx := &search.Context{TT: search.NoTranspositionTable{}}
	_, score := q.QuietSearch(ctx, sctx, b)
	assert.NotEqual(t, -eval.CheckmateScore, score)
}

func TestQuiescenceDetectsStalemateWhenNotInCheck(t *testing.T) {
	ctx := context.Background()
	q := newQuiescence()

	// Black to move, not in check, and every king move runs into the White king or queen's
	// coverage. No captures or promotions exist, so a quiescence search that only tracks
	// legality among noisy moves would otherwise fall through to the material stand-pat
	// score instead of recognizing stalemate.
	b := mustDecode(t, "7k/5K2/6Q1/8/8/8/8/8 b - - 0 1")

	sctx := &search.Context{TT: search.NoTranspositionTable{}}
	_, score := q.QuietSearch(ctx, sctx, b)
	assert.Equal(t, eval.ZeroScore, score)
}

func TestQuiescenceDetectsCheckmate(t *testing.T) {
	ctx := context.Background()
	q := newQuiescence()

	// Black to move, back-rank mate: rook on e8 covers the whole rank, pawns block escape.
	b := mustDecode(t, "4R1k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")

	sctx := &search.Context{TT: search.NoTranspositionTable{}}
	_, score := q.QuietSearch(ctx, sctx, b)
	assert.Equal(t, -eval.CheckmateScore, score)
}
