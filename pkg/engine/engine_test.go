package engine_test

import (
	"context"
	"testing"

	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/corvidchess/corvid/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(ctx context.Context) *engine.Engine {
	root := search.AlphaBeta{Eval: search.Quiescence{Eval: search.StaticEval{Eval: eval.Material{}}}}
	return engine.New(ctx, "corvid-test", "test", root)
}

func TestEngineResetsToInitialPosition(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	assert.Equal(t, fen.Initial, e.Position())
}

func TestEngineMoveAndTakeBack(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, fen.Initial, e.Position())

	assert.Error(t, e.TakeBack(ctx), "no move left to take back")
}

func TestEngineMoveRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	assert.Error(t, e.Move(ctx, "e2e5"))
	assert.Equal(t, fen.Initial, e.Position())
}

func TestEngineAnalyzeRespectsDepthLimit(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	depth := 2
	out, err := e.Analyze(ctx, searchctl.Options{DepthLimit: lang.Some(depth)})
	require.NoError(t, err)

	var last search.PV
	for pv := range out {
		last = pv
	}
	assert.Equal(t, depth, last.Depth)

	pv, err := e.Halt(ctx)
	assert.NoError(t, err, "halting a finished search returns its last PV")
	assert.Equal(t, depth, pv.Depth)
}

func TestEngineRejectsConcurrentAnalyze(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	_, err := e.Analyze(ctx, searchctl.Options{})
	require.NoError(t, err)

	_, err = e.Analyze(ctx, searchctl.Options{})
	assert.Error(t, err)

	_, err = e.Halt(ctx)
	assert.NoError(t, err)
}
