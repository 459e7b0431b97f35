package cli_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/engine/cli"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, out <-chan string, timeout time.Duration) []string {
	t.Helper()

	var lines []string
	deadline := time.After(timeout)
	for {
		select {
		case line, ok := <-out:
			if !ok {
				return lines
			}
			lines = append(lines, line)
		case <-deadline:
			return lines
		}
	}
}

func newTestDriver(t *testing.T, in chan string) (*cli.Driver, <-chan string) {
	t.Helper()

	ctx := context.Background()
	root := search.AlphaBeta{Eval: search.Quiescence{Eval: search.StaticEval{Eval: eval.Material{}}}}
	e := engine.New(ctx, "corvid-test", "test", root)

	d, out := cli.NewDriver(ctx, e, root, in)
	return d, out
}

func TestDriverPrintsBoardOnStartup(t *testing.T) {
	in := make(chan string)
	d, out := newTestDriver(t, in)
	defer close(in)
	defer d.Close()

	lines := drain(t, out, 200*time.Millisecond)
	require.NotEmpty(t, lines)
	assert.Contains(t, strings.Join(lines, "\n"), "fen:")
}

func TestDriverAcceptsMove(t *testing.T) {
	in := make(chan string, 1)
	d, out := newTestDriver(t, in)
	defer close(in)
	defer d.Close()

	drain(t, out, 100*time.Millisecond)

	in <- "e2e4"
	lines := drain(t, out, 200*time.Millisecond)
	assert.Contains(t, strings.Join(lines, "\n"), "fen:")
}

func TestDriverRejectsUnknownMove(t *testing.T) {
	in := make(chan string, 1)
	d, out := newTestDriver(t, in)
	defer close(in)
	defer d.Close()

	drain(t, out, 100*time.Millisecond)

	in <- "e2e5"
	lines := drain(t, out, 200*time.Millisecond)
	assert.Contains(t, strings.Join(lines, "\n"), "invalid move")
}
