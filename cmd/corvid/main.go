// corvid is a simple chess engine driven over a line-oriented cli, not a full protocol.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/engine/cli"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
)

var (
	depth = flag.Int("depth", 0, "Search depth limit (zero if no limit)")
	hash  = flag.Uint("hash", 32, "Transposition table size in MB (zero to disable)")
	noise = flag.Uint("noise", 0, "Evaluation noise in centipawns (zero if deterministic)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

CORVID is a bitboard chess engine driven over a plain-text line interface.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	root := search.AlphaBeta{
		Eval: search.Quiescence{
			Eval: search.StaticEval{Eval: eval.PieceSquareTable{}},
		},
	}
	e := engine.New(ctx, "corvid", "corvidchess", root, engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
		Noise: *noise,
	}))

	in := engine.ReadStdinLines(ctx)
	driver, out := cli.NewDriver(ctx, e, root, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
}
