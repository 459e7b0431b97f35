// Package cli implements a minimal line-oriented harness for manually driving an Engine:
// not a protocol implementation, just enough commands to set up a position, play moves
// and kick off analysis from a terminal.
package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/board/fen"
	"github.com/corvidchess/corvid/pkg/engine"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/corvidchess/corvid/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Driver reads commands from a line channel and writes responses to another, driving an
// Engine. It understands reset/undo/print/analyze/halt/depth/hash/noise and treats any
// unrecognized token as a move in long algebraic form.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	root   search.Searcher
	active atomic.Bool // waiting on an analyze to complete
}

func NewDriver(ctx context.Context, e *engine.Engine, root search.Searcher, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		root:        root,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "cli driver initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "reset", "r":
				// reset [<fenstring>] moves ...

				d.ensureInactive(ctx)

				pos := fen.Initial
				rest := args
				if len(args) > 0 && args[0] != "moves" {
					if len(args) < 6 {
						d.out <- fmt.Sprintf("invalid position: %v", line)
						break
					}
					pos = strings.Join(args[0:6], " ")
					rest = args[6:]
				}
				if err := d.e.Reset(ctx, pos); err != nil {
					d.out <- fmt.Sprintf("invalid position: %v: %v", line, err)
					break
				}
				move := false
				for _, arg := range rest {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						d.out <- fmt.Sprintf("invalid position move '%v': %v: %v", arg, line, err)
						break
					}
				}
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)

				if err := d.e.TakeBack(ctx); err != nil {
					d.out <- err.Error()
				}
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "analyze", "a":
				d.ensureInactive(ctx)

				var opt searchctl.Options
				if len(args) > 0 {
					if depth, err := strconv.Atoi(args[0]); err == nil {
						opt.DepthLimit = lang.Some(depth)
					}
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					d.out <- fmt.Sprintf("analyze failed: %v", err)
					break
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.out <- pv.String()
					}
					d.searchCompleted(ctx, last)
				}()

			case "depth", "d":
				if len(args) > 0 {
					if depth, err := strconv.Atoi(args[0]); err == nil {
						d.e.SetDepth(depth)
					}
				}

			case "hash": // size in MB
				if len(args) > 0 {
					if hash, err := strconv.Atoi(args[0]); err == nil {
						d.e.SetHash(uint(hash))
					}
				}

			case "nohash":
				d.e.SetHash(0)

			case "noise": // evaluation randomness in centipawns
				if len(args) > 0 {
					if noise, err := strconv.Atoi(args[0]); err == nil {
						d.e.SetNoise(uint(noise))
					}
				}

			case "nonoise":
				d.e.SetNoise(0)

			case "halt", "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume a move if the token isn't a recognized command.

				d.ensureInactive(ctx)
				if err := d.e.Move(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if !d.active.CompareAndSwap(true, false) {
		return // stale or duplicate result
	}

	if len(pv.Moves) > 0 {
		d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
	}

	// Break down the score of every candidate move at one shallower depth. No TT, no noise.

	b := d.e.Board()

	var sub []result
	for _, move := range b.LegalMoves() {
		nb := b.Make(move)
		sctx := &search.Context{TT: search.NoTranspositionTable{}}
		depth := pv.Depth - 1
		if depth < 0 {
			depth = 0
		}
		nodes, score, moves, err := d.root.Search(ctx, sctx, nb, depth)
		if err != nil {
			continue
		}
		sub = append(sub, result{m: move, s: score.Negate(), n: nodes, pv: moves})
	}
	sort.Sort(byScore(sub))

	d.out <- fmt.Sprintf("Search, depth=%v", pv.Depth)
	for i, s := range sub {
		d.out <- fmt.Sprintf(" %2d. %v\t%v\t\t(%v nodes\tpv %v)", i+1, s.m, s.s, s.n, board.PrintMoves(s.pv))
	}
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard(ctx context.Context) {
	b := d.e.Board()

	d.out <- ""
	d.out <- files
	d.out <- horizontal

	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		sb.Reset()
		sb.WriteString(strconv.Itoa(r + 1))
		sb.WriteString(vertical)
		for f := 0; f < 8; f++ {
			sq := board.NewSquare(board.File(f), board.Rank(r))
			if color, piece, ok := b.Square(sq); ok {
				sb.WriteString(printPiece(color, piece))
			} else {
				sb.WriteString(" ")
			}
			sb.WriteString(vertical)
		}
		d.out <- sb.String()
		d.out <- horizontal
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("fen:    %v", d.e.Position())
	d.out <- fmt.Sprintf("turn: %v, halfmove: %v, fullmove: %v, hash: 0x%x", b.Turn(), b.HalfmoveClock(), b.FullMoveNumber(), b.Hash())
	d.out <- ""
}

func printPiece(c board.Color, p board.Piece) string {
	if c == board.White {
		return strings.ToUpper(p.String())
	}
	return strings.ToLower(p.String())
}

type result struct {
	m  board.Move
	s  eval.Score
	n  uint64
	pv []board.Move
}

// byScore sorts results best-first.
type byScore []result

func (b byScore) Len() int      { return len(b) }
func (b byScore) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byScore) Less(i, j int) bool {
	return b[j].s.Less(b[i].s)
}
