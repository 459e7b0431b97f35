package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/eval"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"
)

// Iterative is a Launcher that repeatedly searches a position at increasing depth, each
// pass benefiting from the transposition table entries left behind by the last, until a
// depth limit, time limit or forced mate stops it.
type Iterative struct {
	Root  search.Searcher
	TT    search.TranspositionTable
	Noise eval.Random
}

func NewIterative(root search.Searcher, tt search.TranspositionTable, noise eval.Random) *Iterative {
	return &Iterative{Root: root, TT: tt, Noise: noise}
}

func (i *Iterative) Launch(ctx context.Context, b *board.Board, history []board.ZobristHash, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)

	wctx, cancel := context.WithCancel(ctx)
	h := &handle{cancel: cancel, initCh: make(chan struct{})}

	i.TT.AdvanceAge()
	go h.process(wctx, i.Root, i.TT, i.Noise, b, history, opt, out)

	return h, out
}

type handle struct {
	cancel context.CancelFunc
	initCh chan struct{}
	init   atomic.Bool
	done   atomic.Bool

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Searcher, tt search.TranspositionTable, noise eval.Random, b *board.Board, history []board.ZobristHash, opt Options, out chan search.PV) {
	defer h.markInitialized()
	defer close(out)

	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore, TT: tt, Noise: noise, History: history}

	var soft time.Duration
	var useSoft bool
	if tc, ok := opt.TimeControl.V(); ok {
		soft, _ = tc.Limits(b.Turn())
		time.AfterFunc(3*soft, h.halt)
		useSoft = true
	}

	depth := 1
	for !h.done.Load() {
		start := time.Now()

		nodes, score, moves, err := root.Search(ctx, sctx, b, depth)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", b, depth, err)
			return
		}

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}
		if tt != nil {
			pv.Hash = tt.Used()
		}

		logw.Debugf(ctx, "Searched %v: %v", b, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.markInitialized()
		if limit, ok := opt.DepthLimit.V(); ok && depth == limit {
			return // halt: reached max depth
		}
		if md, ok := eval.MateIn(score); ok && md > 0 && md <= depth {
			return // halt: forced mate found within full-width search. Exact result.
		}
		if useSoft && soft < time.Since(start) {
			return // halt: exceeded soft time limit. Do not start a new depth.
		}
		depth++
	}
}

func (h *handle) Halt() search.PV {
	<-h.initCh
	h.halt()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

// halt cancels the running search without waiting for or returning the PV. Idempotent.
func (h *handle) halt() {
	if h.done.CAS(false, true) {
		h.cancel()
	}
}

func (h *handle) markInitialized() {
	if h.init.CAS(false, true) {
		close(h.initCh)
	}
}
