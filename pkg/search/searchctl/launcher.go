package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/corvidchess/corvid/pkg/board"
	"github.com/corvidchess/corvid/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold the dynamic, per-search limits a caller may set.
type Options struct {
	// DepthLimit, if set, limits the search to the given depth.
	DepthLimit lang.Optional[int]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// Launcher is a search.PV generator.
type Launcher interface {
	// Launch starts a new iteratively-deepening search from b and returns a PV channel
	// updated after each completed depth. history carries the Zobrist hashes of positions
	// already reached in the game, for repetition detection. The channel is closed once
	// the search is exhausted or halted.
	Launch(ctx context.Context, b *board.Board, history []board.ZobristHash, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the caller manage a running search.
type Handle interface {
	// Halt stops the search, if running, and returns its last completed PV. Idempotent.
	Halt() search.PV
}
