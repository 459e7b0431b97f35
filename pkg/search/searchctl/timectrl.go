// Package searchctl contains the iterative-deepening search harness and its time control:
// the driver logic that repeatedly invokes a search.Searcher at increasing depth and
// decides when to stop.
package searchctl

import (
	"fmt"
	"time"

	"github.com/corvidchess/corvid/pkg/board"
)

// TimeControl represents the remaining clock time for each side.
type TimeControl struct {
	White, Black time.Duration
	Moves        int // 0 == rest of game
}

// Limits returns a soft and hard time limit for the side to move. After the soft limit, no
// new iterative-deepening depth should be started; the hard limit is an absolute cutoff.
func (t TimeControl) Limits(c board.Color) (soft, hard time.Duration) {
	remainder := t.White
	if c == board.Black {
		remainder = t.Black
	}

	// Assume 40 moves to the end of the game if nothing else is known.
	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft = remainder / (2 * moves)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}
