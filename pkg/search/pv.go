package search

import (
	"github.com/corvidchess/corvid/pkg/board"
)

// DeterminePV reconstructs a principal variation by walking the transposition table from
// the root: probe by hash, find the stored move among the freshly generated legal moves at
// that position, play it, and continue. It stops when no entry is found, when the stored
// move is not among the position's legal moves (a hash collision), or when a hash already
// visited on this walk is seen again (a cycle). Unlike AlphaBeta.Search's own in-recursion
// PV, which is authoritative for the line just searched, this reconstructs a line purely
// from whatever the table currently holds -- useful after a search was halted mid-iteration
// and no in-recursion PV survived.
func DeterminePV(b *board.Board, tt TranspositionTable) []board.Move {
	var pv []board.Move
	visited := map[board.ZobristHash]bool{}

	cur := b
	for {
		h := cur.Hash()
		if visited[h] {
			break // cycle
		}
		visited[h] = true

		_, _, _, hashmove, ok := tt.Read(h)
		if !ok || hashmove == (board.Move{}) {
			break // no entry, or entry carries no best move (e.g. all-node)
		}

		var next board.Move
		found := false
		for _, m := range cur.LegalMoves() {
			if m.Equals(hashmove) {
				next, found = m, true
				break
			}
		}
		if !found {
			break // hash collision: stored move does not apply here
		}

		pv = append(pv, next)
		cur = cur.Make(next)
	}
	return pv
}
