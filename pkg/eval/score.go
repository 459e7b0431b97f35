package eval

import "math"

// Score is a centipawn-scaled evaluation from the perspective of the side to move:
// positive favors the mover, negative favors the opponent. Mate scores are offset from
// CheckmateScore so that shorter mates compare as strictly better than longer ones.
type Score int32

const (
	// ZeroScore is a dead-even position.
	ZeroScore Score = 0

	// InvalidScore marks a score that was never computed, e.g. a transposition table miss
	// or a search aborted before producing a result.
	InvalidScore Score = math.MinInt32

	// InfScore and NegInfScore bound the alpha-beta window. They are kept well clear of
	// CheckmateScore so that mate-distance bookkeeping never overflows into them.
	InfScore    Score = math.MaxInt32 - 1
	NegInfScore Score = -InfScore

	// CheckmateScore is the magnitude assigned to the side being mated on the move it is
	// mated. IncrementMateDistance shaves one off this magnitude per ply as the score
	// propagates back up the tree, so a mate found deeper in the tree is worth less than
	// one found shallower.
	CheckmateScore Score = 1 << 20

	// mateWindow bounds how close to +/-CheckmateScore a score must be to be considered a
	// mate score rather than an ordinary evaluation.
	mateWindow Score = 1 << 10
)

// IsInvalid reports whether s is the InvalidScore sentinel.
func (s Score) IsInvalid() bool {
	return s == InvalidScore
}

// IsMate reports whether s represents a forced checkmate for either side.
func (s Score) IsMate() bool {
	return s > CheckmateScore-mateWindow || s < -CheckmateScore+mateWindow
}

// Negate flips the score to the opponent's perspective, preserving the InvalidScore
// sentinel (which has no perspective).
func (s Score) Negate() Score {
	if s.IsInvalid() {
		return s
	}
	return -s
}

// Less reports whether s ranks below other, i.e. is worse for the side to move.
func (s Score) Less(other Score) bool {
	return s < other
}

// Max returns the better (larger) of two scores.
func Max(a, b Score) Score {
	if a.Less(b) {
		return b
	}
	return a
}

// Min returns the worse (smaller) of two scores.
func Min(a, b Score) Score {
	if b.Less(a) {
		return b
	}
	return a
}

// IncrementMateDistance ages a mate score by one ply as it propagates up the search tree.
// Non-mate scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	switch {
	case s > CheckmateScore-mateWindow:
		return s - 1
	case s < -CheckmateScore+mateWindow:
		return s + 1
	default:
		return s
	}
}

// MateIn reports the number of full moves to a forced mate encoded in s, and whether s
// encodes a mate at all. A positive count favors the side to move, negative the opponent.
func MateIn(s Score) (int, bool) {
	switch {
	case s > CheckmateScore-mateWindow:
		return (int(CheckmateScore-s) + 1) / 2, true
	case s < -CheckmateScore+mateWindow:
		return -((int(CheckmateScore+s) + 1) / 2), true
	default:
		return 0, false
	}
}
