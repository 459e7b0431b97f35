package eval

import "github.com/corvidchess/corvid/pkg/board"

// Pin represents a pinned piece: Pinned cannot move off the Attacker-Target line without
// exposing Target to capture by Attacker.
type Pin struct {
	Attacker, Pinned, Target board.Square
}

// FindPins returns all pins targeting the given piece of side's color.
func FindPins(b *board.Board, side board.Color, piece board.Piece) []Pin {
	var ret []Pin

	occ := b.Occupied()
	bb := b.Piece(side, piece)
	for bb != 0 {
		target := bb.LastPopSquare()
		bb ^= board.BitMask(target)

		// Rook/Queen pins.

		rooks := board.RookAttackboard(occ, target)
		pins := rooks & b.Color(side)
		for pins != 0 {
			pinned := pins.LastPopSquare()
			pins ^= board.BitMask(pinned)

			attackers := b.Piece(side.Opponent(), board.Queen) | b.Piece(side.Opponent(), board.Rook)

			candidate := (board.RookAttackboard(occ&^board.BitMask(pinned), target) &^ rooks) & attackers
			if candidate != 0 {
				ret = append(ret, Pin{Attacker: candidate.LastPopSquare(), Pinned: pinned, Target: target})
			}
		}

		// Bishop/Queen pins.

		bishops := board.BishopAttackboard(occ, target)
		pins = bishops & b.Color(side)
		for pins != 0 {
			pinned := pins.LastPopSquare()
			pins ^= board.BitMask(pinned)

			attackers := b.Piece(side.Opponent(), board.Queen) | b.Piece(side.Opponent(), board.Bishop)

			candidate := (board.BishopAttackboard(occ&^board.BitMask(pinned), target) &^ bishops) & attackers
			if candidate != 0 {
				ret = append(ret, Pin{Attacker: candidate.LastPopSquare(), Pinned: pinned, Target: target})
			}
		}
	}

	return ret
}
