package board

// promotionPieces enumerates the pieces a pawn may promote to, queen first since it is
// almost always the best choice and benefits from being tried first in move ordering.
var promotionPieces = [4]Piece{Queen, Rook, Bishop, Knight}

// officers enumerates the non-pawn, non-king pieces that move via Attackboard.
var officers = [4]Piece{Knight, Bishop, Rook, Queen}

// PseudoLegalMoves returns every move available to the side to move without regard to
// whether it leaves that side's own king in check. Use LegalMoves to filter those out.
func (b *Board) PseudoLegalMoves() []Move {
	turn := b.turn
	var ret []Move

	ret = b.genPawnMoves(turn, ret)
	for _, p := range officers {
		ret = b.genOfficerMoves(turn, p, ret)
	}
	ret = b.genKingMoves(turn, ret)
	return ret
}

// LegalMoves returns every pseudo-legal move that does not leave the mover's own king in
// check. Implemented by trial-and-error (make the move, inspect the result) rather than
// pin/checker caching: simpler to get right without the benefit of a compiler, and it
// naturally handles corner cases like a discovered check through an en passant capture.
func (b *Board) LegalMoves() []Move {
	turn := b.turn
	pseudo := b.PseudoLegalMoves()

	ret := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		if !b.Make(m).IsChecked(turn) {
			ret = append(ret, m)
		}
	}
	return ret
}

func (b *Board) genPawnMoves(turn Color, ret []Move) []Move {
	opp := turn.Opponent()
	promoRank := Rank8
	startRank := Rank2
	if turn == Black {
		promoRank = Rank1
		startRank = Rank7
	}

	for bb := b.pieces[turn][Pawn]; bb != 0; {
		from := bb.LastPopSquare()
		bb ^= BitMask(from)

		// Pushes and jumps.

		if to1, ok := pawnForward(from, turn, 1); ok && b.IsEmpty(to1) {
			if to1.Rank() == promoRank {
				for _, promo := range promotionPieces {
					ret = append(ret, Move{Type: Promotion, From: from, To: to1, Piece: Pawn, Promotion: promo})
				}
			} else {
				ret = append(ret, Move{Type: Push, From: from, To: to1, Piece: Pawn})

				if from.Rank() == startRank {
					if to2, ok := pawnForward(from, turn, 2); ok && b.IsEmpty(to2) {
						ret = append(ret, Move{Type: Jump, From: from, To: to2, Piece: Pawn})
					}
				}
			}
		}

		// Captures, including en passant.

		targets := PawnCaptureboard(turn, BitMask(from))
		for t := targets; t != 0; {
			to := t.LastPopSquare()
			t ^= BitMask(to)

			if c2, p2, ok := b.Square(to); ok && c2 == opp {
				if to.Rank() == promoRank {
					for _, promo := range promotionPieces {
						ret = append(ret, Move{Type: CapturePromotion, From: from, To: to, Piece: Pawn, Capture: p2, Promotion: promo})
					}
				} else {
					ret = append(ret, Move{Type: Capture, From: from, To: to, Piece: Pawn, Capture: p2})
				}
			} else if ep, ok := b.EnPassant(); ok && to == ep {
				ret = append(ret, Move{Type: EnPassant, From: from, To: to, Piece: Pawn, Capture: Pawn})
			}
		}
	}
	return ret
}

func pawnForward(sq Square, c Color, n int) (Square, bool) {
	r := int(sq.Rank())
	if c == White {
		r += n
	} else {
		r -= n
	}
	if r < 0 || r > 7 {
		return ZeroSquare, false
	}
	return NewSquare(sq.File(), Rank(r)), true
}

func (b *Board) genOfficerMoves(turn Color, piece Piece, ret []Move) []Move {
	own := b.pieces[turn][NoPiece]

	for bb := b.pieces[turn][piece]; bb != 0; {
		from := bb.LastPopSquare()
		bb ^= BitMask(from)

		targets := Attackboard(b.occupied, from, piece) &^ own
		for t := targets; t != 0; {
			to := t.LastPopSquare()
			t ^= BitMask(to)

			if _, p2, ok := b.Square(to); ok {
				ret = append(ret, Move{Type: Capture, From: from, To: to, Piece: piece, Capture: p2})
			} else {
				ret = append(ret, Move{Type: Normal, From: from, To: to, Piece: piece})
			}
		}
	}
	return ret
}

func (b *Board) genKingMoves(turn Color, ret []Move) []Move {
	own := b.pieces[turn][NoPiece]
	from := b.pieces[turn][King].LastPopSquare()

	targets := KingAttackboard(from) &^ own
	for t := targets; t != 0; {
		to := t.LastPopSquare()
		t ^= BitMask(to)

		if _, p2, ok := b.Square(to); ok {
			ret = append(ret, Move{Type: Capture, From: from, To: to, Piece: King, Capture: p2})
		} else {
			ret = append(ret, Move{Type: Normal, From: from, To: to, Piece: King})
		}
	}

	// Castling. Rights already encode that the king and relevant rook have not moved;
	// we additionally require the intervening squares be empty and that the king does
	// not start, pass through, or land on an attacked square.

	home, kingSide, queenSide := E1, WhiteKingSideCastle, WhiteQueenSideCastle
	rank := Rank1
	if turn == Black {
		home, kingSide, queenSide = E8, BlackKingSideCastle, BlackQueenSideCastle
		rank = Rank8
	}
	if from != home {
		return ret
	}

	f, g, d, c := NewSquare(FileF, rank), NewSquare(FileG, rank), NewSquare(FileD, rank), NewSquare(FileC, rank)
	bFile := NewSquare(FileB, rank)

	if b.castling.IsAllowed(kingSide) && b.IsEmpty(f) && b.IsEmpty(g) &&
		!b.IsAttacked(turn, home) && !b.IsAttacked(turn, f) && !b.IsAttacked(turn, g) {
		ret = append(ret, Move{Type: KingSideCastle, From: home, To: g, Piece: King})
	}
	if b.castling.IsAllowed(queenSide) && b.IsEmpty(d) && b.IsEmpty(c) && b.IsEmpty(bFile) &&
		!b.IsAttacked(turn, home) && !b.IsAttacked(turn, d) && !b.IsAttacked(turn, c) {
		ret = append(ret, Move{Type: QueenSideCastle, From: home, To: c, Piece: King})
	}
	return ret
}

// Perft counts the leaf nodes of the legal move tree to the given depth. It is a standard
// move generator regression tool: see https://www.chessprogramming.org/Perft_Results.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for _, m := range b.LegalMoves() {
		nodes += Perft(b.Make(m), depth-1)
	}
	return nodes
}

// PerftDivide is Perft, but returns the per-root-move leaf count instead of the total.
// Useful to localize move generator bugs against a reference engine's divide output.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	ret := make(map[Move]uint64)
	for _, m := range b.LegalMoves() {
		if depth <= 1 {
			ret[m] = 1
		} else {
			ret[m] = Perft(b.Make(m), depth-1)
		}
	}
	return ret
}
