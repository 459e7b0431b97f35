// Package fen contains utilities for reading and writing positions in Forsyth-Edwards
// Notation (FEN).
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/corvidchess/corvid/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode parses a FEN record into a Board. The zobrist table is attached to the returned
// board so it (and every position derived from it via Make) carries an incremental hash;
// pass nil to skip hashing.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(zt *board.ZobristTable, s string) (*board.Board, error) {
	// A FEN record contains six space-separated fields.

	parts := strings.Split(strings.TrimSpace(s), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: '%v'", s)
	}

	// (1) Piece placement (from White's perspective): rank 8 down to rank 1, each rank
	// described file a through file h.

	var pieces []board.Placement

	rank, file := board.Rank8, board.FileA
	count := 0
	for _, r := range []rune(parts[0]) {
		switch {
		case r == '/':
			// Cosmetic rank separator.

		case unicode.IsDigit(r):
			file += board.File(r - '0')
			count += int(r - '0')

		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece '%v' in FEN: '%v'", r, s)
			}
			pieces = append(pieces, board.Placement{Square: board.NewSquare(file, rank), Color: color, Piece: piece})
			file++
			count++

		default:
			return nil, fmt.Errorf("invalid character in FEN: '%v'", s)
		}

		if file >= board.NumFiles {
			if rank > board.ZeroRank {
				rank--
			}
			file = board.ZeroFile
		}
	}
	if count != 64 {
		return nil, fmt.Errorf("invalid number of squares in FEN: '%v'", s)
	}

	// (2) Active color.

	active, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: '%v'", s)
	}

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling in FEN: '%v'", s)
	}

	// (4) En passant target square, if any.

	var ep board.Square
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant in FEN: '%v'", s)
		}
		ep = sq
	}

	// (5) Halfmove clock.

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return nil, fmt.Errorf("invalid halfmove in FEN: '%v'", s)
	}

	// (6) Fullmove number.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 0 {
		return nil, fmt.Errorf("invalid full moves in FEN: '%v'", s)
	}

	return board.NewBoard(pieces, active, castling, ep, np, fm, zt)
}

// Encode encodes the board in FEN notation.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for r := int(board.NumRanks) - 1; r >= 0; r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := b.Square(board.NewSquare(f, board.Rank(r)))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > 0 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := b.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(b.Turn()), printCastling(b.Castling()), ep, b.HalfmoveClock(), b.FullMoveNumber())
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling

	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	if c == 0 {
		return "-"
	}

	ret := ""
	if c.IsAllowed(board.WhiteKingSideCastle) {
		ret += "K"
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		ret += "Q"
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		ret += "k"
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		ret += "q"
	}
	return ret
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	switch r {
	case 'P':
		return board.White, board.Pawn, true
	case 'B':
		return board.White, board.Bishop, true
	case 'N':
		return board.White, board.Knight, true
	case 'R':
		return board.White, board.Rook, true
	case 'Q':
		return board.White, board.Queen, true
	case 'K':
		return board.White, board.King, true

	case 'p':
		return board.Black, board.Pawn, true
	case 'b':
		return board.Black, board.Bishop, true
	case 'n':
		return board.Black, board.Knight, true
	case 'r':
		return board.Black, board.Rook, true
	case 'q':
		return board.Black, board.Queen, true
	case 'k':
		return board.Black, board.King, true

	default:
		return 0, 0, false
	}
}

func printPiece(c board.Color, p board.Piece) rune {
	var letters = map[board.Piece]rune{
		board.Pawn: 'p', board.Bishop: 'b', board.Knight: 'n',
		board.Rook: 'r', board.Queen: 'q', board.King: 'k',
	}
	r, ok := letters[p]
	if !ok {
		return '?'
	}
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
