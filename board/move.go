package board

// Move is a position-independent, 16-bit packed move: bits 0-5 are the
// origin square, bits 6-11 the destination square, bits 12-15 the move
// flag. Packing the move this small keeps MoveList allocation-free and
// lets the search stash a move straight into a TT entry.
type Move uint16

// Move flags. Promotion flags encode the promoted Kind in their low two
// bits relative to FlagPromoKnight.
const (
	FlagQuiet Move = iota
	FlagDoublePawnPush
	FlagCastleKing
	FlagCastleQueen
	FlagCapture
	FlagEnPassant
	_ // 6: unused
	_ // 7: unused
	FlagPromoKnight
	FlagPromoBishop
	FlagPromoRook
	FlagPromoQueen
	FlagPromoCaptureKnight
	FlagPromoCaptureBishop
	FlagPromoCaptureRook
	FlagPromoCaptureQueen
)

// NullMove is the all-zero Move value. It is never a legal move and is
// used as a sentinel ("no move") throughout move generation and search.
const NullMove Move = 0

// NewMove packs from, to and flag into a Move.
func NewMove(from, to Square, flag Move) Move {
	return Move(from) | Move(to)<<6 | flag<<12
}

// From returns the move's origin square.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the move's destination square.
func (m Move) To() Square { return Square((m >> 6) & 0x3F) }

// Flag returns the move's packed flag nibble.
func (m Move) Flag() Move { return m >> 12 }

// IsCapture reports whether m captures a piece (including en passant and
// capture-promotions).
func (m Move) IsCapture() bool {
	f := m.Flag()
	return f == FlagCapture || f == FlagEnPassant || f >= FlagPromoCaptureKnight
}

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flag() >= FlagPromoKnight }

// IsCastle reports whether m is a castling move.
func (m Move) IsCastle() bool { return m.Flag() == FlagCastleKing || m.Flag() == FlagCastleQueen }

// IsQuiet reports whether m is neither a capture nor a promotion.
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// PromotionKind returns the promoted Kind for a promotion move. The
// result is undefined for non-promotion moves.
func (m Move) PromotionKind() Kind {
	f := m.Flag()
	if f >= FlagPromoCaptureKnight {
		f -= FlagPromoCaptureKnight - FlagPromoKnight
	}
	return Kind(Knight) + Kind(f-FlagPromoKnight)
}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool { return m == NullMove }

func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(kindSymbol[m.PromotionKind()] - 'A' + 'a')
	}
	return s
}

// MoveListCap is the fixed capacity of a MoveList: no legal chess
// position has more pseudo-legal moves than this.
const MoveListCap = 256

// MoveList is a fixed-capacity, allocation-free buffer of moves. It is
// the only container move generation writes to, so that search never
// allocates on the heap while walking the tree.
type MoveList struct {
	moves [MoveListCap]Move
	n     int
}

// Len returns the number of moves currently in the list.
func (ml *MoveList) Len() int { return ml.n }

// At returns the i'th move.
func (ml *MoveList) At(i int) Move { return ml.moves[i] }

// Set overwrites the i'th move; used by move ordering to sort in place.
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// Slice returns the populated prefix of the underlying array. Callers
// must not retain the slice past the next Reset/Add.
func (ml *MoveList) Slice() []Move { return ml.moves[:ml.n] }

// Add appends m to the list. It panics if the list is full, which would
// indicate a bug in move generation (256 is a hard upper bound).
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.n] = m
	ml.n++
}

// Reset empties the list for reuse without reallocating.
func (ml *MoveList) Reset() { ml.n = 0 }
