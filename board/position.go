package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the standard chess starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const pieceListCap = 16

// evalDelta records the net change applied to a Position's incremental
// mg/eg/phase accumulators by a single DoMove, so UndoMove can reverse
// it without a rescan.
type evalDelta struct {
	MG, EG, Phase int32
}

// StateInfo is the side-to-move-derived check/pin information recomputed
// after every make/unmake.
type StateInfo struct {
	Checkers        Bitboard // enemy pieces currently giving check.
	BlockersForKing Bitboard // our pieces pinned to our own king.
	Pinners         Bitboard // enemy sliders doing the pinning.
}

// undoRecord captures everything DoMove needs to reverse a move.
type undoRecord struct {
	move            Move
	captured        Piece
	captureSquare   Square
	castleRights    CastleRights
	epSquare        Square
	halfMoveClock   int
	zobrist         uint64
	state           StateInfo
	delta           evalDelta
}

// Position is the authoritative, mutable chess position: board array,
// per-kind/color bitboards, piece lists with reverse index, incremental
// Zobrist hash and tapered-eval accumulators, and an undo stack. The undo
// stack is a slice that grows by one record per move; it has no fixed
// capacity and is never compacted.
type Position struct {
	squares [64]Piece

	byKindColor [KindCount][ColorCount]Bitboard
	byColor     [ColorCount]Bitboard

	pieceList    [KindCount][ColorCount][pieceListCap]Square
	pieceCount   [KindCount][ColorCount]int
	reverseIndex [64]int8

	sideToMove     Color
	castleRights   CastleRights
	epSquare       Square
	halfMoveClock  int
	fullMoveNumber int
	ply            int

	zobrist uint64
	mg, eg  int32
	phase   int32

	state StateInfo

	undo []undoRecord
}

// Start returns a new Position set to the standard starting position.
func Start() *Position {
	pos, err := LoadFromFEN(FENStartPos)
	if err != nil {
		panic("board: invalid built-in start FEN: " + err.Error())
	}
	return pos
}

// LoadFromFEN parses fen (six space-separated fields; the half-move clock
// and full-move number may be omitted and then default to 0 and 1) and
// returns a new Position. The board, bitboards, piece lists, castling rights,
// en-passant square and half-move clock are rebuilt from scratch, and
// the Zobrist hash and incremental eval are recomputed from scratch. On
// failure, ErrInvalidFEN is returned (wrapped with detail) and no
// partially built Position is returned.
func LoadFromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(fields))
	}
	for len(fields) < 6 {
		fields = append(fields, "0")
	}

	pos := &Position{epSquare: SquareNone}
	for i := range pos.reverseIndex {
		pos.reverseIndex[i] = -1
	}

	if err := parseBoard(pos, fields[0]); err != nil {
		return nil, err
	}
	switch fields[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidFEN, fields[1])
	}
	rights, err := parseCastling(fields[2])
	if err != nil {
		return nil, err
	}
	pos.castleRights = rights

	if fields[3] != "-" {
		sq, err := SquareFromString(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: bad en passant square %q", ErrInvalidFEN, fields[3])
		}
		pos.epSquare = sq
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return nil, fmt.Errorf("%w: bad half-move clock %q", ErrInvalidFEN, fields[4])
	}
	pos.halfMoveClock = half

	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		full = 1
	}
	pos.fullMoveNumber = full

	pos.recomputeZobristAndEvalFromScratch()
	pos.state = pos.computeStateInfo(pos.sideToMove)
	return pos, nil
}

func parseBoard(pos *Position, board string) error {
	ranks := strings.Split(board, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range []byte(rankStr) {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			p, ok := pieceFromSymbol(ch)
			if !ok || file >= 8 {
				return fmt.Errorf("%w: bad board token %q", ErrInvalidFEN, rankStr)
			}
			pos.placePiece(RankFile(rank, file), p)
			file++
		}
		if file != 8 {
			return fmt.Errorf("%w: rank %q does not sum to 8 files", ErrInvalidFEN, rankStr)
		}
	}
	if pos.pieceCount[King][White] != 1 || pos.pieceCount[King][Black] != 1 {
		return fmt.Errorf("%w: must have exactly one king per side", ErrInvalidFEN)
	}
	return nil
}

func parseCastling(s string) (CastleRights, error) {
	if s == "-" {
		return NoCastleRights, nil
	}
	var rights CastleRights
	for _, ch := range []byte(s) {
		switch ch {
		case 'K':
			rights |= WhiteKingSide
		case 'Q':
			rights |= WhiteQueenSide
		case 'k':
			rights |= BlackKingSide
		case 'q':
			rights |= BlackQueenSide
		default:
			return 0, fmt.Errorf("%w: bad castling field %q", ErrInvalidFEN, s)
		}
	}
	return rights, nil
}

// ToFEN renders the position back to Forsyth-Edwards notation. It is the
// inverse of LoadFromFEN modulo full-move-counter normalization.
func (pos *Position) ToFEN() string {
	var b strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p := pos.squares[RankFile(r, f)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteString(p.String())
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if r > 0 {
			b.WriteByte('/')
		}
	}
	b.WriteByte(' ')
	b.WriteString(pos.sideToMove.String())
	b.WriteByte(' ')
	b.WriteString(pos.castleRights.String())
	b.WriteByte(' ')
	b.WriteString(pos.epSquare.String())
	fmt.Fprintf(&b, " %d %d", pos.halfMoveClock, pos.fullMoveNumber)
	return b.String()
}

// --- low-level board mutation (no zobrist/eval side effects) ---

func (pos *Position) placePiece(sq Square, p Piece) {
	k, c := p.Kind(), p.Color()
	pos.squares[sq] = p
	pos.byKindColor[k][c] = pos.byKindColor[k][c].Set(sq)
	pos.byColor[c] = pos.byColor[c].Set(sq)
	idx := pos.pieceCount[k][c]
	pos.pieceList[k][c][idx] = sq
	pos.reverseIndex[sq] = int8(idx)
	pos.pieceCount[k][c]++
}

func (pos *Position) takePiece(sq Square) Piece {
	p := pos.squares[sq]
	k, c := p.Kind(), p.Color()
	pos.squares[sq] = NoPiece
	pos.byKindColor[k][c] = pos.byKindColor[k][c].Clear(sq)
	pos.byColor[c] = pos.byColor[c].Clear(sq)

	idx := int(pos.reverseIndex[sq])
	last := pos.pieceCount[k][c] - 1
	moved := pos.pieceList[k][c][last]
	pos.pieceList[k][c][idx] = moved
	pos.reverseIndex[moved] = int8(idx)
	pos.pieceCount[k][c] = last
	pos.reverseIndex[sq] = -1
	return p
}

// --- incremental zobrist+eval helpers used by DoMove/LoadFromFEN ---

func (pos *Position) addPiece(sq Square, p Piece) (dmg, deg, dphase int32) {
	pos.placePiece(sq, p)
	pos.zobrist ^= pieceZobrist(sq, p)
	sc := pieceSquareValue(p, sq)
	dphase = phaseWeight[p.Kind()]
	pos.mg += sc.MG
	pos.eg += sc.EG
	pos.phase += dphase
	return sc.MG, sc.EG, dphase
}

func (pos *Position) removePiece(sq Square) (p Piece, dmg, deg, dphase int32) {
	p = pos.takePiece(sq)
	pos.zobrist ^= pieceZobrist(sq, p)
	sc := pieceSquareValue(p, sq)
	dphase = phaseWeight[p.Kind()]
	pos.mg -= sc.MG
	pos.eg -= sc.EG
	pos.phase -= dphase
	return p, -sc.MG, -sc.EG, -dphase
}

func (pos *Position) recomputeZobristAndEvalFromScratch() {
	pos.zobrist, pos.mg, pos.eg, pos.phase = 0, 0, 0, 0
	for sq := Square(0); sq < 64; sq++ {
		if p := pos.squares[sq]; !p.IsEmpty() {
			pos.zobrist ^= pieceZobrist(sq, p)
			sc := pieceSquareValue(p, sq)
			pos.mg += sc.MG
			pos.eg += sc.EG
			pos.phase += phaseWeight[p.Kind()]
		}
	}
	if pos.sideToMove == Black {
		pos.zobrist ^= zobristSide
	}
	pos.zobrist ^= castlingZobrist(pos.castleRights)
	if pos.epSquare != SquareNone {
		pos.zobrist ^= zobristEPFile[pos.epSquare.File()]
	}
}

func castlingZobrist(rights CastleRights) uint64 {
	var h uint64
	for i := 0; i < 4; i++ {
		if rights&(1<<uint(i)) != 0 {
			h ^= zobristCastling[i]
		}
	}
	return h
}

// --- accessors ---

func (pos *Position) Zobrist() uint64           { return pos.zobrist }
func (pos *Position) SideToMove() Color         { return pos.sideToMove }
func (pos *Position) CastleRights() CastleRights { return pos.castleRights }
func (pos *Position) EnPassantSquare() Square   { return pos.epSquare }
func (pos *Position) HalfMoveClock() int        { return pos.halfMoveClock }
func (pos *Position) FullMoveNumber() int       { return pos.fullMoveNumber }
func (pos *Position) Ply() int                  { return pos.ply }

// PieceAt returns the piece occupying sq, or NoPiece.
func (pos *Position) PieceAt(sq Square) Piece { return pos.squares[sq] }

// PieceBB returns the bitboard of squares occupied by (kind, color).
func (pos *Position) PieceBB(k Kind, c Color) Bitboard { return pos.byKindColor[k][c] }

// Occupancy returns the bitboard of every square occupied by c.
func (pos *Position) Occupancy(c Color) Bitboard { return pos.byColor[c] }

// Occupied returns the bitboard of every occupied square.
func (pos *Position) Occupied() Bitboard { return pos.byColor[White] | pos.byColor[Black] }

// KingSquare returns the square of c's king.
func (pos *Position) KingSquare(c Color) Square { return pos.pieceList[King][c][0] }

// PieceListLen returns how many pieces of (kind, color) are on the board.
func (pos *Position) PieceListLen(k Kind, c Color) int { return pos.pieceCount[k][c] }

// PieceListAt returns the i'th square in (kind, color)'s piece list.
func (pos *Position) PieceListAt(k Kind, c Color, i int) Square { return pos.pieceList[k][c][i] }

// State returns the current StateInfo (checkers/pinners/blockers) for the
// side to move.
func (pos *Position) State() StateInfo { return pos.state }

// InCheck reports whether the side to move is in check.
func (pos *Position) InCheck() bool { return pos.state.Checkers != 0 }

// LastMove returns the most recently played move, or NullMove if the
// undo stack is empty.
func (pos *Position) LastMove() Move {
	if len(pos.undo) == 0 {
		return NullMove
	}
	return pos.undo[len(pos.undo)-1].move
}

// --- attack detection ---

// SquareUnderAttack returns true if any piece of color by attacks sq.
func (pos *Position) SquareUnderAttack(sq Square, by Color) bool {
	return pos.attackedBy(sq, by, pos.Occupied())
}

// attackedBy is SquareUnderAttack parameterized on occupancy, so king-move
// legality can exclude the moving king's own square from the blocker set
// (otherwise a king "retreating" straight back from a checking rook would
// look safe, since the rook's ray still appears blocked by the king's old
// square).
func (pos *Position) attackedBy(sq Square, by Color, occ Bitboard) bool {
	if PawnAttacks(by.Opposite(), sq)&pos.PieceBB(Pawn, by) != 0 {
		return true
	}
	if KnightAttacks(sq)&pos.PieceBB(Knight, by) != 0 {
		return true
	}
	if KingAttacks(sq)&pos.PieceBB(King, by) != 0 {
		return true
	}
	bishops := pos.PieceBB(Bishop, by) | pos.PieceBB(Queen, by)
	if BishopAttacks(sq, occ)&bishops != 0 {
		return true
	}
	rooks := pos.PieceBB(Rook, by) | pos.PieceBB(Queen, by)
	if RookAttacks(sq, occ)&rooks != 0 {
		return true
	}
	return false
}

// moveObeysPin reports whether moving the piece on from to to keeps a
// pinned piece on its pin ray. Unpinned pieces always satisfy this
// trivially.
func (pos *Position) moveObeysPin(king, from, to Square) bool {
	if !pos.state.BlockersForKing.Has(from) {
		return true
	}
	return PinRay(king, from, pos.state.Pinners).Has(to)
}

// AllAttacks returns the union of every square attacked by color c,
// used to compute the king's unsafe squares.
func (pos *Position) AllAttacks(c Color) Bitboard {
	occ := pos.Occupied()
	// Sliders "see through" the enemy king so it cannot step backward
	// along a check ray onto a square that would still be attacked once
	// the king itself is removed from the occupancy.
	occNoKing := occ &^ pos.PieceBB(King, c.Opposite())

	var attacks Bitboard
	for bb := pos.PieceBB(Pawn, c); bb != 0; {
		sq := bb.Pop()
		attacks |= PawnAttacks(c, sq)
	}
	for bb := pos.PieceBB(Knight, c); bb != 0; {
		attacks |= KnightAttacks(bb.Pop())
	}
	for bb := pos.PieceBB(Bishop, c) | pos.PieceBB(Queen, c); bb != 0; {
		sq := bb.Pop()
		attacks |= BishopAttacks(sq, occNoKing)
	}
	for bb := pos.PieceBB(Rook, c) | pos.PieceBB(Queen, c); bb != 0; {
		sq := bb.Pop()
		attacks |= RookAttacks(sq, occNoKing)
	}
	attacks |= KingAttacks(pos.KingSquare(c))
	return attacks
}

// GetAttacker returns the kind of any by-colored piece attacking sq, or
// false if none attacks it. Ties are broken toward the least valuable
// attacker, as SEE's swap algorithm requires.
func (pos *Position) GetAttacker(sq Square, by Color) (Kind, bool) {
	occ := pos.Occupied()
	if PawnAttacks(by.Opposite(), sq)&pos.PieceBB(Pawn, by) != 0 {
		return Pawn, true
	}
	if KnightAttacks(sq)&pos.PieceBB(Knight, by) != 0 {
		return Knight, true
	}
	if BishopAttacks(sq, occ)&pos.PieceBB(Bishop, by) != 0 {
		return Bishop, true
	}
	if RookAttacks(sq, occ)&pos.PieceBB(Rook, by) != 0 {
		return Rook, true
	}
	if QueenAttacks(sq, occ)&pos.PieceBB(Queen, by) != 0 {
		return Queen, true
	}
	if KingAttacks(sq)&pos.PieceBB(King, by) != 0 {
		return King, true
	}
	return 0, false
}

// computeStateInfo recomputes checkers/pinners/blockersForKing for color
// c's king.
func (pos *Position) computeStateInfo(c Color) StateInfo {
	them := c.Opposite()
	king := pos.KingSquare(c)
	occ := pos.Occupied()

	var checkers Bitboard
	checkers |= PawnAttacks(c, king) & pos.PieceBB(Pawn, them)
	checkers |= KnightAttacks(king) & pos.PieceBB(Knight, them)
	checkers |= BishopAttacks(king, occ) & (pos.PieceBB(Bishop, them) | pos.PieceBB(Queen, them))
	checkers |= RookAttacks(king, occ) & (pos.PieceBB(Rook, them) | pos.PieceBB(Queen, them))

	var pinners, blockers Bitboard
	sliders := (pos.PieceBB(Bishop, them) | pos.PieceBB(Queen, them)) & superAttacks[king]
	sliders |= (pos.PieceBB(Rook, them) | pos.PieceBB(Queen, them)) & superAttacks[king]
	for bb := sliders; bb != 0; {
		sq := bb.Pop()
		// Only relevant if the slider actually aligns with the king along
		// its own movement pattern.
		isDiag := sq.Rank() != king.Rank() && sq.File() != king.File()
		isOrtho := sq.Rank() == king.Rank() || sq.File() == king.File()
		isBishop := pos.PieceAt(sq).Kind() == Bishop
		isRook := pos.PieceAt(sq).Kind() == Rook
		if isBishop && !isDiag {
			continue
		}
		if isRook && !isOrtho {
			continue
		}
		between := Between(king, sq)
		blockersHere := between & occ
		if blockersHere == 0 {
			continue // already a checker, not a pin
		}
		if blockersHere.Count() == 1 && blockersHere&pos.Occupancy(c) != 0 {
			pinners = pinners.Set(sq)
			blockers |= blockersHere
		}
	}

	return StateInfo{Checkers: checkers, Pinners: pinners, BlockersForKing: blockers}
}

// PinRay returns BetweenInclusive(king, pinner) for the unique pinner
// (if any) lying on Line(king, p); a pinned piece on p may only move
// within this ray.
func PinRay(king, p Square, pinners Bitboard) Bitboard {
	line := Line(king, p)
	for bb := pinners; bb != 0; {
		pinner := bb.Pop()
		if line.Has(pinner) {
			return BetweenInclusive(king, pinner)
		}
	}
	return BbFull
}

// --- move execution ---

// DoMove applies mv, which must be a legal move for the position, and
// pushes an undo record. Only legal moves may be passed; DoMove has no
// failure mode of its own.
func (pos *Position) DoMove(mv Move) {
	us, them := pos.sideToMove, pos.sideToMove.Opposite()
	from, to := mv.From(), mv.To()
	mover := pos.squares[from]

	rec := undoRecord{
		move:          mv,
		captured:      NoPiece,
		captureSquare: SquareNone,
		castleRights:  pos.castleRights,
		epSquare:      pos.epSquare,
		halfMoveClock: pos.halfMoveClock,
		zobrist:       pos.zobrist,
		state:         pos.state,
	}

	var d evalDelta
	apply3 := func(a, b, c int32) { d.MG += a; d.EG += b; d.Phase += c }

	// XOR out old ep-file hash and old castling-rights hash up front.
	if pos.epSquare != SquareNone {
		pos.zobrist ^= zobristEPFile[pos.epSquare.File()]
	}
	pos.zobrist ^= castlingZobrist(pos.castleRights)

	// Remove mover from origin (re-placed below, possibly promoted).
	_, a, b, c := pos.removePiece(from)
	apply3(a, b, c)

	if mv.IsCapture() {
		capSq := to
		if mv.Flag() == FlagEnPassant {
			capSq = RankFile(from.Rank(), to.File())
		}
		captured, a, b, c := pos.removePiece(capSq)
		apply3(a, b, c)
		rec.captured = captured
		rec.captureSquare = capSq
	}

	placed := mover
	if mv.IsPromotion() {
		placed = NewPiece(us, mv.PromotionKind())
	}
	a, b, c = pos.addPiece(to, placed)
	apply3(a, b, c)

	if mv.IsCastle() {
		rookFrom, rookTo := castlingRookSquares(to)
		rook, a, b, c := pos.removePiece(rookFrom)
		apply3(a, b, c)
		a, b, c = pos.addPiece(rookTo, rook)
		apply3(a, b, c)
	}

	pos.epSquare = SquareNone
	if mv.Flag() == FlagDoublePawnPush {
		mid := RankFile((from.Rank()+to.Rank())/2, from.File())
		pos.epSquare = mid
		pos.zobrist ^= zobristEPFile[mid.File()]
	}

	pos.castleRights &= castleRightMask[from] & castleRightMask[to]
	pos.zobrist ^= castlingZobrist(pos.castleRights)

	pos.sideToMove = them
	pos.zobrist ^= zobristSide

	if mover.Kind() == Pawn || mv.IsCapture() {
		pos.halfMoveClock = 0
	} else {
		pos.halfMoveClock++
	}
	if us == Black {
		pos.fullMoveNumber++
	}
	pos.ply++

	pos.state = pos.computeStateInfo(pos.sideToMove)
	rec.delta = d
	pos.undo = append(pos.undo, rec)

	if Debug {
		pos.assertConsistent()
	}
}

// UndoMove reverses the most recent DoMove, restoring the position byte
// for byte. Panics if the undo stack is empty and Debug is enabled.
func (pos *Position) UndoMove() {
	if Debug && len(pos.undo) == 0 {
		panic("board: UndoMove: undo stack underflow")
	}
	rec := pos.undo[len(pos.undo)-1]
	pos.undo = pos.undo[:len(pos.undo)-1]

	them := pos.sideToMove // side to move after the move being undone: the mover's opponent
	us := them.Opposite()
	mv := rec.move
	from, to := mv.From(), mv.To()

	if mv.IsCastle() {
		rookFrom, rookTo := castlingRookSquares(to)
		rook := pos.takePiece(rookTo)
		pos.placePiece(rookFrom, rook)
	}

	placed := pos.takePiece(to)
	origMover := placed
	if mv.IsPromotion() {
		origMover = NewPiece(us, Pawn)
	}
	pos.placePiece(from, origMover)

	if rec.captured != NoPiece {
		pos.placePiece(rec.captureSquare, rec.captured)
	}

	pos.sideToMove = us
	pos.castleRights = rec.castleRights
	pos.epSquare = rec.epSquare
	pos.halfMoveClock = rec.halfMoveClock
	pos.zobrist = rec.zobrist
	pos.state = rec.state
	pos.mg -= rec.delta.MG
	pos.eg -= rec.delta.EG
	pos.phase -= rec.delta.Phase
	if us == Black {
		pos.fullMoveNumber--
	}
	pos.ply--

	if Debug {
		pos.assertConsistent()
	}
}

// DoNullMove flips the side to move without moving a piece, for
// null-move pruning. Illegal while in check; the caller enforces this.
func (pos *Position) DoNullMove() {
	rec := undoRecord{
		move:          NullMove,
		epSquare:      pos.epSquare,
		halfMoveClock: pos.halfMoveClock,
		castleRights:  pos.castleRights,
		zobrist:       pos.zobrist,
		state:         pos.state,
	}
	if pos.epSquare != SquareNone {
		pos.zobrist ^= zobristEPFile[pos.epSquare.File()]
		pos.epSquare = SquareNone
	}
	pos.sideToMove = pos.sideToMove.Opposite()
	pos.zobrist ^= zobristSide
	pos.halfMoveClock++
	pos.ply++
	pos.state = pos.computeStateInfo(pos.sideToMove)
	pos.undo = append(pos.undo, rec)
}

// UndoNullMove reverses DoNullMove.
func (pos *Position) UndoNullMove() {
	rec := pos.undo[len(pos.undo)-1]
	pos.undo = pos.undo[:len(pos.undo)-1]
	pos.sideToMove = pos.sideToMove.Opposite()
	pos.epSquare = rec.epSquare
	pos.halfMoveClock = rec.halfMoveClock
	pos.castleRights = rec.castleRights
	pos.zobrist = rec.zobrist
	pos.state = rec.state
	pos.ply--
}

// GameStatus classifies the current position.
type GameStatus int

const (
	Ongoing GameStatus = iota
	Draw
	Checkmate
)

// Status returns the game status and, for Checkmate, the winning color.
func (pos *Position) Status(ml *MoveList) (GameStatus, Color) {
	if ml.Len() == 0 {
		if pos.InCheck() {
			return Checkmate, pos.sideToMove.Opposite()
		}
		return Draw, White
	}
	if pos.halfMoveClock >= 100 {
		return Draw, White
	}
	if pos.ThreeFoldRepetition() {
		return Draw, White
	}
	if pos.InsufficientMaterial() {
		return Draw, White
	}
	return Ongoing, White
}

// InsufficientMaterial reports a trivial draw by insufficient material:
// king vs king, or king+minor vs king.
func (pos *Position) InsufficientMaterial() bool {
	if pos.PieceBB(Pawn, White) != 0 || pos.PieceBB(Pawn, Black) != 0 {
		return false
	}
	if pos.PieceBB(Rook, White) != 0 || pos.PieceBB(Rook, Black) != 0 {
		return false
	}
	if pos.PieceBB(Queen, White) != 0 || pos.PieceBB(Queen, Black) != 0 {
		return false
	}
	minors := pos.PieceBB(Knight, White).Count() + pos.PieceBB(Bishop, White).Count() +
		pos.PieceBB(Knight, Black).Count() + pos.PieceBB(Bishop, Black).Count()
	return minors <= 1
}

// ThreeFoldRepetition scans the undo stack backwards two plies at a time
// (same side to move) up to the half-move-clock boundary, counting
// Zobrist equality. Two prior hits means the current position has
// occurred three times in total.
func (pos *Position) ThreeFoldRepetition() bool {
	return pos.repetitionCount() >= 2
}

// IsRepeatTowardsThreeFold returns true on the first repetition hit; used
// inside the search tree so repeating a position is treated as drawing
// even before the literal threefold.
func (pos *Position) IsRepeatTowardsThreeFold() bool {
	return pos.repetitionCount() >= 1
}

func (pos *Position) repetitionCount() int {
	hits := 0
	limit := pos.halfMoveClock
	if limit > len(pos.undo) {
		limit = len(pos.undo)
	}
	for i := 2; i <= limit; i += 2 {
		if pos.undo[len(pos.undo)-i].zobrist == pos.zobrist {
			hits++
		}
	}
	return hits
}

// assertConsistent panics if board/bitboard/piece-list invariants do not
// hold. Only called when Debug is enabled.
func (pos *Position) assertConsistent() {
	var all Bitboard
	for c := Color(0); c < ColorCount; c++ {
		all |= pos.byColor[c]
	}
	for sq := Square(0); sq < 64; sq++ {
		occ := all.Has(sq)
		empty := pos.squares[sq].IsEmpty()
		if occ == empty {
			panic(fmt.Sprintf("board: square %v occupancy/board mismatch", sq))
		}
	}
	for k := Kind(0); k < KindCount; k++ {
		for c := Color(0); c < ColorCount; c++ {
			for i := 0; i < pos.pieceCount[k][c]; i++ {
				sq := pos.pieceList[k][c][i]
				p := pos.squares[sq]
				if p.Kind() != k || p.Color() != c {
					panic(fmt.Sprintf("board: piece list mismatch at %v", sq))
				}
				if int(pos.reverseIndex[sq]) != i {
					panic(fmt.Sprintf("board: reverse index mismatch at %v", sq))
				}
			}
		}
	}
	if pos.pieceCount[King][White] != 1 || pos.pieceCount[King][Black] != 1 {
		panic("board: must have exactly one king per side")
	}
}
