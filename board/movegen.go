// movegen.go generates fully legal moves directly (no separate pseudo-
// legal-then-filter pass over the whole list): check evasions restrict
// the destination mask up front, and pinned pieces are restricted to
// their pin ray as each move is emitted.
package board

// GenerateMoves appends every legal move for the side to move into ml.
// ml is not reset first, so callers control whether they accumulate
// across calls (they normally don't).
func GenerateMoves(pos *Position, ml *MoveList) {
	us, them := pos.SideToMove(), pos.SideToMove().Opposite()
	king := pos.KingSquare(us)
	checkers := pos.state.Checkers
	nCheckers := checkers.Count()

	generateKingMoves(pos, us, them, king, ml)
	if nCheckers >= 2 {
		return
	}

	target := BbFull
	if nCheckers == 1 {
		cp := checkers
		checkerSq := cp.Pop()
		target = checkers | Between(king, checkerSq)
	}

	generatePawnMoves(pos, us, them, king, target, ml)
	generateKnightMoves(pos, us, king, target, ml)
	generateSliderMoves(pos, us, king, target, Bishop, ml)
	generateSliderMoves(pos, us, king, target, Rook, ml)
	generateSliderMoves(pos, us, king, target, Queen, ml)
	if nCheckers == 0 {
		generateCastles(pos, us, them, king, ml)
	}
}

func generateKingMoves(pos *Position, us, them Color, king Square, ml *MoveList) {
	own := pos.Occupancy(us)
	occNoKing := pos.Occupied() &^ king.Bitboard()
	dests := KingAttacks(king) &^ own
	for bb := dests; bb != 0; {
		to := bb.Pop()
		if pos.attackedBy(to, them, occNoKing) {
			continue
		}
		flag := FlagQuiet
		if pos.Occupancy(them).Has(to) {
			flag = FlagCapture
		}
		ml.Add(NewMove(king, to, flag))
	}
}

func generateCastles(pos *Position, us, them Color, king Square, ml *MoveList) {
	occ := pos.Occupied()
	rights := pos.CastleRights()

	type castle struct {
		right           CastleRights
		kingTo, rookSq  Square
		empty, noAttack Bitboard
	}
	var cs []castle
	if us == White {
		cs = []castle{
			{WhiteKingSide, SquareG1, SquareH1, Bitboard(0).Set(SquareF1).Set(SquareG1), Bitboard(0).Set(SquareE1).Set(SquareF1).Set(SquareG1)},
			{WhiteQueenSide, SquareC1, SquareA1, Bitboard(0).Set(SquareB1).Set(SquareC1).Set(SquareD1), Bitboard(0).Set(SquareE1).Set(SquareD1).Set(SquareC1)},
		}
	} else {
		cs = []castle{
			{BlackKingSide, SquareG8, SquareH8, Bitboard(0).Set(SquareF8).Set(SquareG8), Bitboard(0).Set(SquareE8).Set(SquareF8).Set(SquareG8)},
			{BlackQueenSide, SquareC8, SquareA8, Bitboard(0).Set(SquareB8).Set(SquareC8).Set(SquareD8), Bitboard(0).Set(SquareE8).Set(SquareD8).Set(SquareC8)},
		}
	}

	for _, c := range cs {
		if !rights.Has(c.right) {
			continue
		}
		if occ&c.empty != 0 {
			continue
		}
		attacked := false
		for bb := c.noAttack; bb != 0; {
			sq := bb.Pop()
			if pos.attackedBy(sq, them, occ) {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}
		flag := FlagCastleKing
		if c.right == WhiteQueenSide || c.right == BlackQueenSide {
			flag = FlagCastleQueen
		}
		ml.Add(NewMove(king, c.kingTo, flag))
	}
}

func generateKnightMoves(pos *Position, us Color, king Square, target Bitboard, ml *MoveList) {
	own := pos.Occupancy(us)
	them := us.Opposite()
	for pieces := pos.PieceBB(Knight, us); pieces != 0; {
		from := pieces.Pop()
		dests := KnightAttacks(from) &^ own & target
		for bb := dests; bb != 0; {
			to := bb.Pop()
			if !pos.moveObeysPin(king, from, to) {
				continue
			}
			flag := FlagQuiet
			if pos.Occupancy(them).Has(to) {
				flag = FlagCapture
			}
			ml.Add(NewMove(from, to, flag))
		}
	}
}

func generateSliderMoves(pos *Position, us Color, king Square, target Bitboard, kind Kind, ml *MoveList) {
	own := pos.Occupancy(us)
	them := us.Opposite()
	occ := pos.Occupied()
	for pieces := pos.PieceBB(kind, us); pieces != 0; {
		from := pieces.Pop()
		var attacks Bitboard
		switch kind {
		case Bishop:
			attacks = BishopAttacks(from, occ)
		case Rook:
			attacks = RookAttacks(from, occ)
		default:
			attacks = QueenAttacks(from, occ)
		}
		dests := attacks &^ own & target
		for bb := dests; bb != 0; {
			to := bb.Pop()
			if !pos.moveObeysPin(king, from, to) {
				continue
			}
			flag := FlagQuiet
			if pos.Occupancy(them).Has(to) {
				flag = FlagCapture
			}
			ml.Add(NewMove(from, to, flag))
		}
	}
}

var promoFlags = [4]Move{FlagPromoKnight, FlagPromoBishop, FlagPromoRook, FlagPromoQueen}
var promoCaptureFlags = [4]Move{FlagPromoCaptureKnight, FlagPromoCaptureBishop, FlagPromoCaptureRook, FlagPromoCaptureQueen}

func generatePawnMoves(pos *Position, us, them Color, king Square, target Bitboard, ml *MoveList) {
	occ := pos.Occupied()
	enemy := pos.Occupancy(them)
	pawns := pos.PieceBB(Pawn, us)
	lastRank := RankBb(7)
	if us == Black {
		lastRank = RankBb(0)
	}
	startRank := RankBb(1)
	if us == Black {
		startRank = RankBb(6)
	}

	for bb := pawns; bb != 0; {
		from := bb.Pop()

		singlePush := shiftForward(us, from.Bitboard()) &^ occ
		if singlePush != 0 {
			sp := singlePush
			to := sp.Pop()
			if target.Has(to) && pos.moveObeysPin(king, from, to) {
				addPawnMoves(ml, from, to, lastRank, false)
			}
			if from.Bitboard()&startRank != 0 {
				doublePush := shiftForward(us, singlePush) &^ occ
				if doublePush != 0 {
					to2 := doublePush.Pop()
					if target.Has(to2) && pos.moveObeysPin(king, from, to2) {
						ml.Add(NewMove(from, to2, FlagDoublePawnPush))
					}
				}
			}
		}

		for capBB := PawnAttacks(us, from) & enemy; capBB != 0; {
			to := capBB.Pop()
			if !target.Has(to) || !pos.moveObeysPin(king, from, to) {
				continue
			}
			addPawnMoves(ml, from, to, lastRank, true)
		}

		if pos.EnPassantSquare() != SquareNone {
			epTo := pos.EnPassantSquare()
			if PawnAttacks(us, from).Has(epTo) {
				capSq := RankFile(from.Rank(), epTo.File())
				epTargetOK := target.Has(epTo) || target.Has(capSq)
				if epTargetOK && pos.enPassantLegal(us, them, king, from, epTo, capSq) {
					ml.Add(NewMove(from, epTo, FlagEnPassant))
				}
			}
		}
	}
}

func addPawnMoves(ml *MoveList, from, to Square, lastRank Bitboard, capture bool) {
	if to.Bitboard()&lastRank != 0 {
		flags := promoFlags
		if capture {
			flags = promoCaptureFlags
		}
		for _, f := range flags {
			ml.Add(NewMove(from, to, f))
		}
		return
	}
	flag := FlagQuiet
	if capture {
		flag = FlagCapture
	}
	ml.Add(NewMove(from, to, flag))
}

// enPassantLegal handles the rare horizontal-pin case an en passant
// capture can expose: removing both the capturing and captured pawn from
// the same rank as the king can uncover a rook/queen check along that
// rank, which moveObeysPin's single-piece pin model does not cover.
func (pos *Position) enPassantLegal(us, them Color, king, from, to, capSq Square) bool {
	occAfter := pos.Occupied()
	occAfter = occAfter.Clear(from).Clear(capSq).Set(to)
	rooks := pos.PieceBB(Rook, them) | pos.PieceBB(Queen, them)
	if RookAttacks(king, occAfter)&rooks != 0 {
		return false
	}
	bishops := pos.PieceBB(Bishop, them) | pos.PieceBB(Queen, them)
	if BishopAttacks(king, occAfter)&bishops != 0 {
		return false
	}
	return true
}
