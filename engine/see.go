// see.go implements Static Exchange Evaluation: the minimax value of a
// sequence of captures on a single square, without walking the real
// search tree. The swap algorithm picks the least valuable attacker
// first and prunes occupancy per color as pieces are consumed, built
// directly on the board package's bitboard/magic primitives.
package engine

import "github.com/corechess/corechess/board"

// seeValue is the pawn=100 material scale SEE reasons about; distinct
// from eval.go's tapered piece-square values since SEE only ever
// compares material, never position.
var seeValue = [board.KindCount]int32{100, 320, 330, 500, 900, 20000}

// SEE returns the static exchange value, in centipawns from the moving
// side's perspective, of playing mv on pos. A negative value means the
// capture sequence loses material even after all recaptures.
func SEE(pos *board.Position, mv board.Move) int32 {
	from, to := mv.From(), mv.To()
	us := pos.SideToMove()

	captureSq := to
	var firstGain int32
	if mv.Flag() == board.FlagEnPassant {
		firstGain = seeValue[board.Pawn]
	} else if mv.IsCapture() {
		firstGain = seeValue[pos.PieceAt(to).Kind()]
	}

	attacker := pos.PieceAt(from).Kind()
	if mv.IsPromotion() {
		// The pawn vanishes and a piece of the promoted kind appears;
		// account for both the capture gain and the promotion gain up
		// front, then continue the swap as if the promoted piece had
		// always stood on `to`.
		firstGain += seeValue[mv.PromotionKind()] - seeValue[board.Pawn]
		attacker = mv.PromotionKind()
	}

	occ := pos.Occupied()
	occ = occ.Clear(from)
	if mv.Flag() == board.FlagEnPassant {
		occ = occ.Clear(board.RankFile(from.Rank(), to.File()))
	}

	var byColorPawn, byColorKnight, byColorBishop, byColorRook, byColorQueen, byColorKing [board.ColorCount]board.Bitboard
	for _, c := range [2]board.Color{board.White, board.Black} {
		byColorPawn[c] = pos.PieceBB(board.Pawn, c)
		byColorKnight[c] = pos.PieceBB(board.Knight, c)
		byColorBishop[c] = pos.PieceBB(board.Bishop, c)
		byColorRook[c] = pos.PieceBB(board.Rook, c)
		byColorQueen[c] = pos.PieceBB(board.Queen, c)
		byColorKing[c] = pos.PieceBB(board.King, c)
	}
	byColorPawn[us] = byColorPawn[us].Clear(from)
	byColorKnight[us] = byColorKnight[us].Clear(from)
	byColorBishop[us] = byColorBishop[us].Clear(from)
	byColorRook[us] = byColorRook[us].Clear(from)
	byColorQueen[us] = byColorQueen[us].Clear(from)
	byColorKing[us] = byColorKing[us].Clear(from)

	var gains [32]int32
	gains[0] = firstGain
	depth := 1
	side := us.Opposite()
	onSquare := attacker

	for depth < len(gains) {
		var attackerSq board.Square
		var kind board.Kind
		found := false

		if bb := board.PawnAttacks(side.Opposite(), captureSq) & byColorPawn[side] & occ; bb != 0 {
			attackerSq, kind, found = bb.Pop(), board.Pawn, true
		} else if bb := board.KnightAttacks(captureSq) & byColorKnight[side] & occ; bb != 0 && !found {
			attackerSq, kind, found = bb.Pop(), board.Knight, true
		} else if bb := board.BishopAttacks(captureSq, occ) & byColorBishop[side] & occ; bb != 0 && !found {
			attackerSq, kind, found = bb.Pop(), board.Bishop, true
		} else if bb := board.RookAttacks(captureSq, occ) & byColorRook[side] & occ; bb != 0 && !found {
			attackerSq, kind, found = bb.Pop(), board.Rook, true
		} else if bb := board.QueenAttacks(captureSq, occ) & byColorQueen[side] & occ; bb != 0 && !found {
			attackerSq, kind, found = bb.Pop(), board.Queen, true
		} else if bb := board.KingAttacks(captureSq) & byColorKing[side] & occ; bb != 0 && !found {
			attackerSq, kind, found = bb.Pop(), board.King, true
		}

		if !found {
			break
		}

		gains[depth] = seeValue[onSquare] - gains[depth-1]
		occ = occ.Clear(attackerSq)
		switch kind {
		case board.Pawn:
			byColorPawn[side] = byColorPawn[side].Clear(attackerSq)
		case board.Knight:
			byColorKnight[side] = byColorKnight[side].Clear(attackerSq)
		case board.Bishop:
			byColorBishop[side] = byColorBishop[side].Clear(attackerSq)
		case board.Rook:
			byColorRook[side] = byColorRook[side].Clear(attackerSq)
		case board.Queen:
			byColorQueen[side] = byColorQueen[side].Clear(attackerSq)
		case board.King:
			byColorKing[side] = byColorKing[side].Clear(attackerSq)
		}
		onSquare = kind
		side = side.Opposite()
		depth++
	}

	for depth > 1 {
		depth--
		if -gains[depth] < gains[depth-1] {
			gains[depth-1] = -gains[depth]
		}
	}
	return gains[0]
}

// SEESign is a SEE query for callers that only need the sign; quiescence
// and move ordering call SEE directly. It just calls SEE; a separate early-exit short-circuit isn't worth
// maintaining now that SEE itself is already O(attackers) rather than
// O(movegen).
func SEESign(pos *board.Position, mv board.Move) int32 {
	return SEE(pos, mv)
}
