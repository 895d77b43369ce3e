// ordering.go ranks a MoveList in place before the search tries it, the
// single biggest lever on alpha-beta's effective branching factor. The
// actual sort (assign a score per move, then repeatedly select the best
// remaining one) is a selection-sort-over-a-fixed-array, driven by a
// plain priority array instead of a phased generator state machine.
package engine

import "github.com/corechess/corechess/board"

// mvvlvaBonus[victim] ranks captures by victim: scoreMove scales it by 8
// and subtracts the attacker's Kind, so among captures with the same SEE
// sign a more valuable victim always outranks a cheaper one and a
// cheaper attacker breaks ties. Every capture with SEE >= 0 outranks
// every capture with SEE < 0, whatever the victims.
var mvvlvaBonus = [board.KindCount]int32{0, 10, 40, 45, 68, 145}

const (
	scorePV          = 1 << 30
	scoreHash        = 1 << 29
	scoreGoodCapture = 1 << 20
	scorePromoQueen  = 1 << 19
	scoreKiller      = 1 << 16
	scoreCastle      = 1 << 10
	scoreEnPassant   = 1 << 9
	scoreBadCapture  = -(1 << 20)
)

// OrderMoves assigns a priority to every move in ml and selection-sorts
// it into descending priority order in place. hashMove and pvMove, when
// not NullMove, are forced to the front; killers and history come from
// the search's per-ply/per-position tables.
func OrderMoves(pos *board.Position, ml *board.MoveList, pvMove, hashMove board.Move, killers [2]board.Move, hist *historyTable) {
	n := ml.Len()
	var scores [board.MoveListCap]int32
	for i := 0; i < n; i++ {
		scores[i] = scoreMove(pos, ml.At(i), pvMove, hashMove, killers, hist)
	}
	for i := 0; i < n; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if scores[j] > scores[best] {
				best = j
			}
		}
		if best != i {
			tmp := ml.At(i)
			ml.Set(i, ml.At(best))
			ml.Set(best, tmp)
			scores[i], scores[best] = scores[best], scores[i]
		}
	}
}

func scoreMove(pos *board.Position, m, pvMove, hashMove board.Move, killers [2]board.Move, hist *historyTable) int32 {
	switch {
	case m == pvMove:
		return scorePV
	case m == hashMove:
		return scoreHash
	}

	if m.IsCapture() {
		var victim board.Kind
		if m.Flag() == board.FlagEnPassant {
			victim = board.Pawn
		} else {
			victim = pos.PieceAt(m.To()).Kind()
		}
		attacker := pos.PieceAt(m.From()).Kind()
		base := mvvlvaBonus[victim]*8 - int32(attacker)
		if SEE(pos, m) >= 0 {
			return scoreGoodCapture + base
		}
		return scoreBadCapture + base
	}

	if m.IsPromotion() {
		if m.PromotionKind() == board.Queen {
			return scorePromoQueen
		}
		return int32(m.PromotionKind())
	}

	if m.IsCastle() {
		return scoreCastle
	}

	if m == killers[0] {
		return scoreKiller + 1
	}
	if m == killers[1] {
		return scoreKiller
	}

	return hist.get(pos.SideToMove(), m)
}

// historyTable tracks how often a quiet move caused a beta cutoff,
// indexed by (side, from, to).
type historyTable struct {
	table [2][64][64]int32
}

func newHistoryTable() *historyTable { return &historyTable{} }

func (h *historyTable) get(c board.Color, m board.Move) int32 {
	return h.table[c][m.From()][m.To()]
}

// add records a beta cutoff at depth for m, and decays every other
// quiet move tried at this node so history remains a relative ranking
// rather than growing unbounded.
func (h *historyTable) add(c board.Color, m board.Move, depth int, quietsSeen []board.Move) {
	bonus := int32(depth * depth)
	h.table[c][m.From()][m.To()] += bonus
	if h.table[c][m.From()][m.To()] > 1<<24 {
		h.halve(c)
	}
	for _, q := range quietsSeen {
		if q == m {
			continue
		}
		h.table[c][q.From()][q.To()] -= bonus
	}
}

func (h *historyTable) halve(c board.Color) {
	for from := 0; from < 64; from++ {
		for to := 0; to < 64; to++ {
			h.table[c][from][to] /= 2
		}
	}
}

// killerTable tracks, per ply, the two most recent quiet moves that
// caused a beta cutoff.
type killerTable struct {
	killers [maxPly][2]board.Move
}

func (k *killerTable) get(ply int) [2]board.Move { return k.killers[ply] }

func (k *killerTable) add(ply int, m board.Move) {
	if k.killers[ply][0] == m {
		return
	}
	k.killers[ply][1] = k.killers[ply][0]
	k.killers[ply][0] = m
}
