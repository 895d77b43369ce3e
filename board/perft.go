package board

// Perft counts leaf positions reachable in exactly depth plies from pos,
// the standard move-generator correctness/performance exercise, broken
// down by move category so a failing count narrows down which kind of
// move is generated wrong.
type PerftCounts struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
}

func (c *PerftCounts) add(o PerftCounts) {
	c.Nodes += o.Nodes
	c.Captures += o.Captures
	c.EnPassant += o.EnPassant
	c.Castles += o.Castles
	c.Promotions += o.Promotions
	c.Checks += o.Checks
}

// Perft walks the legal move tree rooted at pos to the given depth and
// returns aggregate leaf statistics.
func Perft(pos *Position, depth int) PerftCounts {
	if depth == 0 {
		return PerftCounts{Nodes: 1}
	}
	var ml MoveList
	GenerateMoves(pos, &ml)

	var total PerftCounts
	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		pos.DoMove(m)
		sub := Perft(pos, depth-1)
		if depth == 1 {
			if m.IsCapture() {
				sub.Captures++
			}
			if m.Flag() == FlagEnPassant {
				sub.EnPassant++
			}
			if m.IsCastle() {
				sub.Castles++
			}
			if m.IsPromotion() {
				sub.Promotions++
			}
			if pos.InCheck() {
				sub.Checks++
			}
		}
		pos.UndoMove()
		total.add(sub)
	}
	return total
}
