package board

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestDoUndoRoundTrip plays a pseudo-random sequence of legal moves from
// a handful of starting positions, undoing every one of them in reverse
// order, and checks the position afterwards is byte-for-byte identical
// to the snapshot taken before the first move - the round-trip law
// DoMove/UndoMove must hold.
func TestDoUndoRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		pos, err := LoadFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		before := snapshot(pos)
		r := rand.New(rand.NewSource(42))

		played := 0
		for played < 40 {
			var ml MoveList
			GenerateMoves(pos, &ml)
			if ml.Len() == 0 {
				break
			}
			m := ml.At(r.Intn(ml.Len()))
			pos.DoMove(m)
			played++
		}
		for i := 0; i < played; i++ {
			pos.UndoMove()
		}

		after := snapshot(pos)
		if diff := cmp.Diff(before, after); diff != "" {
			t.Errorf("fen %q: position differs after do/undo round trip (-before +after):\n%s", fen, diff)
		}
		if pos.ToFEN() != fen {
			t.Errorf("fen %q: ToFEN after round trip = %q", fen, pos.ToFEN())
		}
	}
}

// posSnapshot captures everything a correct UndoMove sequence must
// restore exactly.
type posSnapshot struct {
	Squares  [64]Piece
	Side     Color
	Castle   CastleRights
	EP       Square
	HalfMove int
	Zobrist  uint64
	MG, EG   int32
	Phase    int32
}

func snapshot(pos *Position) posSnapshot {
	return posSnapshot{
		Squares:  pos.squares,
		Side:     pos.sideToMove,
		Castle:   pos.castleRights,
		EP:       pos.epSquare,
		HalfMove: pos.halfMoveClock,
		Zobrist:  pos.zobrist,
		MG:       pos.mg,
		EG:       pos.eg,
		Phase:    pos.phase,
	}
}

func TestZobristRecomputeMatchesIncremental(t *testing.T) {
	pos := Start()
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 30; i++ {
		var ml MoveList
		GenerateMoves(pos, &ml)
		if ml.Len() == 0 {
			break
		}
		pos.DoMove(ml.At(r.Intn(ml.Len())))

		incremental := pos.zobrist
		incMG, incEG, incPhase := pos.mg, pos.eg, pos.phase
		pos.recomputeZobristAndEvalFromScratch()
		if pos.zobrist != incremental {
			t.Fatalf("move %d: zobrist drift: incremental=%x recomputed=%x", i, incremental, pos.zobrist)
		}
		if pos.mg != incMG || pos.eg != incEG || pos.phase != incPhase {
			t.Fatalf("move %d: eval drift: incremental=(%d,%d,%d) recomputed=(%d,%d,%d)",
				i, incMG, incEG, incPhase, pos.mg, pos.eg, pos.phase)
		}
	}
}
