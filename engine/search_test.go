package engine

import (
	"testing"

	"github.com/corechess/corechess/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFindsMateInOne(t *testing.T) {
	// Classic back-rank mate: black's king on g8 is boxed in by its own
	// f7/g7/h7 pawns, so Re1-e8 is mate in one.
	pos, err := board.LoadFromFEN("6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1")
	require.NoError(t, err)

	e := New(1)
	mv, score := e.PickFixedDepth(pos, 3)
	require.NotEqual(t, board.NullMove, mv)
	assert.GreaterOrEqual(t, score, int32(Mate-10), "expected a forced mate score, got %d", score)
}

func TestSearchReturnsLegalMove(t *testing.T) {
	pos := board.Start()
	e := New(1)
	mv, _ := e.PickFixedDepth(pos, 4)

	var ml board.MoveList
	board.GenerateMoves(pos, &ml)
	found := false
	for i := 0; i < ml.Len(); i++ {
		if ml.At(i) == mv {
			found = true
			break
		}
	}
	assert.True(t, found, "search returned %v which is not a legal move", mv)
}

func TestSearchAvoidsLosingQueenForNothing(t *testing.T) {
	// Black's queen sits on d4, undefended and a knight's jump away from
	// white's knight on f3; white to move should not prefer a quiet move
	// over winning it outright.
	pos, err := board.LoadFromFEN("4k3/8/8/8/3q4/5N2/8/4K3 w - - 0 1")
	require.NoError(t, err)

	e := New(1)
	mv, _ := e.PickFixedDepth(pos, 4)
	assert.True(t, mv.IsCapture(), "expected a capture, got %v", mv)
}

func TestOrderMovesPlacesHashMoveFirst(t *testing.T) {
	pos := board.Start()
	var ml board.MoveList
	board.GenerateMoves(pos, &ml)

	hashMove := board.NewMove(board.SquareG1, board.SquareF3, board.FlagQuiet)
	OrderMoves(pos, &ml, board.NullMove, hashMove, [2]board.Move{}, newHistoryTable())
	assert.Equal(t, hashMove, ml.At(0))
}
