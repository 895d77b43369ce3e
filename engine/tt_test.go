package engine

import (
	"testing"

	"github.com/corechess/corechess/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTableStoreProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(0x1122334455667788)
	mv := board.NewMove(board.SquareE2, board.SquareE4, board.FlagDoublePawnPush)

	tt.Store(key, mv, 123, 45, 6, BoundExact)

	gotMove, gotScore, gotEval, gotDepth, gotBound, ok := tt.Probe(key)
	require.True(t, ok, "expected a hit after Store")
	assert.Equal(t, mv, gotMove)
	assert.EqualValues(t, 123, gotScore)
	assert.EqualValues(t, 45, gotEval)
	assert.Equal(t, 6, gotDepth)
	assert.Equal(t, BoundExact, gotBound)
}

func TestTranspositionTableMissOnDifferentKey(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(1, board.NullMove, 0, 0, 1, BoundExact)
	_, _, _, _, _, ok := tt.Probe(2)
	assert.False(t, ok)
}

func TestTranspositionTablePrefersDeeperEntry(t *testing.T) {
	tt := NewTranspositionTable(1)
	key := uint64(99)
	tt.Store(key, board.NullMove, 10, 0, 2, BoundExact)
	tt.Store(key, board.NullMove, 20, 0, 8, BoundExact)

	_, score, _, depth, _, ok := tt.Probe(key)
	require.True(t, ok)
	assert.EqualValues(t, 20, score)
	assert.Equal(t, 8, depth)
}

func TestClearEmptiesTable(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(5, board.NullMove, 1, 0, 1, BoundExact)
	tt.Clear()
	_, _, _, _, _, ok := tt.Probe(5)
	assert.False(t, ok)
}
