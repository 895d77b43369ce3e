// api.go is the package's public front door: a handful of constructors
// and query methods a CLI or driver calls without reaching into
// search.go's internals.
package engine

import (
	"time"

	"github.com/corechess/corechess/board"
)

// New builds an Engine with a dedicated transposition table of the
// given size, ready to search once SetPosition is called.
func New(ttSizeMB int) *Engine {
	return NewEngine(NewTranspositionTable(ttSizeMB))
}

// Pick searches pos for timeLimit and returns the best move found, or
// NullMove if pos has no legal moves.
func (e *Engine) Pick(pos *board.Position, timeLimit time.Duration) board.Move {
	e.SetPosition(pos)
	mv, _ := e.Search(TimeControl{Deadline: time.Now().Add(timeLimit)})
	return mv
}

// PickAndStats is Pick plus the Stats accumulated during the search,
// for front ends that want to report nodes/sec or depth reached.
func (e *Engine) PickAndStats(pos *board.Position, timeLimit time.Duration) (board.Move, int32, Stats) {
	e.SetPosition(pos)
	mv, score := e.Search(TimeControl{Deadline: time.Now().Add(timeLimit)})
	return mv, score, e.Stats
}

// PickFixedDepth searches pos to exactly depth plies, ignoring the
// clock; used by perft-adjacent correctness tooling and by tests that
// need deterministic node counts.
func (e *Engine) PickFixedDepth(pos *board.Position, depth int) (board.Move, int32) {
	e.SetPosition(pos)
	return e.Search(TimeControl{MaxDepth: depth})
}

// NodesSearched returns the node count from the most recent Search.
func (e *Engine) NodesSearched() uint64 { return e.Stats.Nodes }

// ClearHash resets the engine's transposition table, e.g. between
// unrelated games.
func (e *Engine) ClearHash() { e.tt.Clear() }
