// Package driver owns a live Game: the authoritative Position plus an
// optional background analysis Engine watching it. The analysis engine
// never touches the authoritative Position directly - it runs against
// its own cloned copy and reports over a channel - so a caller applying
// moves to the game is never blocked by, or racing with, a search in
// flight.
package driver

import (
	"fmt"
	"time"

	"github.com/corechess/corechess/board"
	"github.com/corechess/corechess/engine"
)

// AnalysisUpdate is one progress report from a background search.
type AnalysisUpdate struct {
	Move  board.Move
	Score int32
	Stats engine.Stats
	PV    []board.Move
}

// Game wires together the authoritative Position, a foreground Engine
// for synchronous "play a move now" queries, and an optional background
// Engine continuously analysing the current position.
type Game struct {
	pos *board.Position
	eng *engine.Engine

	bgEngine *engine.Engine
}

// NewGame starts a fresh game from the standard starting position with
// a foreground engine backed by a ttSizeMB-megabyte transposition table.
func NewGame(ttSizeMB int) *Game {
	return &Game{
		pos: board.Start(),
		eng: engine.New(ttSizeMB),
	}
}

// NewGameFromFEN is NewGame starting from an arbitrary FEN.
func NewGameFromFEN(fen string, ttSizeMB int) (*Game, error) {
	pos, err := board.LoadFromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	return &Game{pos: pos, eng: engine.New(ttSizeMB)}, nil
}

// Position returns the game's authoritative position. Callers must not
// mutate it directly; use Push/Pop.
func (g *Game) Position() *board.Position { return g.pos }

// LegalMoves returns every legal move from the current position.
func (g *Game) LegalMoves() board.MoveList {
	var ml board.MoveList
	board.GenerateMoves(g.pos, &ml)
	return ml
}

// Push applies mv to the authoritative position. mv must be legal; the
// caller is expected to have drawn it from LegalMoves.
func (g *Game) Push(mv board.Move) { g.pos.DoMove(mv) }

// Pop undoes the most recent Push.
func (g *Game) Pop() { g.pos.UndoMove() }

// BestMove runs a synchronous, foreground search of the current
// position for timeLimit and returns the move it picked.
func (g *Game) BestMove(timeLimit time.Duration) (board.Move, int32) {
	g.eng.SetPosition(g.pos)
	return g.eng.Search(engine.TimeControl{Deadline: time.Now().Add(timeLimit)})
}

// StartBackgroundAnalysis spawns a goroutine that repeatedly searches a
// clone of the position at the time StartBackgroundAnalysis was called,
// reporting each iteration's result on the returned channel. The
// background engine owns its own Position clone and its own
// TranspositionTable, so it never contends with the foreground engine
// or with further Push/Pop calls on g.
func (g *Game) StartBackgroundAnalysis(ttSizeMB int) <-chan AnalysisUpdate {
	fen := g.pos.ToFEN()
	clone, err := board.LoadFromFEN(fen)
	if err != nil {
		// g.pos is always a valid Position, so its own FEN always
		// reparses; this would indicate a ToFEN/LoadFromFEN bug.
		panic("driver: background analysis clone: " + err.Error())
	}

	updates := make(chan AnalysisUpdate, 1)

	bg := engine.NewEngine(engine.NewTranspositionTable(ttSizeMB))
	bg.SetPosition(clone)
	bg.Log = &channelLogger{updates: updates}
	g.bgEngine = bg

	go func() {
		defer close(updates)
		bg.Search(engine.TimeControl{MaxDepth: maxAnalysisDepth})
	}()

	return updates
}

// StopBackgroundAnalysis signals a running background search to stop at
// its next checkpoint. It is safe to call even if no analysis is
// running.
func (g *Game) StopBackgroundAnalysis() {
	if g.bgEngine != nil {
		g.bgEngine.Stop()
		g.bgEngine = nil
	}
}

const maxAnalysisDepth = 64

// channelLogger adapts engine.Logger's PrintPV callback onto the
// driver's AnalysisUpdate channel, so background analysis reports
// progress the same way the foreground PickAndStats path does.
type channelLogger struct {
	updates chan AnalysisUpdate
}

func (l *channelLogger) BeginSearch() {}
func (l *channelLogger) EndSearch()   {}

func (l *channelLogger) PrintPV(stats engine.Stats, score int32, pv []board.Move) {
	var mv board.Move
	if len(pv) > 0 {
		mv = pv[0]
	}
	update := AnalysisUpdate{Move: mv, Score: score, Stats: stats, PV: pv}
	select {
	case l.updates <- update:
	default:
		// The buffer is full: discard the older queued update and send
		// this one in its place rather than block the search goroutine,
		// so a slow consumer cannot stall analysis and reads the latest
		// result.
		select {
		case <-l.updates:
			l.updates <- update
		default:
		}
	}
}
