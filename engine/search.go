// search.go is the core of the package: iterative-deepening negamax
// with alpha-beta, principal variation search, null-move pruning,
// late-move reductions, futility pruning, quiescence search gated by
// SEE, and mate-distance pruning. Aspiration windows wrap the iterative
// loop, one negamax frame handles both pruning decisions and the move
// loop, and time control is checkpointed rather than polled every node.
package engine

import (
	"sync/atomic"
	"time"

	"github.com/corechess/corechess/board"
)

const (
	maxPly        = 128
	Mate          = 20000
	mateThreshold = Mate - maxPly
	infinite      = 30000

	checkDepthExtension  = 1
	nullMoveReduction     = 2
	nullMoveDepthLimit    = 1
	lmrDepthLimit         = 3
	lmrMinMoveIndex       = 3
	futilityDepthLimit    = 3
	futilityMargin        = 150
	checkpointNodes       = 10000
)

// Options configures how Engine.Search behaves beyond time/depth
// control.
type Options struct {
	// AnalyseMode keeps the iterative-deepening loop running after an
	// iteration reports a forced mate for the side to move, instead of
	// stopping there. Mate-distance pruning and draw detection inside the
	// tree are unaffected.
	AnalyseMode bool
}

// Stats reports search progress for logging and UCI-style info lines.
type Stats struct {
	Nodes     uint64
	CacheHits uint64
	Depth     int
	SelDepth  int
}

// Logger receives search progress notifications. The zero value of
// NopLogger discards everything, so a front end only wires a real
// logger in when it wants one.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats, score int32, pv []board.Move)
}

// NopLogger implements Logger by doing nothing.
type NopLogger struct{}

func (NopLogger) BeginSearch()                                 {}
func (NopLogger) EndSearch()                                   {}
func (NopLogger) PrintPV(Stats, int32, []board.Move)           {}

// Engine runs a single-threaded search against one Position at a time.
// It owns no goroutines; concurrent analysis is the driver package's
// concern.
type Engine struct {
	Options Options
	Log     Logger
	Stats   Stats

	pos *board.Position
	tt  *TranspositionTable

	killers killerTable
	history *historyTable

	pvTable  [maxPly][maxPly]board.Move
	pvLength [maxPly]int

	deadline         time.Time
	nodesAtLastCheck uint64
	stopped          atomic.Bool
}

// NewEngine builds an Engine sharing tt across searches (and, if the
// caller wants it, across multiple Engines analysing different lines of
// the same game).
func NewEngine(tt *TranspositionTable) *Engine {
	return &Engine{tt: tt, history: newHistoryTable(), Log: NopLogger{}}
}

// SetPosition points the engine at pos. The engine does not copy it: the
// caller owns pos and must not mutate it concurrently with a search.
func (e *Engine) SetPosition(pos *board.Position) { e.pos = pos }

// Stop requests that a running Search abort at its next checkpoint.
// Safe to call from another goroutine; Search's own timekeeping uses the
// same flag, so Stop just makes that check come back true immediately.
func (e *Engine) Stop() { e.stopped.Store(true) }

// TimeControl bounds a single search: either a wall-clock deadline, a
// fixed depth, or both (whichever triggers first stops the iterative
// loop).
type TimeControl struct {
	Deadline time.Time
	MaxDepth int
	MaxNodes uint64
}

func (tc TimeControl) depthLimit() int {
	if tc.MaxDepth > 0 && tc.MaxDepth < maxPly {
		return tc.MaxDepth
	}
	return maxPly - 1
}

// Search runs iterative deepening from depth 1 up to tc's limit,
// returning the best move found and its score. It always returns the
// result of the last fully-completed iteration; a time-out mid-iteration
// never corrupts the previous iteration's result.
func (e *Engine) Search(tc TimeControl) (board.Move, int32) {
	e.deadline = tc.Deadline
	e.stopped.Store(false)
	e.Stats = Stats{}
	e.tt.NewSearch()
	e.Log.BeginSearch()
	defer e.Log.EndSearch()

	var bestMove board.Move
	var bestScore int32
	alpha, beta := int32(-infinite), int32(infinite)
	window := int32(25)

	for depth := 1; depth <= tc.depthLimit(); depth++ {
		e.Stats.Depth = depth
		if depth >= 4 {
			alpha = bestScore - window
			beta = bestScore + window
		} else {
			alpha, beta = -infinite, infinite
		}

		var score int32
		var ok bool
		for {
			score, ok = e.negamax(depth, 0, alpha, beta, true)
			if !ok {
				break
			}
			if score <= alpha {
				alpha = maxInt32(-infinite, alpha-window)
				window *= 2
				continue
			}
			if score >= beta {
				beta = minInt32(infinite, beta+window)
				window *= 2
				continue
			}
			break
		}
		if !ok {
			break
		}

		bestScore = score
		if e.pvLength[0] > 0 {
			bestMove = e.pvTable[0][0]
		}
		pv := make([]board.Move, e.pvLength[0])
		copy(pv, e.pvTable[0][:e.pvLength[0]])
		e.Log.PrintPV(e.Stats, bestScore, pv)

		if !e.Options.AnalyseMode && bestScore >= mateThreshold {
			break
		}
		if tc.MaxNodes > 0 && e.Stats.Nodes >= tc.MaxNodes {
			break
		}
	}
	return bestMove, bestScore
}

// checkTime polls the deadline every checkpointNodes nodes; cheap
// enough not to bother the clock on every leaf.
func (e *Engine) checkTime() bool {
	if e.stopped.Load() {
		return true
	}
	if e.Stats.Nodes-e.nodesAtLastCheck < checkpointNodes {
		return false
	}
	e.nodesAtLastCheck = e.Stats.Nodes
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		e.stopped.Store(true)
	}
	return e.stopped.Load()
}

// negamax searches pos to depth, returning the score from the side to
// move's perspective. ok is false if the search was aborted by the
// clock; in that case the score is meaningless and callers must not use
// it.
func (e *Engine) negamax(depth, ply int, alpha, beta int32, isPV bool) (int32, bool) {
	e.pvLength[ply] = 0
	e.Stats.Nodes++
	if ply > e.Stats.SelDepth {
		e.Stats.SelDepth = ply
	}
	if e.checkTime() {
		return 0, false
	}

	pos := e.pos
	inCheck := pos.InCheck()

	if ply > 0 {
		if pos.IsRepeatTowardsThreeFold() || pos.HalfMoveClock() >= 100 || pos.InsufficientMaterial() {
			return 0, true
		}
		// Mate distance pruning: a shorter mate found elsewhere already
		// beats anything this node could report.
		alpha = maxInt32(alpha, -Mate+int32(ply))
		beta = minInt32(beta, Mate-int32(ply)-1)
		if alpha >= beta {
			return alpha, true
		}
	}

	if inCheck {
		depth += checkDepthExtension
	}
	if depth <= 0 {
		return e.quiescence(alpha, beta, ply)
	}

	key := pos.Zobrist()
	ttMove := board.NullMove
	if hMove, hScore, _, hDepth, hBound, ok := e.tt.Probe(key); ok {
		e.Stats.CacheHits++
		ttMove = hMove
		if hDepth >= depth && ply > 0 {
			score := scoreFromTT(hScore, ply)
			switch hBound {
			case BoundExact:
				return score, true
			case BoundLower:
				if score >= beta {
					return score, true
				}
			case BoundUpper:
				if score <= alpha {
					return score, true
				}
			}
		}
	}

	staticEval := board.Evaluate(pos)
	if pos.SideToMove() == board.Black {
		staticEval = -staticEval
	}

	// Null move pruning: skip our move entirely and see if the opponent
	// still can't catch up; only sound when not in check and with
	// non-pawn material left to avoid zugzwang positions.
	if !isPV && !inCheck && depth > nullMoveDepthLimit && staticEval >= beta && hasNonPawnMaterial(pos) {
		pos.DoNullMove()
		score, ok := e.negamax(depth-1-nullMoveReduction, ply+1, -beta, -beta+1, false)
		pos.UndoNullMove()
		if !ok {
			return 0, false
		}
		if -score >= beta {
			return beta, true
		}
	}

	futile := !isPV && !inCheck && depth <= futilityDepthLimit && staticEval+futilityMargin*int32(depth) <= alpha

	var ml board.MoveList
	board.GenerateMoves(pos, &ml)
	OrderMoves(pos, &ml, board.NullMove, ttMove, e.killers.get(ply), e.history)

	legalMoves := 0
	bestScore := int32(-infinite)
	bestMove := board.NullMove
	bound := BoundUpper
	var quietsBuf [board.MoveListCap]board.Move
	quietsTried := quietsBuf[:0]

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		isQuiet := m.IsQuiet()

		if futile && isQuiet && legalMoves > 0 && !pos.InCheck() {
			continue
		}

		pos.DoMove(m)
		legalMoves++

		reduction := 0
		if !inCheck && isQuiet && depth >= lmrDepthLimit && i >= lmrMinMoveIndex && !pos.InCheck() {
			reduction = 1
		}

		var score int32
		var ok bool
		if legalMoves == 1 {
			score, ok = e.negamax(depth-1, ply+1, -beta, -alpha, isPV)
			score = -score
		} else {
			score, ok = e.negamax(depth-1-reduction, ply+1, -alpha-1, -alpha, false)
			score = -score
			if ok && score > alpha && (reduction > 0 || isPV) {
				score, ok = e.negamax(depth-1, ply+1, -beta, -alpha, isPV)
				score = -score
			}
		}
		pos.UndoMove()

		if !ok {
			return 0, false
		}

		if isQuiet {
			quietsTried = append(quietsTried, m)
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				bound = BoundExact
				e.pvTable[ply][0] = m
				copy(e.pvTable[ply][1:], e.pvTable[ply+1][:e.pvLength[ply+1]])
				e.pvLength[ply] = e.pvLength[ply+1] + 1
			}
			if alpha >= beta {
				bound = BoundLower
				if isQuiet {
					e.killers.add(ply, m)
					e.history.add(pos.SideToMove(), m, depth, quietsTried)
				}
				break
			}
		}
	}

	if legalMoves == 0 {
		if inCheck {
			return -Mate + int32(ply), true
		}
		return 0, true
	}

	e.tt.Store(key, bestMove, scoreToTT(bestScore, ply), staticEval, depth, bound)
	return bestScore, true
}

// quiescence resolves tactical noise (captures, promotions, check
// evasions) past the nominal horizon, so the static eval is never
// trusted in the middle of a capture sequence.
func (e *Engine) quiescence(alpha, beta int32, ply int) (int32, bool) {
	e.Stats.Nodes++
	if ply > e.Stats.SelDepth {
		e.Stats.SelDepth = ply
	}
	if e.checkTime() {
		return 0, false
	}
	e.pvLength[ply] = 0
	if ply >= maxPly-1 {
		return board.Evaluate(e.pos) * sideSign(e.pos), true
	}

	pos := e.pos
	inCheck := pos.InCheck()

	var standPat int32
	if !inCheck {
		standPat = board.Evaluate(pos) * sideSign(pos)
		if standPat >= beta {
			return standPat, true
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var ml board.MoveList
	board.GenerateMoves(pos, &ml)
	OrderMoves(pos, &ml, board.NullMove, board.NullMove, [2]board.Move{}, e.history)

	legalMoves := 0
	bestScore := standPat
	if inCheck {
		bestScore = -infinite
	}

	for i := 0; i < ml.Len(); i++ {
		m := ml.At(i)
		if !inCheck && !m.IsCapture() && !m.IsPromotion() {
			continue
		}
		if !inCheck && m.IsCapture() && SEE(pos, m) < 0 {
			continue
		}

		pos.DoMove(m)
		legalMoves++
		score, ok := e.quiescence(-beta, -alpha, ply+1)
		pos.UndoMove()
		if !ok {
			return 0, false
		}
		score = -score

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				e.pvTable[ply][0] = m
				copy(e.pvTable[ply][1:], e.pvTable[ply+1][:e.pvLength[ply+1]])
				e.pvLength[ply] = e.pvLength[ply+1] + 1
			}
			if alpha >= beta {
				break
			}
		}
	}

	if inCheck && legalMoves == 0 {
		return -Mate + int32(ply), true
	}
	return bestScore, true
}

func sideSign(pos *board.Position) int32 {
	if pos.SideToMove() == board.Black {
		return -1
	}
	return 1
}

func hasNonPawnMaterial(pos *board.Position) bool {
	c := pos.SideToMove()
	return pos.PieceBB(board.Knight, c)|pos.PieceBB(board.Bishop, c)|
		pos.PieceBB(board.Rook, c)|pos.PieceBB(board.Queen, c) != 0
}

// scoreToTT/scoreFromTT adjust a mate score between "plies from this
// node" (what the TT should store, since a mate's distance from the
// root changes depending on which node probes it) and "plies from the
// root" (what the search actually compares).
func scoreToTT(score int32, ply int) int32 {
	if score >= mateThreshold {
		return score + int32(ply)
	}
	if score <= -mateThreshold {
		return score - int32(ply)
	}
	return score
}

func scoreFromTT(score int32, ply int) int32 {
	if score >= mateThreshold {
		return score - int32(ply)
	}
	if score <= -mateThreshold {
		return score + int32(ply)
	}
	return score
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
