package board

import "errors"

// The core's error taxonomy is deliberately small: a single sentinel for
// malformed FEN input, one for a bad square string, and a pair of
// debug-only assertions that a correctly driven search never triggers in
// a release build.
var (
	// ErrInvalidFEN is returned by LoadFromFEN when fen cannot be parsed.
	// The load fails atomically: an existing Position is left untouched.
	ErrInvalidFEN = errors.New("board: invalid FEN")

	// ErrInvalidSquare is returned when a square string is malformed.
	ErrInvalidSquare = errors.New("board: invalid square")
)

// Debug enables expensive consistency assertions (board/bitboard/piece
// list agreement, undo stack underflow). It is off by default; a front end
// or test binary may flip it on with board.Debug = true. Search hot
// paths cannot afford to return an error per node, so these assertions
// panic rather than return an error.
var Debug = false
