package board

import "testing"

func TestLoadFromFENStartPos(t *testing.T) {
	pos, err := LoadFromFEN(FENStartPos)
	if err != nil {
		t.Fatalf("LoadFromFEN(start): %v", err)
	}
	if pos.SideToMove() != White {
		t.Errorf("side to move = %v, want White", pos.SideToMove())
	}
	if pos.CastleRights() != AllCastleRights {
		t.Errorf("castle rights = %v, want all", pos.CastleRights())
	}
	if pos.PieceBB(Pawn, White).Count() != 8 || pos.PieceBB(Pawn, Black).Count() != 8 {
		t.Errorf("expected 8 pawns per side")
	}
	if pos.KingSquare(White) != SquareE1 || pos.KingSquare(Black) != SquareE8 {
		t.Errorf("king squares wrong: white=%v black=%v", pos.KingSquare(White), pos.KingSquare(Black))
	}
}

func TestToFENRoundTrip(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		pos, err := LoadFromFEN(fen)
		if err != nil {
			t.Fatalf("LoadFromFEN(%q): %v", fen, err)
		}
		got := pos.ToFEN()
		if got != fen {
			t.Errorf("round trip mismatch:\n got: %s\nwant: %s", got, fen)
		}
	}
}

func TestLoadFromFENRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"not a fen at all",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - many 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XYkq - 0 1",
	}
	for _, fen := range cases {
		if _, err := LoadFromFEN(fen); err == nil {
			t.Errorf("LoadFromFEN(%q): expected error, got nil", fen)
		}
	}
}
