package board

import "testing"

// Perft conformance suite, the standard four positions used to validate
// a move generator (castling, en passant, promotion, pins, discovered
// checks). Deeper, much more expensive depths are commented out rather
// than deleted, documenting the full expected counts without paying for
// them on every run.
func TestPerftInitialPosition(t *testing.T) {
	pos := Start()
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		// {5, 4865609},
		// {6, 119060324},
	}
	for _, c := range cases {
		got := Perft(pos, c.depth).Nodes
		if got != c.nodes {
			t.Errorf("perft(start, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftKiwipete(t *testing.T) {
	pos, err := LoadFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		// {4, 4085603},
	}
	for _, c := range cases {
		got := Perft(pos, c.depth).Nodes
		if got != c.nodes {
			t.Errorf("perft(kiwipete, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftPosition5(t *testing.T) {
	// Position 5 from the common perft test suite: exercises capture-
	// promotions including underpromotion, castling and checks. No en
	// passant capture is reachable within these depths.
	pos, err := LoadFromFEN("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 44},
		{2, 1486},
		{3, 62379},
	}
	for _, c := range cases {
		got := Perft(pos, c.depth).Nodes
		if got != c.nodes {
			t.Errorf("perft(pos5, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}

func TestPerftDuplain(t *testing.T) {
	// The classic "Position 3" used to stress-test en passant and check
	// evasion: few pieces, long rook/king lines.
	pos, err := LoadFromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
		// {5, 674624},
	}
	for _, c := range cases {
		got := Perft(pos, c.depth).Nodes
		if got != c.nodes {
			t.Errorf("perft(duplain, %d) = %d, want %d", c.depth, got, c.nodes)
		}
	}
}
