// Command corebench is a perft/bench/search CLI over the board and
// engine packages: a flag.FlagSet per subcommand, dispatched on
// argv[1], unified into a single binary instead of three.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/corechess/corechess/board"
	"github.com/corechess/corechess/engine"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "perft":
		err = runPerft(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "bench":
		err = runBench(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: corebench <perft|search|bench> [flags]")
}

func runPerft(args []string) error {
	fs := flag.NewFlagSet("perft", flag.ExitOnError)
	fen := fs.String("fen", board.FENStartPos, "starting position")
	depth := fs.Int("depth", 5, "maximum perft depth")
	fs.Parse(args)

	pos, err := loadPosition(*fen)
	if err != nil {
		return err
	}
	for d := 1; d <= *depth; d++ {
		start := time.Now()
		counts := board.Perft(pos, d)
		elapsed := time.Since(start)
		fmt.Printf("depth %2d: nodes=%d captures=%d ep=%d castles=%d promotions=%d checks=%d (%v)\n",
			d, counts.Nodes, counts.Captures, counts.EnPassant, counts.Castles, counts.Promotions, counts.Checks, elapsed)
	}
	return nil
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	fen := fs.String("fen", board.FENStartPos, "position to search")
	moveTimeMS := fs.Int("movetime", 1000, "search time in milliseconds")
	hashMB := fs.Int("hash", 64, "transposition table size in megabytes")
	verbose := fs.Bool("verbose", false, "log every iteration")
	fs.Parse(args)

	pos, err := loadPosition(*fen)
	if err != nil {
		return err
	}
	e := engine.New(*hashMB)
	if *verbose {
		e.Log = engine.NewGoLogger("corebench")
	}
	mv, score, stats := e.PickAndStats(pos, time.Duration(*moveTimeMS)*time.Millisecond)
	fmt.Printf("bestmove %s score %d nodes %d depth %d\n", mv, score, stats.Nodes, stats.Depth)
	return nil
}

func runBench(args []string) error {
	fs := flag.NewFlagSet("bench", flag.ExitOnError)
	depth := fs.Int("depth", 8, "fixed search depth per position")
	fs.Parse(args)

	var totalNodes uint64
	start := time.Now()
	for _, fen := range benchSuite {
		pos, err := board.LoadFromFEN(fen)
		if err != nil {
			return err
		}
		e := engine.New(64)
		e.PickFixedDepth(pos, *depth)
		totalNodes += e.NodesSearched()
	}
	elapsed := time.Since(start)
	fmt.Printf("total nodes %d in %v (%.0f nodes/sec)\n", totalNodes, elapsed, float64(totalNodes)/elapsed.Seconds())
	return nil
}

func loadPosition(fen string) (*board.Position, error) {
	pos, err := board.LoadFromFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("corebench: %w", err)
	}
	return pos, nil
}

// benchSuite is a small fixed set of positions used by `bench` for a
// repeatable nodes/sec measurement.
var benchSuite = []string{
	board.FENStartPos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 1",
}
