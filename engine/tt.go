// tt.go implements the transposition table: a fixed-size array of
// 4-way clusters, each slot independently replaceable. The
// lock/key-verification idiom (store a truncated key alongside the
// entry to detect a different position hashing to the same slot) and
// the depth-preferred replacement policy are standard transposition
// table design, recorded in DESIGN.md as a deliberate 4-way-cluster
// deviation from a simpler 2-slot always-replace/depth-preferred split.
package engine

import "github.com/corechess/corechess/board"

// Bound classifies how an entry's score relates to the search window
// that produced it.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundExact
	BoundLower // failed high: score is a lower bound (beta cutoff).
	BoundUpper // failed low: score is an upper bound.
)

type ttEntry struct {
	key   uint32 // truncated Zobrist key, used to detect aliasing within a cluster.
	move  board.Move
	score int16
	eval  int16
	depth int8
	bound Bound
	age   uint8
}

const clusterSize = 4

type cluster struct {
	entries [clusterSize]ttEntry
}

// TranspositionTable is a fixed-size, power-of-two-sized array of
// 4-way clusters shared across an entire search.
type TranspositionTable struct {
	clusters []cluster
	mask     uint64
	age      uint8
}

// NewTranspositionTable allocates a table sized to approximately
// sizeMB megabytes, rounded down to a power of two number of clusters.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	if sizeMB < 1 {
		sizeMB = 1
	}
	bytesPerCluster := clusterByteSize()
	count := (sizeMB * 1024 * 1024) / bytesPerCluster
	n := 1
	for n*2 <= count {
		n *= 2
	}
	if n < 1 {
		n = 1
	}
	return &TranspositionTable{clusters: make([]cluster, n), mask: uint64(n - 1)}
}

// clusterByteSize is a rough sizing heuristic (a cluster is 4 entries of
// about 16 bytes each) rather than a call to unsafe.Sizeof, since the
// exact padded size isn't worth depending on for a megabyte-granularity
// allocation decision.
func clusterByteSize() int { return clusterSize * 16 }

// NewSearch bumps the table's generation counter, used to prefer
// entries from the current search over stale ones at equal depth.
func (tt *TranspositionTable) NewSearch() { tt.age++ }

// Clear zeroes every entry.
func (tt *TranspositionTable) Clear() {
	for i := range tt.clusters {
		tt.clusters[i] = cluster{}
	}
}

func (tt *TranspositionTable) index(key uint64) uint64 { return key & tt.mask }

// Probe looks up key and returns the stored entry and whether it was
// found with a matching verification key.
func (tt *TranspositionTable) Probe(key uint64) (move board.Move, score int32, eval int32, depth int, bound Bound, ok bool) {
	cl := &tt.clusters[tt.index(key)]
	verify := uint32(key >> 32)
	for i := range cl.entries {
		e := &cl.entries[i]
		if e.bound != BoundNone && e.key == verify {
			return e.move, int32(e.score), int32(e.eval), int(e.depth), e.bound, true
		}
	}
	return board.NullMove, 0, 0, 0, BoundNone, false
}

// Store writes an entry for key. A slot already holding this key is only
// overwritten when depth is at least as deep as what's stored there;
// otherwise the shallowest/stalest slot in the cluster is replaced.
func (tt *TranspositionTable) Store(key uint64, move board.Move, score, eval int32, depth int, bound Bound) {
	cl := &tt.clusters[tt.index(key)]
	verify := uint32(key >> 32)

	worst := 0
	worstScore := 1 << 30
	for i := range cl.entries {
		e := &cl.entries[i]
		if e.bound == BoundNone {
			worst = i
			break
		}
		if e.key == verify {
			if depth < int(e.depth) {
				return
			}
			worst = i
			break
		}
		replaceScore := int(e.depth)
		if e.age != tt.age {
			replaceScore -= 64
		}
		if replaceScore < worstScore {
			worstScore = replaceScore
			worst = i
		}
	}

	e := &cl.entries[worst]
	if move == board.NullMove && e.key == verify {
		move = e.move // keep the previous best move if this store doesn't have one.
	}
	*e = ttEntry{
		key:   verify,
		move:  move,
		score: int16(clampInt32(score, -32000, 32000)),
		eval:  int16(clampInt32(eval, -32000, 32000)),
		depth: int8(clampInt32(int32(depth), -1, 127)),
		bound: bound,
		age:   tt.age,
	}
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
