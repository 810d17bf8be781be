package physics

// BodyHandle identifies a body within the World that issued it. Handles are
// never reused, even after removal.
type BodyHandle uint64

// Pair is an ordered candidate pair with A < B.
type Pair struct {
	A, B BodyHandle
}

// BroadPhase finds candidate overlapping pairs. Implementations must emit
// pairs in a deterministic order for identical input; the World treats the
// result as the complete set of overlaps for the sub-step.
type BroadPhase interface {
	Pairs(entries []BroadPhaseEntry, out []Pair) []Pair
}

// BroadPhaseEntry is the read-only view of one body handed to a BroadPhase.
// Entries arrive sorted by Handle.
type BroadPhaseEntry struct {
	Handle BodyHandle
	Bounds BoundingBox
	Static bool
}

// BruteForce tests every pair. It is O(n^2) and intended for the small body
// counts a single scene carries; a grid or BVH can replace it through
// World.SetBroadPhase without changing collision response.
type BruteForce struct{}

func (BruteForce) Pairs(entries []BroadPhaseEntry, out []Pair) []Pair {
	for i := 0; i < len(entries); i++ {
		a := &entries[i]
		for j := i + 1; j < len(entries); j++ {
			b := &entries[j]
			if a.Static && b.Static {
				continue
			}
			if a.Bounds.Intersects(b.Bounds) {
				out = append(out, Pair{A: a.Handle, B: b.Handle})
			}
		}
	}
	return out
}
