package search

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrDimensionMismatch is returned when an embedding does not match the
// dimension the index was created with. A failed Load leaves the previous
// contents of the index intact.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Entry pairs a product code with its embedding.
type Entry struct {
	Code   string
	Vector []float32
}

// Neighbor is one nearest-neighbor hit, ascending by Euclidean distance.
type Neighbor struct {
	Code     string
	Distance float64
}

// Index is an in-memory vector index over product embeddings. Lookups are a
// linear scan: catalog sizes are small (hundreds to low thousands), so the
// scan is the documented scalability ceiling rather than a hidden cost.
//
// The index is not synchronized; build it fully, then publish it inside an
// immutable Snapshot.
type Index struct {
	dim     int
	entries []Entry
}

// NewIndex creates an empty index for vectors of the given dimension.
func NewIndex(dim int) *Index {
	return &Index{dim: dim}
}

func (ix *Index) Dimension() int { return ix.dim }
func (ix *Index) Len() int       { return len(ix.entries) }

// Load replaces the index contents. Every entry is validated before anything
// is replaced, so a dimension mismatch leaves the old entries active.
func (ix *Index) Load(entries []Entry) error {
	for _, e := range entries {
		if len(e.Vector) != ix.dim {
			return fmt.Errorf("product %s: got %d dimensions, index wants %d: %w",
				e.Code, len(e.Vector), ix.dim, ErrDimensionMismatch)
		}
	}
	replacement := make([]Entry, len(entries))
	copy(replacement, entries)
	ix.entries = replacement
	return nil
}

// NearestTo returns the k entries closest to query by Euclidean distance,
// ascending, ties broken by catalog insertion order. An empty index yields an
// empty result. A query of the wrong dimension is an error.
func (ix *Index) NearestTo(query []float32, k int) ([]Neighbor, error) {
	if len(ix.entries) == 0 {
		return nil, nil
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("query: got %d dimensions, index wants %d: %w",
			len(query), ix.dim, ErrDimensionMismatch)
	}

	neighbors := make([]Neighbor, len(ix.entries))
	for i, e := range ix.entries {
		neighbors[i] = Neighbor{Code: e.Code, Distance: euclidean(query, e.Vector)}
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})
	if k > 0 && k < len(neighbors) {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// similarities maps every indexed code to its similarity with query, or nil
// when the query dimension disagrees with the index.
func (ix *Index) similarities(query []float32) map[string]float64 {
	if len(query) != ix.dim || len(ix.entries) == 0 {
		return nil
	}
	sims := make(map[string]float64, len(ix.entries))
	for _, e := range ix.entries {
		sims[e.Code] = Similarity(euclidean(query, e.Vector))
	}
	return sims
}

// Similarity converts a Euclidean distance into a score in (0, 1], strictly
// decreasing in distance.
func Similarity(distance float64) float64 {
	return 1 / (1 + distance)
}

func euclidean(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
