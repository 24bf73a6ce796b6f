package search

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"invoice-recon/internal/models"
)

// Snapshot is an immutable view of the product catalog plus its vector index.
// Products keep their catalog insertion order, which is the deterministic
// tie-break for every ranking in this package.
type Snapshot struct {
	id       uuid.UUID
	loadedAt time.Time
	products []models.Product
	terms    []descriptionTerms
	index    *Index
}

// NewSnapshot builds a snapshot from an ordered catalog. Embeddings are
// indexed as encountered; a product whose embedding disagrees with dim makes
// the whole build fail with ErrDimensionMismatch.
func NewSnapshot(products []models.Product, dim int) (*Snapshot, error) {
	index := NewIndex(dim)
	entries := make([]Entry, 0, len(products))
	for _, p := range products {
		if p.HasEmbedding() {
			entries = append(entries, Entry{Code: p.Code, Vector: p.Embedding})
		}
	}
	if err := index.Load(entries); err != nil {
		return nil, err
	}

	terms := make([]descriptionTerms, len(products))
	for i, p := range products {
		terms[i] = prepareDescription(p.Description)
	}

	return &Snapshot{
		id:       uuid.New(),
		loadedAt: time.Now(),
		products: products,
		terms:    terms,
		index:    index,
	}, nil
}

func (s *Snapshot) ID() uuid.UUID      { return s.id }
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
func (s *Snapshot) Len() int           { return len(s.products) }
func (s *Snapshot) Index() *Index      { return s.index }

// Engine serves queries against the current snapshot. Reloading swaps the
// snapshot pointer atomically, so in-flight queries finish against the old
// catalog and new queries see the new one; nothing is mutated in place.
type Engine struct {
	policy Policy
	snap   atomic.Pointer[Snapshot]
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

func (e *Engine) Policy() Policy { return e.policy }

// Swap publishes a new snapshot.
func (e *Engine) Swap(s *Snapshot) {
	e.snap.Store(s)
}

// Current returns the active snapshot, or nil before the first load.
func (e *Engine) Current() *Snapshot {
	return e.snap.Load()
}

// RankProducts ranks the catalog against a free-text query and an optional
// query embedding. Before the first snapshot load it returns no candidates.
func (e *Engine) RankProducts(query string, queryEmbedding []float32) []MatchCandidate {
	snap := e.Current()
	if snap == nil {
		return nil
	}
	return snap.Rank(query, queryEmbedding, e.policy)
}
