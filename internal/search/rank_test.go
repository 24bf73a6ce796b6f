package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-recon/internal/models"
)

func catalogSnapshot(t *testing.T, dim int, products ...models.Product) *Snapshot {
	t.Helper()
	snap, err := NewSnapshot(products, dim)
	require.NoError(t, err)
	return snap
}

func TestRankTypoPlusLexical(t *testing.T) {
	snap := catalogSnapshot(t, 3,
		models.Product{Code: "LIV1001", Description: "1984 - Annotated Edition - George Orwell"},
		models.Product{Code: "LIV1002", Description: "Brave New World - Aldous Huxley"},
	)

	got := snap.Rank("orwel 1984", nil, DefaultPolicy())
	require.NotEmpty(t, got)
	assert.Equal(t, "LIV1001", got[0].Code)
	assert.Greater(t, got[0].Score, 0.0)
	assert.GreaterOrEqual(t, got[0].TextScore, 4)
	assert.False(t, got[0].SemanticOnly)
}

func TestRankExcludesZeroScoreProducts(t *testing.T) {
	snap := catalogSnapshot(t, 3,
		models.Product{Code: "LIV1001", Description: "1984 - George Orwell"},
		models.Product{Code: "LIV1002", Description: "Brave New World - Aldous Huxley"},
	)

	got := snap.Rank("orwell", nil, DefaultPolicy())
	require.Len(t, got, 1)
	assert.Equal(t, "LIV1001", got[0].Code)
}

func TestRankSemanticOnlyFallback(t *testing.T) {
	snap := catalogSnapshot(t, 3,
		models.Product{Code: "LIV1062", Description: "Malibu Rising - Taylor Jenkins Reid", Embedding: []float32{1, 0, 0}},
		models.Product{Code: "LIV1099", Description: "Dune - Frank Herbert", Embedding: []float32{0, 10, 0}},
	)

	// No token of the query appears in any description; only the embedding
	// close to LIV1062 carries evidence.
	got := snap.Rank("beach summer novel", []float32{0.9, 0, 0}, DefaultPolicy())
	require.Len(t, got, 1)
	assert.Equal(t, "LIV1062", got[0].Code)
	assert.True(t, got[0].SemanticOnly)
	assert.GreaterOrEqual(t, got[0].Similarity, 0.5)
	assert.Zero(t, got[0].TextScore)
}

func TestRankSimilarityBreaksTextTies(t *testing.T) {
	snap := catalogSnapshot(t, 2,
		models.Product{Code: "A", Description: "red widget", Embedding: []float32{5, 0}},
		models.Product{Code: "B", Description: "red gadget", Embedding: []float32{1, 0}},
	)

	got := snap.Rank("red", []float32{1, 0}, DefaultPolicy())
	require.Len(t, got, 2)
	// Equal text scores; B's embedding is nearer to the query.
	assert.Equal(t, got[0].TextScore, got[1].TextScore)
	assert.Equal(t, "B", got[0].Code)
}

func TestRankDeterministic(t *testing.T) {
	products := make([]models.Product, 0, 50)
	for i := 0; i < 50; i++ {
		products = append(products, models.Product{
			Code:        fmt.Sprintf("P%03d", i),
			Description: "the silent patient - alex michaelides",
		})
	}
	snap := catalogSnapshot(t, 3, products...)

	first := snap.Rank("silent patient", nil, DefaultPolicy())
	for run := 0; run < 10; run++ {
		assert.Equal(t, first, snap.Rank("silent patient", nil, DefaultPolicy()))
	}
	// All scores tie, so the cap keeps the first products by insertion order.
	require.Len(t, first, DefaultPolicy().TopK)
	assert.Equal(t, "P000", first[0].Code)
	assert.Equal(t, "P009", first[9].Code)
}

func TestRankEmptyInputs(t *testing.T) {
	snap := catalogSnapshot(t, 3,
		models.Product{Code: "LIV1001", Description: "1984 - George Orwell"},
	)

	assert.Empty(t, snap.Rank("", nil, DefaultPolicy()))
	assert.Empty(t, snap.Rank("   ", nil, DefaultPolicy()))

	empty := catalogSnapshot(t, 3)
	assert.Empty(t, empty.Rank("orwell", nil, DefaultPolicy()))
}

func TestRankMismatchedQueryEmbeddingIgnored(t *testing.T) {
	snap := catalogSnapshot(t, 3,
		models.Product{Code: "LIV1001", Description: "1984 - George Orwell", Embedding: []float32{1, 0, 0}},
	)

	// A malformed query embedding degrades to text-only scoring.
	got := snap.Rank("orwell", []float32{1, 0}, DefaultPolicy())
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Similarity)
	assert.Greater(t, got[0].TextScore, 0)
}

func TestEngineSnapshotSwap(t *testing.T) {
	engine := NewEngine(DefaultPolicy())
	assert.Nil(t, engine.Current())
	assert.Empty(t, engine.RankProducts("orwell", nil))

	old := catalogSnapshot(t, 3, models.Product{Code: "OLD", Description: "1984 - George Orwell"})
	engine.Swap(old)
	require.NotNil(t, engine.Current())
	assert.Equal(t, old.ID(), engine.Current().ID())

	replacement := catalogSnapshot(t, 3, models.Product{Code: "NEW", Description: "1984 - George Orwell"})
	engine.Swap(replacement)
	got := engine.RankProducts("orwell", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "NEW", got[0].Code)
}

func TestNewSnapshotRejectsBadEmbedding(t *testing.T) {
	_, err := NewSnapshot([]models.Product{
		{Code: "A", Description: "x", Embedding: []float32{1, 2}},
	}, 3)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
