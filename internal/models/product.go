package models

import (
	"time"
)

// EmbeddingDimension is the fixed length of product embeddings produced by
// the external embedding model.
const EmbeddingDimension = 768

type Product struct {
	ID          int64     `db:"id"`
	Code        string    `db:"code"`
	Description string    `db:"description"`
	Embedding   []float32 `db:"embedding"` // nil when not yet vectorized
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// HasEmbedding reports whether the product was vectorized by the batch job.
func (p *Product) HasEmbedding() bool {
	return len(p.Embedding) > 0
}
