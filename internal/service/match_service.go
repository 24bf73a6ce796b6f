package service

import (
	"context"
	"fmt"

	"invoice-recon/internal/repository"
	"invoice-recon/internal/search"
	"invoice-recon/pkg/config"

	"go.uber.org/zap"
)

// MatchService owns the in-memory search engine and keeps it fed with
// catalog snapshots. Queries never touch the database.
type MatchService struct {
	productRepo *repository.ProductRepository
	embedder    Embedder // nil when no provider is configured
	engine      *search.Engine
	dimension   int
	logger      *zap.Logger
}

func NewMatchService(
	productRepo *repository.ProductRepository,
	embedder Embedder,
	cfg *config.Config,
	logger *zap.Logger,
) *MatchService {
	policy := search.Policy{
		LexicalWeight:   cfg.Search.LexicalWeight,
		PhoneticWeight:  cfg.Search.PhoneticWeight,
		EditWeight:      cfg.Search.EditWeight,
		MaxEditDistance: cfg.Search.MaxEditDistance,
		SimilarityFloor: cfg.Search.SimilarityFloor,
		TopK:            cfg.Search.TopK,
		PriceTolerance:  cfg.Search.PriceTolerance,
		PriceEpsilon:    cfg.Search.PriceEpsilon,
		ConfidenceFloor: cfg.Search.ConfidenceFloor,
		MaxLinesPerCode: cfg.Search.MaxLinesPerCode,
		MaxAlternatives: cfg.Search.MaxAlternatives,
		Workers:         cfg.Search.Workers,
	}

	return &MatchService{
		productRepo: productRepo,
		embedder:    embedder,
		engine:      search.NewEngine(policy),
		dimension:   cfg.Embedding.Dimension,
		logger:      logger,
	}
}

func (s *MatchService) Engine() *search.Engine {
	return s.engine
}

// ReloadSnapshot pulls the catalog from storage, builds a fresh snapshot and
// swaps it in atomically. In-flight queries keep the old snapshot. A
// dimension mismatch fails the reload and the previous snapshot stays active.
func (s *MatchService) ReloadSnapshot(ctx context.Context) (*search.Snapshot, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	snap, err := search.NewSnapshot(products, s.dimension)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	s.engine.Swap(snap)

	s.logger.Info("Catalog snapshot loaded",
		zap.String("snapshot_id", snap.ID().String()),
		zap.Int("products", snap.Len()),
		zap.Int("vectorized", snap.Index().Len()),
	)
	return snap, nil
}

// RankProducts ranks the catalog against free text. When semantic scoring is
// requested and an embedding provider is configured, the query is embedded
// first; an embedding failure degrades to text-only scoring instead of
// failing the query.
func (s *MatchService) RankProducts(ctx context.Context, description string, semantic bool) []search.MatchCandidate {
	var embedding []float32
	if semantic && s.embedder != nil {
		vec, err := s.embedder.EmbedQuery(ctx, description)
		if err != nil {
			s.logger.Warn("Query embedding failed, using text signals only",
				zap.String("query", description),
				zap.Error(err),
			)
		} else {
			embedding = vec
		}
	}

	return s.engine.RankProducts(description, embedding)
}
