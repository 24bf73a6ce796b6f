package service

import (
	"context"
	"errors"
	"fmt"

	"invoice-recon/pkg/config"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Embedder turns free text into a fixed-dimension vector. The search engine
// treats the result as an opaque numeric vector.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// EmbeddingService implements Embedder on the Google Gemini embedding API.
type EmbeddingService struct {
	client *genai.Client
	config *config.EmbeddingConfig
	logger *zap.Logger
}

func NewEmbeddingService(ctx context.Context, cfg *config.EmbeddingConfig, logger *zap.Logger) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("embedding API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}

	return &EmbeddingService{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

// EmbedQuery embeds a search query (similarity task type).
func (s *EmbeddingService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return s.embed(ctx, text, "SEMANTIC_SIMILARITY")
}

// EmbedDocument embeds a catalog description (retrieval task type), matching
// how the batch job vectorizes products.
func (s *EmbeddingService) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return s.embed(ctx, text, "RETRIEVAL_DOCUMENT")
}

func (s *EmbeddingService) embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	result, err := s.client.Models.EmbedContent(ctx, s.config.Model,
		genai.Text(text),
		&genai.EmbedContentConfig{
			TaskType:             taskType,
			OutputDimensionality: genai.Ptr(int32(s.config.Dimension)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, errors.New("embedding response is empty")
	}

	values := result.Embeddings[0].Values
	if len(values) != s.config.Dimension {
		return nil, fmt.Errorf("embedding has %d dimensions, expected %d", len(values), s.config.Dimension)
	}
	return values, nil
}

func (s *EmbeddingService) Dimension() int {
	return s.config.Dimension
}
