package handlers

import (
	"strings"

	"invoice-recon/internal/dto"
	"invoice-recon/internal/search"
	"invoice-recon/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SearchHandler struct {
	matchService *service.MatchService
	logger       *zap.Logger
}

func NewSearchHandler(matchService *service.MatchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		matchService: matchService,
		logger:       logger,
	}
}

// SearchProducts godoc
// @Summary Rank catalog products against a free-text description
// @Description Scores every product by lexical, phonetic, edit-distance and optional vector signals and returns the top candidates
// @Tags products
// @Accept json
// @Produce json
// @Param request body dto.SearchRequest true "Search request"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/products/search [post]
func (h *SearchHandler) SearchProducts(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Description is required",
		})
	}

	matches := h.matchService.RankProducts(c.Context(), req.Description, req.Semantic)

	return c.JSON(dto.SearchResponse{
		Query:      req.Description,
		Candidates: toCandidateResponses(matches),
	})
}

func toCandidateResponses(matches []search.MatchCandidate) []dto.CandidateResponse {
	out := make([]dto.CandidateResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.CandidateResponse{
			Code:         m.Code,
			Description:  m.Description,
			Score:        m.Score,
			TextScore:    m.TextScore,
			Similarity:   m.Similarity,
			SemanticOnly: m.SemanticOnly,
		})
	}
	return out
}
