package handlers

import (
	"strings"

	"invoice-recon/internal/dto"
	"invoice-recon/internal/search"
	"invoice-recon/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReconcileHandler struct {
	matchService     *service.MatchService
	reconcileService *service.ReconcileService
	logger           *zap.Logger
}

func NewReconcileHandler(
	matchService *service.MatchService,
	reconcileService *service.ReconcileService,
	logger *zap.Logger,
) *ReconcileHandler {
	return &ReconcileHandler{
		matchService:     matchService,
		reconcileService: reconcileService,
		logger:           logger,
	}
}

// Reconcile godoc
// @Summary Reconcile known product codes against the invoice history
// @Description Finds the historical invoice line most plausibly behind a return of one of the given products
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param request body dto.ReconcileRequest true "Reconcile request"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/reconcile [post]
func (h *ReconcileHandler) Reconcile(c *fiber.Ctx) error {
	var req dto.ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	candidates := service.CandidatesFromCodes(req.Codes)
	if len(candidates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one product code is required",
		})
	}

	result, err := h.reconcileService.Reconcile(c.Context(), candidates, req.Hints)
	if err != nil {
		h.logger.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Reconciliation failed",
		})
	}

	return c.JSON(toReconcileResponse(result))
}

// Resolve godoc
// @Summary Resolve a free-text return description end to end
// @Description Ranks catalog products by the description, then reconciles the top candidates against the invoice history
// @Tags reconciliation
// @Accept json
// @Produce json
// @Param request body dto.ResolveRequest true "Resolve request"
// @Success 200 {object} dto.ResolveResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/resolve [post]
func (h *ReconcileHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveRequest
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

	result, err := h.reconcileService.Reconcile(c.Context(), service.CandidatesFromMatches(matches), req.Hints)
	if err != nil {
		h.logger.Error("Resolution failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Resolution failed",
		})
	}

	return c.JSON(dto.ResolveResponse{
		Candidates:     toCandidateResponses(matches),
		Reconciliation: toReconcileResponse(result),
	})
}

func toReconcileResponse(result *search.ReconciliationResult) dto.ReconcileResponse {
	resp := dto.ReconcileResponse{
		Confident:    result.Confident,
		Alternatives: make([]dto.LineMatchResponse, 0, len(result.Alternatives)),
		PriceRelaxed: result.PriceRelaxed,
		GeoRelaxed:   result.GeoRelaxed,
		DateRelaxed:  result.DateRelaxed,
		DroppedHints: result.DroppedHints,
	}
	if result.Best != nil {
		best := toLineMatchResponse(*result.Best)
		resp.Best = &best
	}
	for _, alt := range result.Alternatives {
		resp.Alternatives = append(resp.Alternatives, toLineMatchResponse(alt))
	}
	return resp
}

func toLineMatchResponse(m search.LineMatch) dto.LineMatchResponse {
	return dto.LineMatchResponse{
		Line: dto.InvoiceLineResponse{
			InvoiceNumber: m.Line.InvoiceNumber,
			LineNumber:    m.Line.LineNumber,
			ItemCode:      m.Line.ItemCode,
			Description:   m.Line.Description,
			UnitPrice:     m.Line.UnitPrice,
			Quantity:      m.Line.Quantity,
			LineTotal:     m.Line.LineTotal,
			Taxes:         m.Line.Taxes,
		},
		Invoice: dto.InvoiceResponse{
			Number:       m.Invoice.Number,
			CustomerCode: m.Invoice.CustomerCode,
			CustomerName: m.Invoice.CustomerName,
			TotalValue:   m.Invoice.TotalValue,
			PrintDate:    m.Invoice.PrintDate.Format("2006-01-02"),
			City:         m.Invoice.City,
			State:        m.Invoice.State,
		},
		Confidence: m.Confidence,
		PriceDelta: m.PriceDelta,
		CodeMatch:  m.CodeMatch,
	}
}
