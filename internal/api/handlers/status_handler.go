package handlers

import (
	"time"

	"invoice-recon/internal/dto"
	"invoice-recon/internal/repository"
	"invoice-recon/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StatusHandler struct {
	matchService *service.MatchService
	productRepo  *repository.ProductRepository
	invoiceRepo  *repository.InvoiceRepository
	logger       *zap.Logger
}

func NewStatusHandler(
	matchService *service.MatchService,
	productRepo *repository.ProductRepository,
	invoiceRepo *repository.InvoiceRepository,
	logger *zap.Logger,
) *StatusHandler {
	return &StatusHandler{
		matchService: matchService,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		logger:       logger,
	}
}

// Status godoc
// @Summary Service health and catalog snapshot info
// @Tags status
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router /status [get]
func (h *StatusHandler) Status(c *fiber.Ctx) error {
	resp := dto.StatusResponse{Status: "ok"}

	if products, err := h.productRepo.Count(c.Context()); err == nil {
		resp.Products = products
	} else {
		h.logger.Warn("Product count failed", zap.Error(err))
		resp.Status = "degraded"
	}

	if invoices, lines, err := h.invoiceRepo.Counts(c.Context()); err == nil {
		resp.Invoices = invoices
		resp.InvoiceLines = lines
	} else {
		h.logger.Warn("Invoice counts failed", zap.Error(err))
		resp.Status = "degraded"
	}

	if snap := h.matchService.Engine().Current(); snap != nil {
		resp.SnapshotID = snap.ID().String()
		resp.SnapshotProducts = snap.Len()
		resp.SnapshotLoadedAt = snap.LoadedAt().Format(time.RFC3339)
	}

	return c.JSON(resp)
}

// ReloadCatalog godoc
// @Summary Rebuild the in-memory catalog snapshot from storage
// @Tags status
// @Produce json
// @Success 200 {object} dto.ReloadResponse
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/catalog/reload [post]
func (h *StatusHandler) ReloadCatalog(c *fiber.Ctx) error {
	snap, err := h.matchService.ReloadSnapshot(c.Context())
	if err != nil {
		h.logger.Error("Catalog reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Catalog reload failed",
		})
	}

	return c.JSON(dto.ReloadResponse{
		SnapshotID: snap.ID().String(),
		Products:   snap.Len(),
		Vectorized: snap.Index().Len(),
	})
}
