package handlers

import (
	"strconv"

	"invoice-recon/internal/dto"
	"invoice-recon/internal/repository"
	"invoice-recon/internal/search"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	invoiceRepo *repository.InvoiceRepository
	logger      *zap.Logger
}

func NewInvoiceHandler(invoiceRepo *repository.InvoiceRepository, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// SearchInvoices godoc
// @Summary Search invoice lines by ad-hoc criteria
// @Description Filters invoice lines by customer name fragment, state, item code and/or a price band
// @Tags invoices
// @Produce json
// @Param customer query string false "Customer name fragment (case-insensitive)"
// @Param state query string false "State code"
// @Param item_code query string false "Product code"
// @Param price query number false "Price center of a tolerance band"
// @Param margin query number false "Relative band width (default 0.05)"
// @Param limit query int false "Maximum lines returned"
// @Success 200 {array} dto.LineMatchResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/invoices/search [get]
func (h *InvoiceHandler) SearchInvoices(c *fiber.Ctx) error {
	crit := repository.InvoiceCriteria{
		Customer: c.Query("customer"),
		State:    c.Query("state"),
		ItemCode: c.Query("item_code"),
	}

	if raw := c.Query("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid price",
			})
		}
		crit.Price = price
	}
	if raw := c.Query("margin"); raw != "" {
		margin, err := strconv.ParseFloat(raw, 64)
		if err != nil || margin < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid margin",
			})
		}
		crit.Margin = margin
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid limit",
			})
		}
		crit.Limit = limit
	}

	if crit.Customer == "" && crit.State == "" && crit.ItemCode == "" && crit.Price == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one filter is required",
		})
	}

	records, err := h.invoiceRepo.SearchByCriteria(c.Context(), crit)
	if err != nil {
		h.logger.Error("Invoice search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Invoice search failed",
		})
	}

	return c.JSON(toInvoiceLineResponses(records))
}

func toInvoiceLineResponses(records []search.LineRecord) []dto.LineMatchResponse {
	out := make([]dto.LineMatchResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toLineMatchResponse(search.LineMatch{Line: rec.Line, Invoice: rec.Invoice}))
	}
	return out
}
