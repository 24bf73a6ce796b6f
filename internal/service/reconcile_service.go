package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"invoice-recon/internal/dto"
	"invoice-recon/internal/repository"
	"invoice-recon/internal/search"

	"go.uber.org/zap"
)

const hintDateLayout = "2006-01-02"

// ReconcileService fetches the invoice history for a candidate shortlist and
// runs the pure correlator over it.
type ReconcileService struct {
	invoiceRepo *repository.InvoiceRepository
	engine      *search.Engine
	logger      *zap.Logger
}

func NewReconcileService(invoiceRepo *repository.InvoiceRepository, engine *search.Engine, logger *zap.Logger) *ReconcileService {
	return &ReconcileService{
		invoiceRepo: invoiceRepo,
		engine:      engine,
		logger:      logger,
	}
}

// Reconcile finds the historical invoice line most plausibly behind a return
// of one of the candidate products. Explicit codes carry full product
// evidence; candidates coming from ranking keep their composite scores.
func (s *ReconcileService) Reconcile(ctx context.Context, candidates []search.Candidate, hints dto.HintsRequest) (*search.ReconciliationResult, error) {
	if len(candidates) == 0 {
		return &search.ReconciliationResult{}, nil
	}

	codes := make([]string, 0, len(candidates))
	for _, c := range candidates {
		codes = append(codes, c.Code)
	}

	policy := s.engine.Policy()
	records, err := s.invoiceRepo.LinesByItemCodes(ctx, codes, policy.MaxLinesPerCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice lines: %w", err)
	}

	parsed := s.parseHints(hints)
	result := search.Correlate(records, candidates, parsed, policy)

	s.logger.Info("Reconciliation completed",
		zap.Int("codes", len(codes)),
		zap.Int("lines", len(records)),
		zap.Bool("confident", result.Confident),
		zap.Bool("price_relaxed", result.PriceRelaxed),
		zap.Strings("dropped_hints", result.DroppedHints),
	)
	return &result, nil
}

// CandidatesFromCodes wraps explicit product codes for reconciliation. A code
// the caller states outright is full evidence on its own.
func CandidatesFromCodes(codes []string) []search.Candidate {
	candidates := make([]search.Candidate, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		candidates = append(candidates, search.Candidate{Code: code, Score: 1})
	}
	return candidates
}

// CandidatesFromMatches carries the ranking evidence into reconciliation.
func CandidatesFromMatches(matches []search.MatchCandidate) []search.Candidate {
	candidates := make([]search.Candidate, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, search.Candidate{Code: m.Code, Score: m.Score})
	}
	return candidates
}

// parseHints converts the wire hints into engine hints. Unparsable values
// are dropped and recorded so the correlator can lower confidence; a bad
// hint never fails the whole query.
func (s *ReconcileService) parseHints(req dto.HintsRequest) search.Hints {
	hints := search.Hints{
		CustomerCode: strings.TrimSpace(req.CustomerCode),
		CustomerName: strings.TrimSpace(req.CustomerName),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
	}

	if raw := strings.TrimSpace(req.Amount); raw != "" {
		if amount, err := parseAmount(raw); err == nil {
			hints.Amount = &amount
		} else {
			s.logger.Warn("Ignoring unparsable amount hint", zap.String("amount", raw))
			hints.Dropped = append(hints.Dropped, "amount")
		}
	}
	if raw := strings.TrimSpace(req.DateFrom); raw != "" {
		if ts, err := time.Parse(hintDateLayout, raw); err == nil {
			hints.DateFrom = ts
		} else {
			s.logger.Warn("Ignoring unparsable date_from hint", zap.String("date_from", raw))
			hints.Dropped = append(hints.Dropped, "date_from")
		}
	}
	if raw := strings.TrimSpace(req.DateTo); raw != "" {
		if ts, err := time.Parse(hintDateLayout, raw); err == nil {
			hints.DateTo = ts
		} else {
			s.logger.Warn("Ignoring unparsable date_to hint", zap.String("date_to", raw))
			hints.Dropped = append(hints.Dropped, "date_to")
		}
	}

	return hints
}

// parseAmount accepts plain decimals plus lightly formatted money strings
// such as "R$ 131,24" or "$1,131.24".
func parseAmount(raw string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, raw)

	// "131,24" means a decimal comma; "1,131.24" means thousand separators.
	if strings.Contains(cleaned, ",") && !strings.Contains(cleaned, ".") {
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	return strconv.ParseFloat(cleaned, 64)
}
