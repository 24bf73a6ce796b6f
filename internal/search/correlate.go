package search

import (
	"math"
	"sort"
	"strings"
	"time"

	"invoice-recon/internal/models"
)

// Candidate identifies one product the correlator should consider, ordered
// most confident first. Score carries the composite evidence from ranking;
// callers reconciling explicit, already-resolved codes pass Score 1.
type Candidate struct {
	Code  string
	Score float64
}

// Hints are the optional transaction attributes that narrow a
// reconciliation. Zero values mean "not provided". Dropped lists hints the
// caller received but could not parse; each one lowers the final confidence
// instead of failing the query.
type Hints struct {
	CustomerCode string
	CustomerName string
	City         string
	State        string
	Amount       *float64
	DateFrom     time.Time
	DateTo       time.Time
	Dropped      []string
}

// LineRecord pairs an invoice line with its owning invoice header.
type LineRecord struct {
	Line    models.InvoiceLine
	Invoice models.Invoice
}

// LineMatch is one scored reconciliation candidate.
type LineMatch struct {
	Line       models.InvoiceLine `json:"line"`
	Invoice    models.Invoice     `json:"invoice"`
	Confidence float64            `json:"confidence"`
	// PriceDelta is the absolute distance between the hinted amount and the
	// closer of unit price and line total; zero without an amount hint.
	PriceDelta float64 `json:"price_delta"`
	NameScore  int     `json:"name_score"`
	CodeMatch  bool    `json:"code_match"`

	rank  int
	order int
}

// ReconciliationResult is the terminal outcome of a reconciliation. Best is
// set only when the engine is confident; in every other case the caller gets
// the ranked alternatives so it can follow up instead of guessing.
type ReconciliationResult struct {
	Best         *LineMatch  `json:"best,omitempty"`
	Confident    bool        `json:"confident"`
	PriceRelaxed bool        `json:"price_relaxed"`
	GeoRelaxed   bool        `json:"geo_relaxed"`
	DateRelaxed  bool        `json:"date_relaxed"`
	DroppedHints []string    `json:"dropped_hints,omitempty"`
	Alternatives []LineMatch `json:"alternatives"`
}

// Correlate filters and ranks invoice lines against a shortlist of candidate
// product codes plus transaction hints.
//
// Filters only ever narrow the working set: when the city/state or date
// filter would eliminate every line it is lifted again and the result is
// flagged instead of returned empty. Lines outside the price tolerance band
// are excluded unless no line is inside it; then the nearest line by price
// delta survives with the price-relaxed flag set, which also forfeits
// confidence.
func Correlate(records []LineRecord, candidates []Candidate, hints Hints, p Policy) ReconciliationResult {
	result := ReconciliationResult{DroppedHints: hints.Dropped}

	rankOf := make(map[string]int, len(candidates))
	scoreOf := make(map[string]float64, len(candidates))
	for i, c := range candidates {
		if _, seen := rankOf[c.Code]; !seen {
			rankOf[c.Code] = i
			scoreOf[c.Code] = c.Score
		}
	}

	// Candidate-code filter with a per-code scan cap.
	perCode := make(map[string]int, len(candidates))
	working := make([]LineRecord, 0, len(records))
	for _, rec := range records {
		if _, ok := rankOf[rec.Line.ItemCode]; !ok {
			continue
		}
		if p.MaxLinesPerCode > 0 && perCode[rec.Line.ItemCode] >= p.MaxLinesPerCode {
			continue
		}
		perCode[rec.Line.ItemCode]++
		working = append(working, rec)
	}
	if len(working) == 0 {
		return result
	}

	working, result.GeoRelaxed = narrow(working, func(rec LineRecord) bool {
		if hints.City != "" && !strings.EqualFold(rec.Invoice.City, hints.City) {
			return false
		}
		if hints.State != "" && !strings.EqualFold(rec.Invoice.State, hints.State) {
			return false
		}
		return true
	})
	working, result.DateRelaxed = narrow(working, func(rec LineRecord) bool {
		if !hints.DateFrom.IsZero() && rec.Invoice.PrintDate.Before(hints.DateFrom) {
			return false
		}
		if !hints.DateTo.IsZero() && rec.Invoice.PrintDate.After(hints.DateTo) {
			return false
		}
		return true
	})

	tolerance := 0.0
	if hints.Amount != nil {
		tolerance = math.Max(p.PriceTolerance*math.Abs(*hints.Amount), p.PriceEpsilon)
		inBand := working[:0:0]
		for _, rec := range working {
			if priceDelta(rec.Line, *hints.Amount) <= tolerance {
				inBand = append(inBand, rec)
			}
		}
		if len(inBand) > 0 {
			working = inBand
		} else {
			// Nothing inside the band: keep only the nearest line by delta.
			nearest := working[0]
			for _, rec := range working[1:] {
				if priceDelta(rec.Line, *hints.Amount) < priceDelta(nearest.Line, *hints.Amount) {
					nearest = rec
				}
			}
			working = []LineRecord{nearest}
			result.PriceRelaxed = true
		}
	}

	var nameTokens []string
	var nameTerms map[string]descriptionTerms
	if hints.CustomerName != "" {
		nameTokens = Tokenize(hints.CustomerName)
		nameTerms = make(map[string]descriptionTerms)
	}

	matches := make([]LineMatch, 0, len(working))
	for i, rec := range working {
		m := LineMatch{
			Line:    rec.Line,
			Invoice: rec.Invoice,
			rank:    rankOf[rec.Line.ItemCode],
			order:   i,
		}
		if hints.CustomerCode != "" && strings.EqualFold(rec.Invoice.CustomerCode, hints.CustomerCode) {
			m.CodeMatch = true
		}
		if hints.CustomerName != "" {
			terms, ok := nameTerms[rec.Invoice.CustomerName]
			if !ok {
				terms = prepareDescription(rec.Invoice.CustomerName)
				nameTerms[rec.Invoice.CustomerName] = terms
			}
			m.NameScore, _ = scoreText(hints.CustomerName, nameTokens, terms, p)
		}
		if hints.Amount != nil {
			m.PriceDelta = priceDelta(rec.Line, *hints.Amount)
		}
		m.Confidence = confidence(m, hints, tolerance, len(nameTokens), result, p)
		matches = append(matches, m)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.CodeMatch != b.CodeMatch {
			return a.CodeMatch
		}
		if a.NameScore != b.NameScore {
			return a.NameScore > b.NameScore
		}
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if a.PriceDelta != b.PriceDelta {
			return a.PriceDelta < b.PriceDelta
		}
		return a.order < b.order
	})

	best := matches[0]
	confident := best.Confidence >= p.ConfidenceFloor &&
		!result.PriceRelaxed &&
		scoreOf[best.Line.ItemCode] > 0

	rest := matches[1:]
	if p.MaxAlternatives > 0 && len(rest) > p.MaxAlternatives {
		rest = rest[:p.MaxAlternatives]
	}

	if confident {
		result.Best = &best
		result.Confident = true
		result.Alternatives = rest
		return result
	}

	all := matches
	if p.MaxAlternatives > 0 && len(all) > p.MaxAlternatives {
		all = all[:p.MaxAlternatives]
	}
	result.Alternatives = all
	return result
}

// narrow applies a predicate but never empties the set: when nothing passes,
// the original set is returned with the relaxed flag.
func narrow(records []LineRecord, keep func(LineRecord) bool) ([]LineRecord, bool) {
	filtered := records[:0:0]
	for _, rec := range records {
		if keep(rec) {
			filtered = append(filtered, rec)
		}
	}
	if len(filtered) == 0 {
		return records, len(records) > 0
	}
	return filtered, false
}

// priceDelta is the distance from the hinted amount to the closer of the
// line's unit price and line total.
func priceDelta(line models.InvoiceLine, amount float64) float64 {
	unit := math.Abs(line.UnitPrice - amount)
	total := math.Abs(line.LineTotal - amount)
	return math.Min(unit, total)
}

// confidence blends price plausibility and customer similarity into [0, 1].
// Absent hints are neutral (0.5); relaxed filters and dropped hints each
// shave the blended value.
func confidence(m LineMatch, hints Hints, tolerance float64, nameTokens int, flags ReconciliationResult, p Policy) float64 {
	priceConf := 0.5
	if hints.Amount != nil {
		if flags.PriceRelaxed {
			priceConf = 0.25
		} else {
			priceConf = 1 - 0.25*math.Min(1, m.PriceDelta/tolerance)
		}
	}

	custConf := 0.5
	switch {
	case m.CodeMatch:
		custConf = 1
	case hints.CustomerName != "" && nameTokens > 0:
		custConf = math.Min(1, float64(m.NameScore)/float64(p.LexicalWeight*nameTokens))
	case hints.CustomerCode != "":
		// A code hint was given and did not match.
		custConf = 0.25
	}

	conf := 0.5*priceConf + 0.5*custConf
	if flags.GeoRelaxed {
		conf *= 0.9
	}
	if flags.DateRelaxed {
		conf *= 0.9
	}
	for range hints.Dropped {
		conf *= 0.9
	}
	return conf
}
