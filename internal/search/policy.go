package search

// Policy bundles the scoring thresholds and weights used across the engine.
// The defaults mirror the production values; callers can override individual
// fields through configuration instead of editing code.
type Policy struct {
	// Text signal weights (strongest to weakest evidence).
	LexicalWeight  int
	PhoneticWeight int
	EditWeight     int

	// MaxEditDistance is the Levenshtein threshold for the edit signal.
	MaxEditDistance int

	// SimilarityFloor is the minimum vector similarity for a product with no
	// text evidence to still surface as a semantic-only match.
	SimilarityFloor float64

	// TopK caps the number of ranked candidates returned per query.
	TopK int

	// PriceTolerance is the relative tolerance band around a hinted amount;
	// PriceEpsilon is the absolute floor of that band.
	PriceTolerance float64
	PriceEpsilon   float64

	// ConfidenceFloor is the minimum confidence for a reconciliation to be
	// reported as a confident match.
	ConfidenceFloor float64

	// MaxLinesPerCode bounds how many invoice lines are considered per
	// candidate product code.
	MaxLinesPerCode int

	// MaxAlternatives caps the alternative lines carried on a result.
	MaxAlternatives int

	// Workers is the number of goroutines scoring products within one query.
	Workers int
}

func DefaultPolicy() Policy {
	return Policy{
		LexicalWeight:   3,
		PhoneticWeight:  2,
		EditWeight:      1,
		MaxEditDistance: 2,
		SimilarityFloor: 0.5,
		TopK:            10,
		PriceTolerance:  0.05,
		PriceEpsilon:    0.01,
		ConfidenceFloor: 0.5,
		MaxLinesPerCode: 200,
		MaxAlternatives: 5,
		Workers:         4,
	}
}
