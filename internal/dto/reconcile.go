package dto

// HintsRequest carries the optional transaction attributes of a return.
// Amount and the dates arrive as strings on purpose: an unparsable value is
// dropped with lowered confidence instead of rejecting the request.
type HintsRequest struct {
	CustomerCode string `json:"customer_code"`
	CustomerName string `json:"customer_name"`
	City         string `json:"city"`
	State        string `json:"state"`
	Amount       string `json:"amount"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

type ReconcileRequest struct {
	// Codes are the candidate product codes, most confident first.
	Codes []string     `json:"codes"`
	Hints HintsRequest `json:"hints"`
}

// ResolveRequest is the one-shot flow: rank products by description, then
// reconcile the top candidates against the invoice history.
type ResolveRequest struct {
	Description string       `json:"description"`
	Semantic    bool         `json:"semantic"`
	Hints       HintsRequest `json:"hints"`
}

type InvoiceResponse struct {
	Number       string  `json:"number"`
	CustomerCode string  `json:"customer_code"`
	CustomerName string  `json:"customer_name"`
	TotalValue   float64 `json:"total_value"`
	PrintDate    string  `json:"print_date"`
	City         string  `json:"city"`
	State        string  `json:"state"`
}

type InvoiceLineResponse struct {
	InvoiceNumber string  `json:"invoice_number"`
	LineNumber    int     `json:"line_number"`
	ItemCode      string  `json:"item_code"`
	Description   string  `json:"description"`
	UnitPrice     float64 `json:"unit_price"`
	Quantity      int     `json:"quantity"`
	LineTotal     float64 `json:"line_total"`
	Taxes         float64 `json:"taxes"`
}

type LineMatchResponse struct {
	Line       InvoiceLineResponse `json:"line"`
	Invoice    InvoiceResponse     `json:"invoice"`
	Confidence float64             `json:"confidence"`
	PriceDelta float64             `json:"price_delta"`
	CodeMatch  bool                `json:"code_match"`
}

type ReconcileResponse struct {
	Confident    bool                `json:"confident"`
	Best         *LineMatchResponse  `json:"best,omitempty"`
	Alternatives []LineMatchResponse `json:"alternatives"`
	PriceRelaxed bool                `json:"price_relaxed"`
	GeoRelaxed   bool                `json:"geo_relaxed"`
	DateRelaxed  bool                `json:"date_relaxed"`
	DroppedHints []string            `json:"dropped_hints,omitempty"`
}

// ResolveResponse pairs the product ranking with the reconciliation outcome.
type ResolveResponse struct {
	Candidates     []CandidateResponse `json:"candidates"`
	Reconciliation ReconcileResponse   `json:"reconciliation"`
}
