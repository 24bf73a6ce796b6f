package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-recon/internal/models"
)

func amount(v float64) *float64 { return &v }

// allMatches flattens a result back into one ordered list, best first.
func allMatches(r ReconciliationResult) []LineMatch {
	if r.Best == nil {
		return r.Alternatives
	}
	return append([]LineMatch{*r.Best}, r.Alternatives...)
}

func sampleRecords() []LineRecord {
	spInvoice := models.Invoice{
		Number:       "NF000001",
		CustomerCode: "CL00001",
		CustomerName: "Livraria Central Ltda",
		TotalValue:   912.80,
		PrintDate:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		City:         "Sao Paulo",
		State:        "SP",
	}
	rjInvoice := models.Invoice{
		Number:       "NF000002",
		CustomerCode: "CL00002",
		CustomerName: "Distribuidora Carioca",
		TotalValue:   450.00,
		PrintDate:    time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		City:         "Rio de Janeiro",
		State:        "RJ",
	}
	return []LineRecord{
		{
			Line: models.InvoiceLine{
				InvoiceNumber: "NF000001", LineNumber: 5, ItemCode: "LIV1062",
				Description: "Malibu Rising - Taylor Jenkins Reid",
				UnitPrice:   131.24, Quantity: 1, LineTotal: 131.24, Taxes: 11.81,
			},
			Invoice: spInvoice,
		},
		{
			Line: models.InvoiceLine{
				InvoiceNumber: "NF000002", LineNumber: 1, ItemCode: "LIV1062",
				Description: "Malibu Rising - Taylor Jenkins Reid",
				UnitPrice:   145.00, Quantity: 2, LineTotal: 290.00, Taxes: 26.10,
			},
			Invoice: rjInvoice,
		},
		{
			Line: models.InvoiceLine{
				InvoiceNumber: "NF000002", LineNumber: 2, ItemCode: "LIV1001",
				Description: "1984 - Annotated Edition - George Orwell",
				UnitPrice:   59.90, Quantity: 1, LineTotal: 59.90, Taxes: 5.39,
			},
			Invoice: rjInvoice,
		},
	}
}

func TestCorrelateExactCustomerAndPrice(t *testing.T) {
	result := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{CustomerCode: "CL00001", Amount: amount(131.24)},
		DefaultPolicy(),
	)

	require.True(t, result.Confident)
	require.NotNil(t, result.Best)
	assert.Equal(t, "NF000001", result.Best.Line.InvoiceNumber)
	assert.Equal(t, 5, result.Best.Line.LineNumber)
	assert.True(t, result.Best.CodeMatch)
	assert.InDelta(t, 1.0, result.Best.Confidence, 1e-9)
	assert.False(t, result.PriceRelaxed)
	assert.False(t, result.GeoRelaxed)
}

func TestCorrelatePriceBandExcludesOutliers(t *testing.T) {
	// 131.24 ± 5% excludes the 145.00 line outright.
	result := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{Amount: amount(131.24)},
		DefaultPolicy(),
	)

	require.True(t, result.Confident)
	require.NotNil(t, result.Best)
	assert.Equal(t, "NF000001", result.Best.Line.InvoiceNumber)
	assert.Empty(t, result.Alternatives)
}

func TestCorrelatePriceRelaxedFallback(t *testing.T) {
	// No line near 500: the nearest line survives with the relaxed flag and
	// the result is never reported confident.
	result := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{Amount: amount(500)},
		DefaultPolicy(),
	)

	assert.True(t, result.PriceRelaxed)
	assert.False(t, result.Confident)
	assert.Nil(t, result.Best)
	require.NotEmpty(t, result.Alternatives)
	// 290.00 (line total) is closer to 500 than 131.24.
	assert.Equal(t, "NF000002", result.Alternatives[0].Line.InvoiceNumber)
	assert.Less(t, result.Alternatives[0].Confidence, 0.5)
}

func TestCorrelateGeoFilterNarrows(t *testing.T) {
	result := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{State: "RJ"},
		DefaultPolicy(),
	)

	matches := allMatches(result)
	require.NotEmpty(t, matches)
	assert.False(t, result.GeoRelaxed)
	for _, m := range matches {
		assert.Equal(t, "RJ", m.Invoice.State)
	}
}

func TestCorrelateGeoFilterRelaxesInsteadOfEmptying(t *testing.T) {
	result := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{State: "AM", Amount: amount(131.24)},
		DefaultPolicy(),
	)

	assert.True(t, result.GeoRelaxed)
	require.NotEmpty(t, allMatches(result))
}

func TestCorrelateFuzzyCustomerName(t *testing.T) {
	// Misspelled customer name still ranks the right invoice first.
	result := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{CustomerName: "livraria sentral", Amount: amount(131.24)},
		DefaultPolicy(),
	)

	matches := allMatches(result)
	require.NotEmpty(t, matches)
	top := matches[0]
	assert.Equal(t, "CL00001", top.Invoice.CustomerCode)
	assert.Greater(t, top.NameScore, 0)
}

func TestCorrelateDateRangeFilter(t *testing.T) {
	result := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{
			DateFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		DefaultPolicy(),
	)

	assert.False(t, result.DateRelaxed)
	matches := allMatches(result)
	require.NotEmpty(t, matches)
	for _, m := range matches {
		assert.Equal(t, "NF000002", m.Invoice.Number)
	}
}

func TestCorrelateZeroScoreCandidateNeverConfident(t *testing.T) {
	result := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 0}},
		Hints{CustomerCode: "CL00001", Amount: amount(131.24)},
		DefaultPolicy(),
	)

	assert.False(t, result.Confident)
	assert.Nil(t, result.Best)
	assert.NotEmpty(t, result.Alternatives)
}

func TestCorrelateDroppedHintsLowerConfidence(t *testing.T) {
	clean := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{CustomerCode: "CL00001", Amount: amount(131.24)},
		DefaultPolicy(),
	)
	dropped := Correlate(sampleRecords(),
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{CustomerCode: "CL00001", Amount: amount(131.24), Dropped: []string{"amount"}},
		DefaultPolicy(),
	)

	require.NotNil(t, clean.Best)
	require.NotNil(t, dropped.Best)
	assert.Less(t, dropped.Best.Confidence, clean.Best.Confidence)
	assert.Equal(t, []string{"amount"}, dropped.DroppedHints)
}

func TestCorrelateNoMatchingCodes(t *testing.T) {
	result := Correlate(sampleRecords(),
		[]Candidate{{Code: "UNKNOWN", Score: 1}},
		Hints{},
		DefaultPolicy(),
	)

	assert.False(t, result.Confident)
	assert.Nil(t, result.Best)
	assert.Empty(t, result.Alternatives)
}

func TestCorrelateLineCapPerCode(t *testing.T) {
	records := sampleRecords()
	p := DefaultPolicy()
	p.MaxLinesPerCode = 1

	result := Correlate(records,
		[]Candidate{{Code: "LIV1062", Score: 1}},
		Hints{},
		p,
	)

	// Only the first LIV1062 line is scanned.
	matches := allMatches(result)
	require.Len(t, matches, 1)
	assert.Equal(t, "NF000001", matches[0].Line.InvoiceNumber)
}
