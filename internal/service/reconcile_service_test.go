package service

import (
	"testing"
	"time"

	"invoice-recon/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"131.24", 131.24},
		{"131,24", 131.24},
		{"R$ 131,24", 131.24},
		{"$1,131.24", 1131.24},
		{"500", 500},
	}
	for _, tc := range cases {
		got, err := parseAmount(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.InDelta(t, tc.want, got, 1e-9, tc.raw)
	}

	_, err := parseAmount("abc")
	assert.Error(t, err)
}

func TestParseHintsDropsMalformedValues(t *testing.T) {
	svc := &ReconcileService{logger: zap.NewNop()}

	hints := svc.parseHints(dto.HintsRequest{
		CustomerName: "  Livraria Central  ",
		Amount:       "not-a-number",
		DateFrom:     "2026-13-45",
		DateTo:       "2026-02-01",
	})

	assert.Equal(t, "Livraria Central", hints.CustomerName)
	assert.Nil(t, hints.Amount)
	assert.True(t, hints.DateFrom.IsZero())
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), hints.DateTo)
	assert.ElementsMatch(t, []string{"amount", "date_from"}, hints.Dropped)
}

func TestCandidatesFromCodes(t *testing.T) {
	candidates := CandidatesFromCodes([]string{" LIV1001 ", "", "LIV1062"})
	require.Len(t, candidates, 2)
	assert.Equal(t, "LIV1001", candidates[0].Code)
	assert.Equal(t, 1.0, candidates[0].Score)
	assert.Equal(t, "LIV1062", candidates[1].Code)
}
