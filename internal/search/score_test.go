package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"orwel", "1984"}, Tokenize("  Orwel   1984 "))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("   \t\n"))
}

func TestScoreTextWholeQueryContainment(t *testing.T) {
	p := DefaultPolicy()
	terms := prepareDescription("1984 - Annotated Edition - George Orwell")

	// Whole-query containment contributes the lexical weight exactly once,
	// regardless of how many tokens the query has.
	score, sig := scoreText("george orwell", Tokenize("george orwell"), terms, p)
	assert.Equal(t, p.LexicalWeight, score)
	assert.True(t, sig.Lexical)
	assert.Zero(t, sig.PhoneticHits)
	assert.Zero(t, sig.EditHits)
}

func TestScoreTextPerTokenFallthrough(t *testing.T) {
	p := DefaultPolicy()
	terms := prepareDescription("1984 - Annotated Edition - George Orwell")

	// "orwle 1984" is not contained as a whole; "1984" matches lexically (+3)
	// and the transposed "orwle" shares Orwell's Soundex code (+2): 5 total.
	score, sig := scoreText("orwle 1984", Tokenize("orwle 1984"), terms, p)
	require.Equal(t, p.LexicalWeight+p.PhoneticWeight, score)
	assert.False(t, sig.Lexical)
	assert.Equal(t, 1, sig.LexicalHits)
	assert.Equal(t, 1, sig.PhoneticHits)
	assert.Zero(t, sig.EditHits)
}

func TestScoreTextTruncatedTokenIsLexical(t *testing.T) {
	p := DefaultPolicy()
	terms := prepareDescription("1984 - Annotated Edition - George Orwell")

	// A truncated token is a plain substring of "orwell", so both tokens
	// score the lexical weight (3+3). The fuzzy signals only ever see tokens
	// that failed containment.
	score, sig := scoreText("orwel 1984", Tokenize("orwel 1984"), terms, p)
	assert.Equal(t, 2*p.LexicalWeight, score)
	assert.Equal(t, 2, sig.LexicalHits)
	assert.Zero(t, sig.PhoneticHits+sig.EditHits)
}

func TestScoreTextEditDistanceBound(t *testing.T) {
	p := DefaultPolicy()
	terms := prepareDescription("malibu rising")

	// Two edits away still matches, three does not.
	score, sig := scoreText("malibx", Tokenize("malibx"), terms, p)
	assert.Equal(t, p.EditWeight, score)
	assert.Equal(t, 1, sig.EditHits)

	score, _ = scoreText("maxxxu", Tokenize("maxxxu"), terms, p)
	assert.Zero(t, score)
}

func TestScoreTextNoEvidence(t *testing.T) {
	p := DefaultPolicy()
	terms := prepareDescription("clean code - robert martin")

	score, sig := scoreText("zzzzzz qqqqqq", Tokenize("zzzzzz qqqqqq"), terms, p)
	assert.Zero(t, score)
	assert.Equal(t, Signals{}, sig)
}

func TestWithinEditDistanceCountsRunesNotBytes(t *testing.T) {
	// Accented text inflates byte length without adding characters; the
	// length prune must not skip words that are within the rune distance.
	assert.True(t, withinEditDistance("coracao", []string{"coração"}, 2))
	assert.True(t, withinEditDistance("ああ", []string{"aa"}, 2))
	assert.False(t, withinEditDistance("ああ", []string{"aaaaa"}, 2))
}

func TestPhoneticCodeSkipsNumericTokens(t *testing.T) {
	assert.Empty(t, phoneticCode("1984"))
	assert.NotEmpty(t, phoneticCode("orwell"))
	assert.Equal(t, phoneticCode("reid"), phoneticCode("reed"))
}
