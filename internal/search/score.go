package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Signals records which text signals fired for one product and how often.
type Signals struct {
	// Lexical is set when the raw query was contained in the description as a
	// whole; LexicalHits counts individual tokens contained instead.
	Lexical      bool `json:"lexical"`
	LexicalHits  int  `json:"lexical_hits"`
	PhoneticHits int  `json:"phonetic_hits"`
	EditHits     int  `json:"edit_hits"`
}

// descriptionTerms holds the precomputed lexical forms of one description so
// repeated per-token tests stay cheap.
type descriptionTerms struct {
	lower string
	words []string
	codes map[string]struct{}
}

func prepareDescription(description string) descriptionTerms {
	lower := strings.ToLower(description)
	words := strings.Fields(lower)
	codes := make(map[string]struct{}, len(words))
	for _, w := range words {
		if code := phoneticCode(w); code != "" {
			codes[code] = struct{}{}
		}
	}
	return descriptionTerms{lower: lower, words: words, codes: codes}
}

// scoreText computes the integer text score of one description against a
// query. The raw query is tested for whole containment first; when that
// fails, each token falls through lexical containment, phonetic equality and
// bounded edit distance, in that order, so no token is rewarded twice.
func scoreText(rawQuery string, tokens []string, terms descriptionTerms, p Policy) (int, Signals) {
	var sig Signals

	raw := strings.ToLower(strings.TrimSpace(rawQuery))
	if raw != "" && strings.Contains(terms.lower, raw) {
		sig.Lexical = true
		return p.LexicalWeight, sig
	}

	score := 0
	for _, tok := range tokens {
		if strings.Contains(terms.lower, tok) {
			score += p.LexicalWeight
			sig.LexicalHits++
			continue
		}
		if code := phoneticCode(tok); code != "" {
			if _, ok := terms.codes[code]; ok {
				score += p.PhoneticWeight
				sig.PhoneticHits++
				continue
			}
		}
		if withinEditDistance(tok, terms.words, p.MaxEditDistance) {
			score += p.EditWeight
			sig.EditHits++
		}
	}
	return score, sig
}

// phoneticCode returns the Soundex code of a word, or "" for words with no
// letters (Soundex is undefined for purely numeric tokens).
func phoneticCode(word string) string {
	if !hasLetter(word) {
		return ""
	}
	return matchr.Soundex(word)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// withinEditDistance reports whether the minimum Levenshtein distance from
// token to any description word is at most max.
func withinEditDistance(token string, words []string, max int) bool {
	runes := utf8.RuneCountInString(token)
	for _, w := range words {
		// Cheap lower bound: the distance is at least the difference in rune
		// counts. Levenshtein counts runes, so the bound must too.
		if diff := runes - utf8.RuneCountInString(w); diff > max || -diff > max {
			continue
		}
		if matchr.Levenshtein(token, w) <= max {
			return true
		}
	}
	return false
}
