package search

import (
	"sort"
	"sync"
)

// MatchCandidate is one ranked product for one query. It lives only for the
// duration of the query and is never persisted.
type MatchCandidate struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	// Score is the composite value: the integer text score plus the vector
	// similarity, so two candidates with equal text evidence are separated by
	// semantic closeness.
	Score        float64 `json:"score"`
	TextScore    int     `json:"text_score"`
	Similarity   float64 `json:"similarity"`
	SemanticOnly bool    `json:"semantic_only"`
	Signals      Signals `json:"signals"`
}

// Rank scores every catalog product against the query and returns the top
// candidates, most confident first. Products with no evidence at all are
// excluded. The text score is the primary sort key, vector similarity the
// secondary one; remaining ties keep catalog insertion order.
//
// A product with text score zero still surfaces, flagged semantic-only, when
// its vector similarity reaches the policy floor. An empty query with no
// embedding yields no candidates.
func (s *Snapshot) Rank(query string, queryEmbedding []float32, p Policy) []MatchCandidate {
	tokens := Tokenize(query)
	if len(tokens) == 0 && len(queryEmbedding) == 0 {
		return nil
	}
	if len(s.products) == 0 {
		return nil
	}

	scores := s.scoreAll(query, tokens, p)
	sims := s.index.similarities(queryEmbedding)

	candidates := make([]MatchCandidate, 0, len(s.products))
	for i, prod := range s.products {
		textScore := scores[i].score
		sim := sims[prod.Code]
		if textScore == 0 {
			if sim < p.SimilarityFloor {
				continue
			}
			candidates = append(candidates, MatchCandidate{
				Code:         prod.Code,
				Description:  prod.Description,
				Score:        sim,
				Similarity:   sim,
				SemanticOnly: true,
			})
			continue
		}
		candidates = append(candidates, MatchCandidate{
			Code:        prod.Code,
			Description: prod.Description,
			Score:       float64(textScore) + sim,
			TextScore:   textScore,
			Similarity:  sim,
			Signals:     scores[i].signals,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TextScore != candidates[j].TextScore {
			return candidates[i].TextScore > candidates[j].TextScore
		}
		return candidates[i].Similarity > candidates[j].Similarity
	})

	if p.TopK > 0 && len(candidates) > p.TopK {
		candidates = candidates[:p.TopK]
	}
	return candidates
}

type productScore struct {
	score   int
	signals Signals
}

// scoreAll fans per-product text scoring out over a small worker pool. Each
// worker writes to a distinct slice slot, so the result does not depend on
// scheduling order.
func (s *Snapshot) scoreAll(query string, tokens []string, p Policy) []productScore {
	out := make([]productScore, len(s.products))
	if len(tokens) == 0 {
		return out
	}

	workers := p.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(s.products) {
		workers = len(s.products)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				score, sig := scoreText(query, tokens, s.terms[i], p)
				out[i] = productScore{score: score, signals: sig}
			}
		}()
	}
	for i := range s.products {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}
