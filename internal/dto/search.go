package dto

type SearchRequest struct {
	// Description is the free-text of the returned item, possibly misspelled
	// or partial.
	Description string `json:"description"`
	// Semantic asks the service to embed the query and add the vector signal.
	// It is ignored when no embedding provider is configured.
	Semantic bool `json:"semantic"`
}

type CandidateResponse struct {
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	Score        float64 `json:"score"`
	TextScore    int     `json:"text_score"`
	Similarity   float64 `json:"similarity"`
	SemanticOnly bool    `json:"semantic_only"`
}

type SearchResponse struct {
	Query      string              `json:"query"`
	Candidates []CandidateResponse `json:"candidates"`
}
