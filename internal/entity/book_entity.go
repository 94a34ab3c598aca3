package entity

import "time"

// CorpusEntry is one novel of the fixed search corpus: title, summary
// and the precomputed summary embedding. Immutable after load.
type CorpusEntry struct {
	Id        int
	Title     string
	Summary   string
	Vector    []float32
	CreatedAt time.Time
}

// Candidate is a ranked retrieval result awaiting user confirmation.
type Candidate struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// EnrichedCandidate carries book metadata fetched from the external
// book-data API. Found=false is the NotFound sentinel: the lookup
// succeeded but the API had no match for the title.
type EnrichedCandidate struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Found       bool   `json:"found"`
}
