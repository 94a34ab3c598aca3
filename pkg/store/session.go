package store

import "novel-recall-be/internal/entity"

// DisplayedCandidate is one entry of the review history shown to the
// user. Unavailable marks a candidate whose metadata lookup failed at
// the transport level; it is still presented by title and summary.
type DisplayedCandidate struct {
	Rank        int                       `json:"rank"`
	Title       string                    `json:"title"`
	Summary     string                    `json:"summary"`
	Info        *entity.EnrichedCandidate `json:"info,omitempty"`
	Unavailable bool                      `json:"info_unavailable,omitempty"`
}

// Session is the active disambiguation-round state held per user.
type Session struct {
	ID    string `json:"id"`
	State string `json:"state"` // IDLE | REVIEWING | EXHAUSTED

	// Candidates holds the ranked results of the current round,
	// replaced wholesale on each search.
	Candidates []entity.Candidate `json:"candidates"`

	// Cursor indexes the candidate under review.
	// Cursor == len(Candidates) means the round is exhausted.
	Cursor int `json:"cursor"`

	// Displayed grows monotonically within a round: every candidate
	// enriched and shown so far. Never shrinks mid-round.
	Displayed []DisplayedCandidate `json:"displayed"`

	// QueryText is the original story text that produced Candidates,
	// retained for feedback logging and the escalation link.
	QueryText string `json:"query_text"`

	FeedbackSaved bool `json:"feedback_saved"`

	// Busy suppresses re-entrant steps for this session while one
	// long-latency step is in flight.
	Busy bool `json:"busy"`

	// EnrichCache memoizes metadata lookups by exact title for the
	// lifetime of this session. NotFound results are memoized too.
	EnrichCache map[string]entity.EnrichedCandidate `json:"enrich_cache"`
}

const (
	StateIdle      = "IDLE"
	StateReviewing = "REVIEWING"
	StateExhausted = "EXHAUSTED"
)

// NewSession returns a session in the initial IDLE state.
func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		State:       StateIdle,
		EnrichCache: make(map[string]entity.EnrichedCandidate),
	}
}

// ResetRound clears round-scoped state after a confirmed match or a
// saved feedback, returning the session to IDLE. The enrichment cache
// survives: it is session-scoped, not round-scoped.
func (s *Session) ResetRound() {
	s.Cursor = 0
	s.Displayed = nil
	s.Candidates = nil
	s.State = StateIdle
}
