package dto

import "novel-recall-be/pkg/store"

type CreateSessionResponse struct {
	Id string `json:"id"`
}

type SearchRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Story     string `json:"story" validate:"required"`
}

// ReviewStateResponse is the review view: the full display history of
// the round plus where the cursor stands. SearchLink is only set once
// the round is exhausted.
type ReviewStateResponse struct {
	SessionId       string                     `json:"session_id"`
	State           string                     `json:"state"`
	Cursor          int                        `json:"cursor"`
	TotalCandidates int                        `json:"total_candidates"`
	Displayed       []store.DisplayedCandidate `json:"displayed"`
	SearchLink      string                     `json:"search_link,omitempty"`
}

type SearchResponse struct {
	ReviewStateResponse
	NoMatches bool   `json:"no_matches,omitempty"`
	Notice    string `json:"notice,omitempty"`
}

type ConfirmRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type ConfirmResponse struct {
	Title string `json:"title"`
}

type RejectRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type FeedbackRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Feedback  string `json:"feedback"`
}

type FeedbackResponse struct {
	FolderLink string `json:"folder_link,omitempty"`
}

type AboutResponse struct {
	BookCount int64  `json:"book_count"`
	SearchTip string `json:"search_tip"`
}
