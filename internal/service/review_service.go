package service

import (
	"context"
	"strings"

	"novel-recall-be/internal/dto"
	"novel-recall-be/internal/pkg/logger"
	"novel-recall-be/internal/pkg/serverutils"
	"novel-recall-be/internal/repository/contract"
	"novel-recall-be/pkg/store"
	"novel-recall-be/pkg/utils"

	"github.com/google/uuid"
)

// IReviewService drives the per-session disambiguation round:
// IDLE -> REVIEWING -> confirmed back to IDLE, or through EXHAUSTED
// and an optional feedback save back to IDLE.
type IReviewService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
	Render(ctx context.Context, sessionID string) (*dto.ReviewStateResponse, error)
	Confirm(ctx context.Context, req *dto.ConfirmRequest) (*dto.ConfirmResponse, error)
	Reject(ctx context.Context, req *dto.RejectRequest) (*dto.ReviewStateResponse, error)
	SubmitFeedback(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
}

type reviewService struct {
	sessionRepo       contract.SessionRepository
	retrievalService  IRetrievalService
	enrichmentService IEnrichmentService
	feedbackService   IFeedbackService
	sysLogger         logger.ILogger
}

func NewReviewService(
	sessionRepo contract.SessionRepository,
	retrievalService IRetrievalService,
	enrichmentService IEnrichmentService,
	feedbackService IFeedbackService,
	sysLogger logger.ILogger,
) IReviewService {
	return &reviewService{
		sessionRepo:       sessionRepo,
		retrievalService:  retrievalService,
		enrichmentService: enrichmentService,
		feedbackService:   feedbackService,
		sysLogger:         sysLogger,
	}
}

func (s *reviewService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := store.NewSession(uuid.NewString())
	s.sessionRepo.Save(session)
	return &dto.CreateSessionResponse{Id: session.ID}, nil
}

// begin fetches the session and claims its busy flag. Every step must
// release it through end, including on error paths.
func (s *reviewService) begin(sessionID string) (*store.Session, error) {
	session, ok := s.sessionRepo.Get(sessionID)
	if !ok {
		return nil, serverutils.NewNotFoundError("session not found")
	}
	if session.Busy {
		return nil, serverutils.NewBusyError()
	}
	session.Busy = true
	s.sessionRepo.Save(session)
	return session, nil
}

func (s *reviewService) end(session *store.Session) {
	session.Busy = false
	s.sessionRepo.Save(session)
}

func (s *reviewService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	session, err := s.begin(req.SessionId)
	if err != nil {
		return nil, err
	}
	defer s.end(session)

	story := strings.TrimSpace(req.Story)
	if story == "" {
		return nil, serverutils.NewUsageError("story text is required")
	}

	candidates, err := s.retrievalService.Retrieve(ctx, req.Story, DefaultTopK)
	if err != nil {
		// Fatal per search request; the session stays where it was.
		return nil, err
	}

	// Zero hits is a normal outcome: remain IDLE with a notice.
	if len(candidates) == 0 {
		session.ResetRound()
		return &dto.SearchResponse{
			ReviewStateResponse: *s.stateResponse(session),
			NoMatches:           true,
			Notice:              "no matching novels found, try describing the beginning of the story",
		}, nil
	}

	session.Candidates = candidates
	session.Cursor = 0
	session.Displayed = nil
	session.QueryText = req.Story
	session.FeedbackSaved = false
	session.State = store.StateReviewing

	s.render(ctx, session)

	s.sysLogger.Info("review", "Search round started", map[string]interface{}{
		"session_id": session.ID,
		"candidates": len(candidates),
	})

	return &dto.SearchResponse{ReviewStateResponse: *s.stateResponse(session)}, nil
}

// render makes sure the candidate under the cursor has been enriched
// and appended to the display history exactly once. Calling it again
// for the same cursor is a no-op, so a re-rendered review page never
// duplicates an entry.
func (s *reviewService) render(ctx context.Context, session *store.Session) {
	if session.State != store.StateReviewing {
		return
	}
	if session.Cursor >= len(session.Candidates) {
		return
	}
	if len(session.Displayed) > session.Cursor {
		return // already displayed for this cursor
	}

	candidate := session.Candidates[session.Cursor]
	displayed := store.DisplayedCandidate{
		Rank:    session.Cursor + 1,
		Title:   candidate.Title,
		Summary: candidate.Summary,
	}

	info, err := s.enrichmentService.Enrich(ctx, session, candidate.Title)
	if err != nil {
		// Degraded display: title and summary only, round continues.
		displayed.Unavailable = true
		s.sysLogger.Warn("review", "Metadata enrichment failed, continuing without info", map[string]interface{}{
			"session_id": session.ID,
			"title":      candidate.Title,
			"error":      err.Error(),
		})
	} else {
		displayed.Info = &info
	}

	session.Displayed = append(session.Displayed, displayed)
	s.sessionRepo.Save(session)
}

func (s *reviewService) Render(ctx context.Context, sessionID string) (*dto.ReviewStateResponse, error) {
	session, err := s.begin(sessionID)
	if err != nil {
		return nil, err
	}
	defer s.end(session)

	switch session.State {
	case store.StateReviewing:
		if len(session.Candidates) == 0 {
			// Broken round; route the caller back to the search view.
			session.ResetRound()
			return nil, serverutils.NewUsageError("no candidates to review, start a new search")
		}
		s.render(ctx, session)
	case store.StateExhausted:
		// Review history plus the escalation link stay available.
	default:
		return nil, serverutils.NewUsageError("no active search round")
	}

	return s.stateResponse(session), nil
}

func (s *reviewService) Confirm(ctx context.Context, req *dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
	session, err := s.begin(req.SessionId)
	if err != nil {
		return nil, err
	}
	defer s.end(session)

	if session.State != store.StateReviewing || session.Cursor >= len(session.Candidates) {
		return nil, serverutils.NewUsageError("no candidate under review to confirm")
	}

	title := session.Candidates[session.Cursor].Title
	session.ResetRound()

	s.sysLogger.Info("review", "Candidate confirmed", map[string]interface{}{
		"session_id": session.ID,
		"title":      title,
	})

	return &dto.ConfirmResponse{Title: title}, nil
}

func (s *reviewService) Reject(ctx context.Context, req *dto.RejectRequest) (*dto.ReviewStateResponse, error) {
	session, err := s.begin(req.SessionId)
	if err != nil {
		return nil, err
	}
	defer s.end(session)

	if session.State != store.StateReviewing || len(session.Candidates) == 0 {
		return nil, serverutils.NewUsageError("no candidate under review to reject")
	}

	if session.Cursor < len(session.Candidates)-1 {
		session.Cursor++
		s.render(ctx, session)
	} else {
		// Last candidate rejected: the round is exhausted. A single
		// candidate round lands here on its first reject.
		session.Cursor = len(session.Candidates)
		session.State = store.StateExhausted
		s.sysLogger.Info("review", "Round exhausted", map[string]interface{}{
			"session_id": session.ID,
		})
	}

	return s.stateResponse(session), nil
}

func (s *reviewService) SubmitFeedback(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	session, err := s.begin(req.SessionId)
	if err != nil {
		return nil, err
	}
	defer s.end(session)

	if session.State != store.StateExhausted {
		return nil, serverutils.NewUsageError("feedback is only accepted after all candidates were rejected")
	}
	if strings.TrimSpace(req.Feedback) == "" {
		// Rejected synchronously; no transition, no logger call.
		return nil, serverutils.NewUsageError("feedback text is required")
	}

	folderLink, err := s.feedbackService.Append(ctx, session.ID, session.QueryText, req.Feedback)
	if err != nil {
		// Stay EXHAUSTED; the user may resubmit. No automatic retry.
		return nil, err
	}

	session.FeedbackSaved = true
	session.ResetRound()

	return &dto.FeedbackResponse{FolderLink: folderLink}, nil
}

func (s *reviewService) stateResponse(session *store.Session) *dto.ReviewStateResponse {
	res := &dto.ReviewStateResponse{
		SessionId:       session.ID,
		State:           session.State,
		Cursor:          session.Cursor,
		TotalCandidates: len(session.Candidates),
		Displayed:       session.Displayed,
	}
	if session.State == store.StateExhausted {
		res.SearchLink = utils.BuildSearchLink(session.QueryText)
	}
	return res
}
