package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"novel-recall-be/internal/entity"
	"novel-recall-be/internal/pkg/serverutils"
	"novel-recall-be/pkg/store"
)

const naverBookSearchPath = "/v1/search/book.json"

// IEnrichmentService looks a candidate title up in the Naver book
// search API. NotFound (Found=false) is an expected outcome, not an
// error; only transport-level failures return an error.
type IEnrichmentService interface {
	Enrich(ctx context.Context, session *store.Session, title string) (entity.EnrichedCandidate, error)
}

type enrichmentService struct {
	baseURL      string
	clientID     string
	clientSecret string
	client       *http.Client
}

func NewEnrichmentService(baseURL, clientID, clientSecret string) IEnrichmentService {
	if baseURL == "" {
		baseURL = "https://openapi.naver.com"
	}
	return &enrichmentService{
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

type naverBookItem struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type naverBookResponse struct {
	Items []naverBookItem `json:"items"`
}

// Enrich is memoized per session by exact title: a repeat visit within
// one session never re-calls the API, NotFound included.
func (s *enrichmentService) Enrich(ctx context.Context, session *store.Session, title string) (entity.EnrichedCandidate, error) {
	if cached, ok := session.EnrichCache[title]; ok {
		return cached, nil
	}

	params := url.Values{}
	params.Add("query", title)
	params.Add("display", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+naverBookSearchPath+"?"+params.Encode(), nil)
	if err != nil {
		return entity.EnrichedCandidate{}, serverutils.NewEnrichmentError(err)
	}
	req.Header.Set("X-Naver-Client-Id", s.clientID)
	req.Header.Set("X-Naver-Client-Secret", s.clientSecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return entity.EnrichedCandidate{}, serverutils.NewEnrichmentError(err)
	}
	defer resp.Body.Close()

	// Non-success from the API is a common, expected "no info" outcome.
	if resp.StatusCode != http.StatusOK {
		notFound := entity.EnrichedCandidate{Title: title, Found: false}
		session.EnrichCache[title] = notFound
		return notFound, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return entity.EnrichedCandidate{}, serverutils.NewEnrichmentError(err)
	}

	var parsed naverBookResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return entity.EnrichedCandidate{}, serverutils.NewEnrichmentError(err)
	}

	if len(parsed.Items) == 0 {
		notFound := entity.EnrichedCandidate{Title: title, Found: false}
		session.EnrichCache[title] = notFound
		return notFound, nil
	}

	// The API does its own fuzzy matching; take the first item as-is.
	book := parsed.Items[0]
	enriched := entity.EnrichedCandidate{
		Title:       book.Title,
		Author:      book.Author,
		Publisher:   book.Publisher,
		ImageURL:    book.Image,
		Description: book.Description,
		Found:       true,
	}
	session.EnrichCache[title] = enriched
	return enriched, nil
}
