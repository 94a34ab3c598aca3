package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"novel-recall-be/internal/pkg/serverutils"
	"novel-recall-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNaverFake(t *testing.T, status int, body string, calls *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		assert.Equal(t, "/v1/search/book.json", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Naver-Client-Id"))
		assert.Equal(t, "1", r.URL.Query().Get("display"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestEnrichReturnsFirstMatch(t *testing.T) {
	var calls int64
	srv := newNaverFake(t, http.StatusOK, `{"items":[{
		"title":"해리포터와 마법사의 돌",
		"author":"J.K. 롤링",
		"publisher":"문학수첩",
		"image":"https://img.example/cover.jpg",
		"description":"마법학교 이야기"
	}]}`, &calls)
	defer srv.Close()

	svc := NewEnrichmentService(srv.URL, "id", "secret")
	session := store.NewSession("s1")

	got, err := svc.Enrich(context.Background(), session, "해리포터")
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.Equal(t, "해리포터와 마법사의 돌", got.Title)
	assert.Equal(t, "J.K. 롤링", got.Author)
	assert.Equal(t, "문학수첩", got.Publisher)
	assert.Equal(t, "https://img.example/cover.jpg", got.ImageURL)
}

func TestEnrichMemoizesPerTitle(t *testing.T) {
	var calls int64
	srv := newNaverFake(t, http.StatusOK, `{"items":[{"title":"어떤 책"}]}`, &calls)
	defer srv.Close()

	svc := NewEnrichmentService(srv.URL, "id", "secret")
	session := store.NewSession("s1")

	first, err := svc.Enrich(context.Background(), session, "어떤 책")
	require.NoError(t, err)
	second, err := svc.Enrich(context.Background(), session, "어떤 책")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls), "repeat enrichment must hit the cache")
}

func TestEnrichMemoizationIsSessionScoped(t *testing.T) {
	var calls int64
	srv := newNaverFake(t, http.StatusOK, `{"items":[{"title":"어떤 책"}]}`, &calls)
	defer srv.Close()

	svc := NewEnrichmentService(srv.URL, "id", "secret")

	_, err := svc.Enrich(context.Background(), store.NewSession("s1"), "어떤 책")
	require.NoError(t, err)
	_, err = svc.Enrich(context.Background(), store.NewSession("s2"), "어떤 책")
	require.NoError(t, err)

	assert.Equal(t, int64(2), atomic.LoadInt64(&calls), "a fresh session fetches fresh data")
}

func TestEnrichEmptyItemsIsNotFound(t *testing.T) {
	var calls int64
	srv := newNaverFake(t, http.StatusOK, `{"items":[]}`, &calls)
	defer srv.Close()

	svc := NewEnrichmentService(srv.URL, "id", "secret")
	session := store.NewSession("s1")

	got, err := svc.Enrich(context.Background(), session, "무명의 책")
	require.NoError(t, err, "no match is a normal outcome, not an error")
	assert.False(t, got.Found)

	// NotFound is memoized too
	_, err = svc.Enrich(context.Background(), session, "무명의 책")
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestEnrichNonSuccessStatusIsNotFound(t *testing.T) {
	var calls int64
	srv := newNaverFake(t, http.StatusTooManyRequests, `{"errorCode":"012"}`, &calls)
	defer srv.Close()

	svc := NewEnrichmentService(srv.URL, "id", "secret")

	got, err := svc.Enrich(context.Background(), store.NewSession("s1"), "어떤 책")
	require.NoError(t, err)
	assert.False(t, got.Found)
}

func TestEnrichTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	svc := NewEnrichmentService(srv.URL, "id", "secret")

	_, err := svc.Enrich(context.Background(), store.NewSession("s1"), "어떤 책")
	require.Error(t, err)
	assert.True(t, serverutils.IsKind(err, serverutils.KindEnrichment))
}

func TestEnrichMalformedResponse(t *testing.T) {
	var calls int64
	srv := newNaverFake(t, http.StatusOK, `{"items": not-json`, &calls)
	defer srv.Close()

	svc := NewEnrichmentService(srv.URL, "id", "secret")

	_, err := svc.Enrich(context.Background(), store.NewSession("s1"), "어떤 책")
	require.Error(t, err)
	assert.True(t, serverutils.IsKind(err, serverutils.KindEnrichment))
}
