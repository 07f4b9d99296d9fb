// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-tags/internal/search"
	"github.com/pdiddy/scholar-tags/internal/tags"
	"github.com/pdiddy/scholar-tags/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memPersister struct {
	mu      sync.Mutex
	data    types.TagMapping
	saveErr error
}

func (m *memPersister) Load() (types.TagMapping, error) {
	return m.data.Clone(), nil
}

func (m *memPersister) Save(tm types.TagMapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = tm.Clone()
	return nil
}

type stubSearcher struct {
	got search.Request
	out search.Output
	err error
}

func (s *stubSearcher) Search(_ context.Context, req search.Request) (search.Output, error) {
	s.got = req
	if s.err != nil {
		return search.Output{}, s.err
	}
	if strings.TrimSpace(req.Title) == "" {
		return search.Output{}, search.ErrTitleRequired
	}
	return s.out, nil
}

func newTestRouter(t *testing.T, s Searcher, p *memPersister) (*gin.Engine, *tags.Store) {
	t.Helper()
	store := tags.NewStore(p)
	return NewRouter(NewHandler(s, store), nil), store
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

// --- /search ---

func TestSearch_OK(t *testing.T) {
	s := &stubSearcher{out: search.Output{
		Papers: []types.AnnotatedPaper{{
			Title:   "Deep Learning",
			Authors: []types.AuthorTags{{Name: "Y LeCun", Tags: []string{"ml"}}},
			CitedBy: 42,
		}},
		Total: 1,
	}}
	r, _ := newTestRouter(t, s, &memPersister{})

	w := do(r, http.MethodPost, "/search", `{"title":"deep learning","tags":["ml"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out search.Output
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Papers, 1)
	assert.Equal(t, "Y LeCun", out.Papers[0].Authors[0].Name)
	assert.Equal(t, "deep learning", s.got.Title)
	assert.Equal(t, []string{"ml"}, s.got.Tags)
}

func TestSearch_BlankTitle(t *testing.T) {
	r, _ := newTestRouter(t, &stubSearcher{}, &memPersister{})

	w := do(r, http.MethodPost, "/search", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title is required", decodeError(t, w))
}

func TestSearch_FetchErrorIsBadGateway(t *testing.T) {
	r, _ := newTestRouter(t, &stubSearcher{err: errors.New("scholar returned HTTP 503")}, &memPersister{})

	w := do(r, http.MethodPost, "/search", `{"title":"x"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, decodeError(t, w), "503")
}

func TestSearch_MalformedBody(t *testing.T) {
	r, _ := newTestRouter(t, &stubSearcher{}, &memPersister{})

	w := do(r, http.MethodPost, "/search", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- tag endpoints ---

func TestAddTag(t *testing.T) {
	r, store := newTestRouter(t, &stubSearcher{}, &memPersister{})

	w := do(r, http.MethodPost, "/add_tag", `{"author":" Smith ","tag":" ml "}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, []string{"ml"}, store.Tags("Smith"))
}

func TestAddTag_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"blank author", `{"author":"  ","tag":"ml"}`},
		{"blank tag", `{"author":"Smith","tag":""}`},
		{"missing fields", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, store := newTestRouter(t, &stubSearcher{}, &memPersister{})

			w := do(r, http.MethodPost, "/add_tag", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "author and tag are required", decodeError(t, w))
			assert.Empty(t, store.AllTags())
		})
	}
}

func TestAddTag_SaveFailure(t *testing.T) {
	p := &memPersister{saveErr: errors.New("disk full")}
	r, store := newTestRouter(t, &stubSearcher{}, p)

	w := do(r, http.MethodPost, "/add_tag", `{"author":"Smith","tag":"ml"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeError(t, w), "disk full")
	assert.Empty(t, store.Tags("Smith"))
}

func TestRemoveTag(t *testing.T) {
	p := &memPersister{data: types.TagMapping{"Smith": {"ml", "nlp"}}}
	r, store := newTestRouter(t, &stubSearcher{}, p)

	w := do(r, http.MethodPost, "/remove_tag", `{"author":"Smith","tag":"ml"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"nlp"}, store.Tags("Smith"))

	w = do(r, http.MethodPost, "/remove_tag", `{"author":"Smith","tag":"absent"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"nlp"}, store.Tags("Smith"))
}

func TestAllTags(t *testing.T) {
	p := &memPersister{data: types.TagMapping{
		"Smith": {"nlp", "ml"},
		"Jones": {"ml", "ai"},
	}}
	r, _ := newTestRouter(t, &stubSearcher{}, p)

	w := do(r, http.MethodGet, "/tags", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["ai","ml","nlp"]`, w.Body.String())
}

func TestAuthorTags(t *testing.T) {
	p := &memPersister{data: types.TagMapping{"Smith": {"nlp", "ml"}}}
	r, _ := newTestRouter(t, &stubSearcher{}, p)

	w := do(r, http.MethodGet, "/tags/Smith", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["nlp","ml"]`, w.Body.String())

	w = do(r, http.MethodGet, "/tags/Nobody", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

// --- middleware and ops endpoints ---

func TestRequestID(t *testing.T) {
	r, _ := newTestRouter(t, &stubSearcher{}, &memPersister{})

	w := do(r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, &stubSearcher{}, &memPersister{})

	do(r, http.MethodGet, "/healthz", "")
	w := do(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "scholar_tags_http_requests_total")
}
