package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/KaramelBytes/review-digest/internal/metrics"
	"github.com/KaramelBytes/review-digest/internal/review"
	"github.com/KaramelBytes/review-digest/internal/store"
)

func init() { gin.SetMode(gin.TestMode) }

func num(f float64) *float64 { return &f }

func newTestServer(t *testing.T, s review.Store, m *metrics.Metrics) http.Handler {
	t.Helper()
	srv, err := New(Options{Addr: "127.0.0.1:0", Store: s, Logger: zaptest.NewLogger(t), Metrics: m})
	require.NoError(t, err)
	return srv.Handler()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func sample() review.Store {
	return review.Aggregate([]review.Record{
		{No: "1", Category: "Electronics", Product: "PhoneX", Priority: num(5)},
		{No: "2", Category: "Electronics", Product: "PhoneX", Priority: num(9)},
		{No: "3", Category: "Books & Comics", Product: "Novel", Priority: nil},
	}, 0)
}

func TestAPIData_EmptyStore(t *testing.T) {
	h := newTestServer(t, review.Store{}, nil)
	w := get(t, h, "/api/data")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "{}", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestAPIData_MatchesPersistedBytes(t *testing.T) {
	s := sample()
	want, err := store.EncodeJSON(s)
	require.NoError(t, err)

	w := get(t, newTestServer(t, s, nil), "/api/data")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(want), w.Body.String())

	var decoded map[string]map[string][]review.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	group := decoded["Electronics"]["PhoneX"]
	require.Len(t, group, 2)
	assert.Equal(t, "2", group[0].No)
	assert.Equal(t, "1", group[1].No)
}

func TestAPIData_UsesProvidedJSON(t *testing.T) {
	srv, err := New(Options{Store: review.Store{}, JSON: []byte(`{"x":{}}`)})
	require.NoError(t, err)
	w := get(t, srv.Handler(), "/api/data")
	assert.Equal(t, `{"x":{}}`, w.Body.String())
}

func TestIndex_ListsCategories(t *testing.T) {
	w := get(t, newTestServer(t, sample(), nil), "/")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-category="Electronics"`)
	assert.Contains(t, body, "Books &amp; Comics")
	assert.NotContains(t, body, "No review data is available.")
}

func TestIndex_DegradedMode(t *testing.T) {
	w := get(t, newTestServer(t, nil, nil), "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No review data is available.")
	assert.NotContains(t, w.Body.String(), "data-category=")
}

func TestHealthz(t *testing.T) {
	w := get(t, newTestServer(t, sample(), nil), "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","categories":2}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	h := newTestServer(t, sample(), nil)
	w := get(t, h, "/healthz")
	assert.Len(t, w.Header().Get(requestIDHeader), 36)

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestMetricsRoute(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(t, newTestServer(t, sample(), nil), "/metrics").Code)

	m := metrics.New()
	h := newTestServer(t, sample(), m)
	get(t, h, "/api/data")
	get(t, h, "/does-not-exist")
	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `reviewdigest_http_requests_total{method="GET",route="/api/data",status="200"} 1`)
	assert.Contains(t, w.Body.String(), `route="unmatched",status="404"`)
}

func TestNoWriteEndpoints(t *testing.T) {
	h := newTestServer(t, sample(), nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/data", nil))
	assert.NotEqual(t, http.StatusOK, w.Code)
}
