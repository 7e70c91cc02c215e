package graphapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	vo "pagegraph/domain/core/valueobjects"
	"pagegraph/pkg/errors"
	"pagegraph/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	operation string
	ok        bool
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []observation
}

func (r *fakeRecorder) ObserveUpstream(operation string, ok bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{operation, ok})
}

// fakeGraph serves canned JSON and remembers the last request
type fakeGraph struct {
	mu     sync.Mutex
	last   *http.Request
	status int
	body   interface{}
}

func (f *fakeGraph) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.last = r.Clone(context.Background())
	status, body := f.status, f.body
	f.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (f *fakeGraph) lastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *fakeRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpClient, err := NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)

	recorder := &fakeRecorder{}
	client, err := NewClient(Credential{AccessToken: "test-token", Version: "2.12"}, httpClient,
		observability.NewTracer("test", false), recorder, nil)
	require.NoError(t, err)
	return client, recorder
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(Credential{AccessToken: " "}, nil, nil, nil, nil)

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

func TestNormalizeVersion(t *testing.T) {
	assert.Equal(t, "v2.12", NormalizeVersion("2.12"))
	assert.Equal(t, "v19.0", NormalizeVersion("v19.0"))
	assert.Equal(t, "", NormalizeVersion(" "))
}

func TestClient_GetObject(t *testing.T) {
	graph := &fakeGraph{body: map[string]interface{}{
		"id":      "123",
		"name":    "Gophers",
		"picture": map[string]interface{}{"data": map[string]interface{}{"url": "https://img"}},
	}}
	client, recorder := newTestClient(t, graph)

	rec, err := client.GetObject(context.Background(), "123", vo.FieldSpecFromNames("id", "name", "picture"))

	require.NoError(t, err)
	assert.Equal(t, "123", rec.ID())
	picture, ok := rec.Nested("picture")
	require.True(t, ok)
	_, ok = picture["data"].(map[string]interface{})
	assert.True(t, ok)

	req := graph.lastRequest()
	assert.Equal(t, "/v2.12/123", req.URL.Path)
	assert.Equal(t, "id,name,picture", req.URL.Query().Get("fields"))
	assert.Equal(t, "test-token", req.URL.Query().Get("access_token"))
	assert.Equal(t, []observation{{"get_object", true}}, recorder.obs)
}

func TestClient_GetObjectWithoutFields(t *testing.T) {
	graph := &fakeGraph{body: map[string]interface{}{"id": "1"}}
	client, _ := newTestClient(t, graph)

	_, err := client.GetObject(context.Background(), "1", vo.FieldSpec{})

	require.NoError(t, err)
	assert.False(t, graph.lastRequest().URL.Query().Has("fields"))
}

func TestClient_GetConnection(t *testing.T) {
	graph := &fakeGraph{body: map[string]interface{}{
		"data": []interface{}{
			map[string]interface{}{"id": "c1", "like_count": 3},
			"odd item",
		},
		"paging": map[string]interface{}{
			"cursors": map[string]interface{}{"before": "b", "after": "a"},
			"next":    "https://graph.facebook.com/next",
		},
	}}
	client, recorder := newTestClient(t, graph)

	raw, err := client.GetConnection(context.Background(), "123_456", "comments",
		vo.FieldSpecFromNames("id", "like_count"), 2, map[string]string{"order": "chronological"})

	require.NoError(t, err)
	require.Len(t, raw.Data, 2)
	first, ok := raw.Data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "c1", first["id"])
	assert.Equal(t, "odd item", raw.Data[1])
	assert.Equal(t, "https://graph.facebook.com/next", raw.Paging["next"])

	q := graph.lastRequest().URL.Query()
	assert.Equal(t, "/v2.12/123_456/comments", graph.lastRequest().URL.Path)
	assert.Equal(t, "2", q.Get("limit"))
	assert.Equal(t, "chronological", q.Get("order"))
	assert.Equal(t, []observation{{"get_comments", true}}, recorder.obs)
}

func TestClient_GetConnectionEmptyData(t *testing.T) {
	graph := &fakeGraph{body: map[string]interface{}{"data": []interface{}{}}}
	client, _ := newTestClient(t, graph)

	raw, err := client.GetConnection(context.Background(), "me", "insights", vo.FieldSpec{}, 0,
		map[string]string{"metric": "page_fans"})

	require.NoError(t, err)
	assert.NotNil(t, raw.Data)
	assert.Empty(t, raw.Data)
	assert.Nil(t, raw.Paging)
	assert.False(t, graph.lastRequest().URL.Query().Has("limit"))
	assert.Equal(t, "page_fans", graph.lastRequest().URL.Query().Get("metric"))
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		subcode    int
		wantStatus int
	}{
		{"expired token", 190, 463, http.StatusUnauthorized},
		{"rate limit", 4, 0, http.StatusTooManyRequests},
		{"page rate limit", 32, 0, http.StatusTooManyRequests},
		{"permission", 200, 0, http.StatusForbidden},
		{"unknown object", 803, 0, http.StatusNotFound},
		{"unsupported get", 100, 33, http.StatusNotFound},
		{"bad parameter", 100, 0, http.StatusBadRequest},
		{"service error", 2, 0, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			graph := &fakeGraph{status: http.StatusBadRequest, body: map[string]interface{}{
				"error": map[string]interface{}{
					"message":       tt.name,
					"type":          "OAuthException",
					"code":          tt.code,
					"error_subcode": tt.subcode,
				},
			}}
			client, recorder := newTestClient(t, graph)

			_, err := client.GetObject(context.Background(), "123", vo.FieldSpecFromNames("id"))

			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeUpstream, appErr.Type)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
			assert.Equal(t, tt.name, appErr.Details)
			assert.Equal(t, "get_object", appErr.Operation)
			assert.Equal(t, "123", appErr.EntityID)
			assert.Equal(t, []observation{{"get_object", false}}, recorder.obs)
		})
	}
}

func TestClient_UnreadableResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))

	_, err := client.GetObject(context.Background(), "123", vo.FieldSpec{})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, errors.GetAppError(err).HTTPStatus)
}

func TestClient_DeadlineExceeded(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.GetObject(ctx, "123", vo.FieldSpec{})

	require.Error(t, err)
	assert.Equal(t, http.StatusGatewayTimeout, errors.GetAppError(err).HTTPStatus)
}

func TestStatusForCode(t *testing.T) {
	cases := map[int]int{
		102:   http.StatusUnauthorized,
		467:   http.StatusUnauthorized,
		17:    http.StatusTooManyRequests,
		613:   http.StatusTooManyRequests,
		80001: http.StatusTooManyRequests,
		80014: http.StatusTooManyRequests,
		80015: http.StatusBadGateway,
		10:    http.StatusForbidden,
		299:   http.StatusForbidden,
		1:     http.StatusBadGateway,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusForCode(code, 0), "code %d", code)
	}
}

func TestNewHTTPClient(t *testing.T) {
	_, err := NewHTTPClient("not-a-url", time.Second)
	assert.Error(t, err)

	c, err := NewHTTPClient("", time.Second)
	require.NoError(t, err)
	assert.Equal(t, http.DefaultTransport, c.Transport)
}

func TestRewriteTransport_KeepsPathPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL+"/fake/", time.Second)
	require.NoError(t, err)

	resp, err := c.Get("https://graph.facebook.com/v2.12/me")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "/fake/v2.12/me", gotPath)
}
