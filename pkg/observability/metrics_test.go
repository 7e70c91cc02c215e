package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("pagegraph", nil)

	m.Increment("query_count", "ListPostsQuery")
	m.Increment("query_count", "ListPostsQuery")
	m.ObserveUpstream("get_posts", true, 20*time.Millisecond)
	m.ObserveUpstream("get_object", false, time.Millisecond)
	m.RecordEnrichment("comment", true)
	m.RecordEnrichment("comment", false)
	m.StartTimer("query_duration", "ListPostsQuery").Stop()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.queryEvents.WithLabelValues("query_count", "ListPostsQuery")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.upstreamTotal.WithLabelValues("get_posts", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.upstreamTotal.WithLabelValues("get_object", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.enrichmentTotal.WithLabelValues("comment", "unenriched")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.queryDuration))
}

func TestMetrics_ForwardsToPublisher(t *testing.T) {
	client := &fakeCloudWatch{}
	publisher := NewCloudWatchPublisher("pagegraph", client, nil)
	m := NewMetrics("pagegraph", publisher)

	m.Increment("query_success", "GetPostQuery")
	m.ObserveUpstream("get_object", true, time.Millisecond)
	m.RecordEnrichment("like", true)

	assert.Equal(t, 3, publisher.Pending())
	publisher.Flush(context.Background())
	require.Len(t, client.calls(), 1)
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics("pagegraph", nil)
	m.ObserveUpstream("get_posts", true, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pagegraph_upstream_requests_total{operation="get_posts",outcome="success"} 1`)
}

func TestTracer_DisabledRunsDirectly(t *testing.T) {
	var nilTracer *Tracer
	tracers := []*Tracer{nilTracer, NewTracer("pagegraph", false)}

	for _, tr := range tracers {
		called := false
		err := tr.TraceFunction(context.Background(), "graph.get_object", func(context.Context) error {
			called = true
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, called)
		assert.False(t, tr.Enabled())

		client := &http.Client{}
		assert.Same(t, client, tr.WrapClient(client))
		assert.NotPanics(t, func() { tr.AddAnnotation(context.Background(), "operation", "get_object") })
	}
}

func TestTracer_EnabledWithoutSegment(t *testing.T) {
	tr := NewTracer("pagegraph", true)

	called := false
	err := tr.TraceFunction(context.Background(), "graph.get_object", func(ctx context.Context) error {
		called = true
		tr.AddAnnotation(ctx, "entity_id", "123")
		return nil
	})

	assert.NoError(t, err)
	assert.True(t, called)
}
