package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"pagegraph/application/ports/mocks"
	domainconfig "pagegraph/domain/config"
	"pagegraph/domain/core/entities"
	"pagegraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordedOutcome struct {
	kind     string
	enriched bool
}

type fakeRecorder struct {
	outcomes []recordedOutcome
}

func (r *fakeRecorder) RecordEnrichment(kind string, enriched bool) {
	r.outcomes = append(r.outcomes, recordedOutcome{kind, enriched})
}

const userFields = "id,name,picture.type(large),link,email"

func newTestEnricher(graph *mocks.MockGraphAPI, recorder EnrichmentRecorder, logger *zap.Logger) *Enricher {
	fields := domainconfig.DefaultFieldTables(domainconfig.DefaultDomainConfig())[domainconfig.RequestUserDetails]
	return NewEnricher(graph, fields, 4, time.Second, recorder, logger)
}

func comment(id, userID, userName string) entities.Record {
	return entities.Record{
		"id":         id,
		"message":    "hello from " + userName,
		"like_count": 1,
		"post_id":    "123",
		"from": entities.Record{
			"id":      userID,
			"name":    userName,
			"picture": "small.jpg",
			"link":    "https://facebook.com/" + userID,
		},
	}
}

func TestEnricher_PartialFailureKeepsEveryItem(t *testing.T) {
	graph := new(mocks.MockGraphAPI)
	graph.On("GetObject", mock.Anything, "A", mocks.Fields(userFields)).
		Return(entities.Record{"id": "A", "name": "Alice", "email": "a@example.com", "picture": "large.jpg"}, nil)
	graph.On("GetObject", mock.Anything, "B", mocks.Fields(userFields)).
		Return(nil, errors.NewUpstreamError(403, 200, "permissions error"))

	core, logs := observer.New(zap.WarnLevel)
	recorder := &fakeRecorder{}
	e := newTestEnricher(graph, recorder, zap.New(core))

	items := []entities.Record{comment("c1", "A", "Alice"), comment("c2", "B", "Bob")}
	before := items[1].Clone()

	results := e.Enrich(context.Background(), entities.KindComment, items)

	require.Len(t, results, 2)
	assert.Equal(t, Enriched, results[0].Status)
	assert.Equal(t, Unenriched, results[1].Status)
	assert.Equal(t, "B", results[1].Subject)
	assert.Error(t, results[1].Reason)

	from, _ := items[0].Nested("from")
	assert.Equal(t, "a@example.com", from["email"])
	assert.Equal(t, "large.jpg", from["picture"])

	assert.Equal(t, before, items[1])

	assert.Equal(t, 1, logs.FilterMessage("Could not get additional details").Len())
	assert.ElementsMatch(t, []recordedOutcome{{"comment", true}, {"comment", false}}, recorder.outcomes)
	graph.AssertExpectations(t)
}

func TestEnricher_LikesMergeIntoItem(t *testing.T) {
	graph := new(mocks.MockGraphAPI)
	graph.On("GetObject", mock.Anything, "u1", mock.Anything).
		Return(entities.Record{"id": "u1", "email": "u1@example.com"}, nil)

	e := newTestEnricher(graph, nil, nil)
	items := []entities.Record{{"id": "u1", "name": "Una", "post_id": "p"}}

	results := e.Enrich(context.Background(), entities.KindLike, items)

	assert.Equal(t, Enriched, results[0].Status)
	assert.Equal(t, "u1@example.com", items[0]["email"])
	assert.Equal(t, "p", items[0]["post_id"])
}

func TestEnricher_ItemWithoutSubjectIsNotLookedUp(t *testing.T) {
	graph := new(mocks.MockGraphAPI)
	core, logs := observer.New(zap.DebugLevel)
	e := newTestEnricher(graph, nil, zap.New(core))

	items := []entities.Record{{"id": "c1", "message": "anonymous"}}
	results := e.Enrich(context.Background(), entities.KindComment, items)

	assert.Equal(t, Unenriched, results[0].Status)
	assert.True(t, stderrors.Is(results[0].Reason, ErrNoSubject))
	assert.Equal(t, 1, logs.FilterLevelExact(zap.DebugLevel).Len())
	graph.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnricher_OtherKindsAreSkipped(t *testing.T) {
	graph := new(mocks.MockGraphAPI)
	e := newTestEnricher(graph, nil, nil)

	results := e.Enrich(context.Background(), entities.KindPost, []entities.Record{{"id": "p1"}})

	assert.Equal(t, Unenriched, results[0].Status)
	graph.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnricher_PanicInLookupIsContained(t *testing.T) {
	graph := new(mocks.MockGraphAPI)
	graph.On("GetObject", mock.Anything, "u1", mock.Anything).Panic("boom")

	e := newTestEnricher(graph, nil, nil)
	items := []entities.Record{{"id": "u1", "name": "Una"}}
	before := items[0].Clone()

	results := e.Enrich(context.Background(), entities.KindLike, items)

	assert.Equal(t, Unenriched, results[0].Status)
	assert.Equal(t, before, items[0])
}

func TestMergeDetail_IsIdempotent(t *testing.T) {
	target := entities.Record{"id": "1", "name": "old"}
	detail := entities.Record{"name": "new", "picture": map[string]interface{}{"url": "x"}}

	MergeDetail(target, detail)
	once := target.Clone()
	MergeDetail(target, detail)

	assert.Equal(t, once, target)
	assert.Equal(t, "new", target["name"])
}
