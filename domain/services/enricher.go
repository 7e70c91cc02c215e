package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"pagegraph/domain/core/entities"
	vo "pagegraph/domain/core/valueobjects"
	"pagegraph/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoSubject is the reason an item was not looked up: it carries no
// identifier for the commenter or liker.
var ErrNoSubject = stderrors.New("item has no subject id")

// ObjectFetcher performs the secondary per-identifier lookup
type ObjectFetcher interface {
	GetObject(ctx context.Context, id string, fields vo.FieldSpec) (entities.Record, error)
}

// EnrichmentRecorder receives one outcome per enriched item
type EnrichmentRecorder interface {
	RecordEnrichment(kind string, enriched bool)
}

// EnrichmentStatus is the per-item outcome of enrichment
type EnrichmentStatus int

const (
	Unenriched EnrichmentStatus = iota
	Enriched
)

func (s EnrichmentStatus) String() string {
	if s == Enriched {
		return "enriched"
	}
	return "unenriched"
}

// EnrichmentResult is Enriched(record) or Unenriched(record, reason). Record
// is the item itself; on the unenriched path it is exactly what the primary
// call returned.
type EnrichmentResult struct {
	Index   int
	Subject string
	Record  entities.Record
	Status  EnrichmentStatus
	Reason  error
}

// Enricher merges secondary user lookups into comment and like items.
// Each item is looked up independently; a failed lookup leaves that item
// unmodified and never fails the batch.
type Enricher struct {
	fetcher     ObjectFetcher
	fields      vo.FieldSpec
	concurrency int
	timeout     time.Duration
	recorder    EnrichmentRecorder
	logger      *zap.Logger
}

// NewEnricher creates an enricher. fields is the secondary lookup selection.
func NewEnricher(fetcher ObjectFetcher, fields vo.FieldSpec, concurrency int, timeout time.Duration, recorder EnrichmentRecorder, logger *zap.Logger) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{
		fetcher:     fetcher,
		fields:      fields,
		concurrency: concurrency,
		timeout:     timeout,
		recorder:    recorder,
		logger:      logger,
	}
}

// Applies reports whether items of kind are enriched at all
func Applies(kind entities.Kind) bool {
	return kind == entities.KindComment || kind == entities.KindLike
}

// Enrich looks up every item of a comment or like list and merges the detail
// in place. Results are returned in item order. Other kinds are returned
// unenriched without any lookup.
func (e *Enricher) Enrich(ctx context.Context, kind entities.Kind, items []entities.Record) []EnrichmentResult {
	results := make([]EnrichmentResult, len(items))
	if !Applies(kind) {
		for i, item := range items {
			results[i] = EnrichmentResult{Index: i, Record: item, Status: Unenriched, Reason: fmt.Errorf("%s is not enriched", kind)}
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(e.concurrency)

	for i := range items {
		i := i
		g.Go(func() error {
			results[i] = e.enrichOne(ctx, kind, i, items[i])
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if e.recorder != nil {
			e.recorder.RecordEnrichment(string(kind), r.Status == Enriched)
		}
		if r.Status == Unenriched {
			level := zap.WarnLevel
			if stderrors.Is(r.Reason, ErrNoSubject) {
				level = zap.DebugLevel
			}
			e.logger.Log(level, "Could not get additional details",
				zap.String("kind", string(kind)),
				zap.Int("index", r.Index),
				zap.String("subjectID", r.Subject),
				zap.Error(r.Reason),
			)
		}
	}

	return results
}

func (e *Enricher) enrichOne(ctx context.Context, kind entities.Kind, index int, item entities.Record) (res EnrichmentResult) {
	res = EnrichmentResult{Index: index, Record: item, Status: Unenriched}

	target, subject := enrichmentTarget(kind, item)
	res.Subject = subject
	if target == nil || subject == "" {
		res.Reason = ErrNoSubject
		return res
	}

	defer func() {
		if rec := recover(); rec != nil {
			res.Status = Unenriched
			res.Reason = errors.NewEnrichmentFailure(subject, fmt.Errorf("panic: %v", rec))
		}
	}()

	lookupCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	detail, err := e.fetcher.GetObject(lookupCtx, subject, e.fields)
	if err != nil {
		res.Reason = errors.NewEnrichmentFailure(subject, err)
		return res
	}
	if detail == nil {
		res.Reason = errors.NewEnrichmentFailure(subject, stderrors.New("empty detail response"))
		return res
	}

	MergeDetail(target, detail)
	res.Status = Enriched
	return res
}

// MergeDetail copies detail into target; detail fields win. Merging the same
// detail again leaves target unchanged.
func MergeDetail(target, detail entities.Record) {
	target.Merge(detail.Clone())
}

// enrichmentTarget returns the mapping that receives the detail and the id to
// look up. Comments merge into their "from" author; likes are the liker.
func enrichmentTarget(kind entities.Kind, item entities.Record) (entities.Record, string) {
	if item == nil {
		return nil, ""
	}
	switch kind {
	case entities.KindComment:
		from, ok := item.Nested(entities.FieldFrom)
		if !ok {
			return nil, ""
		}
		return from, from.ID()
	case entities.KindLike:
		return item, item.ID()
	default:
		return nil, ""
	}
}
