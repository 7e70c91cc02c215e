package services

import (
	"fmt"

	"pagegraph/domain/core/entities"

	"go.uber.org/zap"
)

// Issue describes a record that failed schema validation. Such records are
// still returned; issues only feed logs and tests.
type Issue struct {
	Index   int
	ID      string
	Missing []string
	Reason  string
}

func (i Issue) String() string {
	if i.Reason != "" {
		return fmt.Sprintf("item %d: %s", i.Index, i.Reason)
	}
	return fmt.Sprintf("item %d (%s): missing %v", i.Index, i.ID, i.Missing)
}

// Normalizer shapes raw upstream payloads into the response schemas
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a normalizer
func NewNormalizer(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{logger: logger}
}

// Object normalizes a single upstream object. Fields are passed through
// unchanged; missing required fields are reported, never fatal.
func (n *Normalizer) Object(kind entities.Kind, raw entities.Record) (entities.Record, []Issue) {
	if raw == nil {
		raw = entities.Record{}
	}
	schema := entities.SchemaFor(kind)
	var issues []Issue
	if missing := schema.Missing(raw); len(missing) > 0 {
		issues = append(issues, Issue{Index: 0, ID: raw.ID(), Missing: missing})
	}
	n.report(kind, "", issues)
	n.traceExtras(schema, raw)
	return raw, issues
}

// Collection normalizes one upstream page. For comments and likes parentID is
// the post id and is injected as post_id into every item, including items
// that are otherwise malformed. No item is ever dropped.
func (n *Normalizer) Collection(kind entities.Kind, raw *entities.RawCollection, parentID string) (*entities.PagedCollection, []Issue) {
	out := &entities.PagedCollection{Kind: kind, Items: []entities.Record{}}
	if raw == nil {
		return out, nil
	}
	out.Paging = raw.Paging

	schema := entities.SchemaFor(kind)
	inject := injectsParent(kind) && parentID != ""

	var issues []Issue
	for i, item := range raw.Data {
		rec, ok := entities.AsRecord(item)
		if !ok {
			// Keep the entry; wrap it so it can still carry post_id.
			rec = entities.Record{entities.FieldValue: item}
			issues = append(issues, Issue{Index: i, Reason: fmt.Sprintf("item is %T, not an object", item)})
		}
		if inject {
			rec[entities.FieldPostID] = parentID
		}
		if ok {
			if missing := schema.Missing(rec); len(missing) > 0 {
				issues = append(issues, Issue{Index: i, ID: rec.ID(), Missing: missing})
			}
			n.traceExtras(schema, rec)
		}
		out.Items = append(out.Items, rec)
	}

	n.report(kind, parentID, issues)
	return out, issues
}

// injectsParent reports whether items of kind carry a post_id back-reference
func injectsParent(kind entities.Kind) bool {
	return kind == entities.KindComment || kind == entities.KindLike
}

func (n *Normalizer) report(kind entities.Kind, parentID string, issues []Issue) {
	for _, issue := range issues {
		n.logger.Warn("Malformed upstream record",
			zap.String("kind", string(kind)),
			zap.String("parentID", parentID),
			zap.String("issue", issue.String()),
		)
	}
}

// traceExtras logs fields the schema does not model. They stay in the record.
func (n *Normalizer) traceExtras(schema entities.Schema, rec entities.Record) {
	if ce := n.logger.Check(zap.DebugLevel, "Passing through unmodeled fields"); ce != nil {
		var extras []string
		for k := range rec {
			if !schema.IsKnown(k) {
				extras = append(extras, k)
			}
		}
		if len(extras) > 0 {
			ce.Write(zap.String("kind", string(schema.Kind)), zap.Strings("fields", extras))
		}
	}
}
