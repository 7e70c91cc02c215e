package services

import (
	"fmt"
	"strings"

	domainconfig "pagegraph/domain/config"
	vo "pagegraph/domain/core/valueobjects"
	"pagegraph/pkg/errors"
)

// ComposeParams are the request parameters that shape an upstream query
type ComposeParams struct {
	// Limit is the client limit; used by request kinds with a nested limit.
	Limit int
	// Override is a raw fields expression that replaces the default list
	// when non-empty. It is neither parsed nor checked.
	Override string
	// Metrics and Period apply to insights only.
	Metrics []string
	Period  string
}

// UpstreamQuery is what the composer hands to the graph client: the field
// selection and any extra query parameters.
type UpstreamQuery struct {
	Fields vo.FieldSpec
	Params map[string]string
}

// QueryComposer builds the upstream field selection per request kind. It is
// pure: the same kind and parameters always produce the same query.
type QueryComposer struct {
	config *domainconfig.DomainConfig
	tables map[domainconfig.RequestKind]vo.FieldSpec
}

// NewQueryComposer creates a composer over the default field tables
func NewQueryComposer(cfg *domainconfig.DomainConfig) *QueryComposer {
	return &QueryComposer{
		config: cfg,
		tables: domainconfig.DefaultFieldTables(cfg),
	}
}

// Compose returns the upstream query for kind. Only an invalid insights period
// or an unknown kind fail, both with an InvalidArgument error.
func (c *QueryComposer) Compose(kind domainconfig.RequestKind, p ComposeParams) (UpstreamQuery, error) {
	switch kind {
	case domainconfig.RequestInsights:
		return c.insights(p)
	case domainconfig.RequestFans:
		return UpstreamQuery{
			Fields: vo.FieldSpec{},
			Params: map[string]string{"metric": domainconfig.FansMetric},
		}, nil
	}

	if p.Override != "" {
		return UpstreamQuery{Fields: vo.FieldSpecFromExpression(p.Override), Params: map[string]string{}}, nil
	}

	if kind == domainconfig.RequestConversationDetail {
		return UpstreamQuery{
			Fields: domainconfig.ConversationFields(p.Limit, true),
			Params: map[string]string{},
		}, nil
	}

	fields, ok := c.tables[kind]
	if !ok {
		return UpstreamQuery{}, errors.NewInvalidArgument(fmt.Sprintf("unsupported request kind %q", kind))
	}
	return UpstreamQuery{Fields: fields, Params: map[string]string{}}, nil
}

func (c *QueryComposer) insights(p ComposeParams) (UpstreamQuery, error) {
	period := p.Period
	if period == "" {
		period = domainconfig.DefaultInsightPeriod
	}
	if !ValidPeriod(period) {
		return UpstreamQuery{}, errors.NewInvalidArgument("invalid period").
			WithDetails(fmt.Sprintf("period must be one of %s, got %q",
				strings.Join(domainconfig.InsightPeriods, ", "), period))
	}

	metrics := splitList(p.Metrics)
	if len(metrics) == 0 {
		metrics = domainconfig.DefaultInsightMetrics
	}

	return UpstreamQuery{
		Fields: vo.FieldSpec{},
		Params: map[string]string{
			"metric": strings.Join(metrics, ","),
			"period": period,
		},
	}, nil
}

// ValidPeriod reports whether period is an accepted insights period
func ValidPeriod(period string) bool {
	for _, p := range domainconfig.InsightPeriods {
		if p == period {
			return true
		}
	}
	return false
}

// splitList flattens repeated and comma separated values, dropping blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
