package services

import (
	"testing"

	domainconfig "pagegraph/domain/config"
	"pagegraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newComposer() *QueryComposer {
	return NewQueryComposer(domainconfig.DefaultDomainConfig())
}

func TestQueryComposer_DefaultFields(t *testing.T) {
	tests := []struct {
		kind domainconfig.RequestKind
		want string
	}{
		{domainconfig.RequestPageInfo, "id,name,about,category,fan_count,link,picture,website"},
		{domainconfig.RequestPosts, "id,message,created_time,permalink_url,likes.summary(true),comments.summary(true),shares,attachments"},
		{domainconfig.RequestPostDetails, "id,message,created_time,permalink_url,likes.summary(true),comments.summary(true),shares,attachments"},
		{domainconfig.RequestComments, "id,message,created_time,from{id,name,picture,link},like_count"},
		{domainconfig.RequestLikes, "id,name,picture,link"},
		{domainconfig.RequestMentions, "id,message,created_time,from,story"},
		{domainconfig.RequestConversations, "id,link,updated_time,messages.limit(10){message,from,created_time}"},
		{domainconfig.RequestSearch, "id,message,created_time,from,permalink_url"},
		{domainconfig.RequestUserDetails, "id,name,picture.type(large),link,email"},
	}

	c := newComposer()
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			q, err := c.Compose(tt.kind, ComposeParams{Limit: 25})
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Fields.String())
			assert.Empty(t, q.Params)
		})
	}
}

func TestQueryComposer_ConversationDetailUsesCallerLimit(t *testing.T) {
	q, err := newComposer().Compose(domainconfig.RequestConversationDetail, ComposeParams{Limit: 7})

	require.NoError(t, err)
	assert.Equal(t, "id,link,updated_time,messages.limit(7){message,from{id,name,picture},created_time}", q.Fields.String())
}

func TestQueryComposer_OverrideReplacesDefaults(t *testing.T) {
	q, err := newComposer().Compose(domainconfig.RequestPageInfo, ComposeParams{
		Override: "id,name,not_a_real_field",
	})

	require.NoError(t, err)
	assert.Equal(t, "id,name,not_a_real_field", q.Fields.String())
}

func TestQueryComposer_OverrideIsSentVerbatim(t *testing.T) {
	for _, expr := range []string{
		"id,picture{id,name},cover{id,name}",
		"id,name,id",
		"posts.limit(2){id,comments{from{id}}}",
	} {
		t.Run(expr, func(t *testing.T) {
			q, err := newComposer().Compose(domainconfig.RequestPageInfo, ComposeParams{Override: expr})
			require.NoError(t, err)
			assert.Equal(t, expr, q.Fields.String())
		})
	}
}

func TestQueryComposer_Insights(t *testing.T) {
	c := newComposer()

	t.Run("defaults", func(t *testing.T) {
		q, err := c.Compose(domainconfig.RequestInsights, ComposeParams{})
		require.NoError(t, err)
		assert.True(t, q.Fields.IsEmpty())
		assert.Equal(t, "page_impressions,page_engaged_users,page_post_engagements,page_fans,page_views_total", q.Params["metric"])
		assert.Equal(t, "day", q.Params["period"])
	})

	t.Run("repeated and comma separated metrics", func(t *testing.T) {
		q, err := c.Compose(domainconfig.RequestInsights, ComposeParams{
			Metrics: []string{"page_fans, page_views_total", "page_impressions"},
			Period:  "week",
		})
		require.NoError(t, err)
		assert.Equal(t, "page_fans,page_views_total,page_impressions", q.Params["metric"])
		assert.Equal(t, "week", q.Params["period"])
	})

	t.Run("invalid period", func(t *testing.T) {
		_, err := c.Compose(domainconfig.RequestInsights, ComposeParams{Period: "bogus"})
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Contains(t, errors.GetAppError(err).Details, "bogus")
	})

	for _, period := range domainconfig.InsightPeriods {
		t.Run("accepts "+period, func(t *testing.T) {
			_, err := c.Compose(domainconfig.RequestInsights, ComposeParams{Period: period})
			assert.NoError(t, err)
		})
	}
}

func TestQueryComposer_Fans(t *testing.T) {
	q, err := newComposer().Compose(domainconfig.RequestFans, ComposeParams{Limit: 5})

	require.NoError(t, err)
	assert.True(t, q.Fields.IsEmpty())
	assert.Equal(t, map[string]string{"metric": "page_fans"}, q.Params)
}

func TestQueryComposer_UnknownKind(t *testing.T) {
	_, err := newComposer().Compose(domainconfig.RequestKind("nope"), ComposeParams{})

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestQueryComposer_IsDeterministic(t *testing.T) {
	c := newComposer()
	p := ComposeParams{Limit: 3}

	a, err := c.Compose(domainconfig.RequestConversationDetail, p)
	require.NoError(t, err)
	b, err := c.Compose(domainconfig.RequestConversationDetail, p)
	require.NoError(t, err)

	assert.Equal(t, a.Fields.String(), b.Fields.String())
}
