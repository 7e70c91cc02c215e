package config

import (
	vo "pagegraph/domain/core/valueobjects"
)

// RequestKind identifies one simplified request type of the gateway
type RequestKind string

const (
	RequestPageInfo           RequestKind = "page_info"
	RequestPosts              RequestKind = "posts"
	RequestPostDetails        RequestKind = "post_details"
	RequestComments           RequestKind = "comments"
	RequestLikes              RequestKind = "likes"
	RequestFans               RequestKind = "fans"
	RequestMentions           RequestKind = "mentions"
	RequestConversations      RequestKind = "conversations"
	RequestConversationDetail RequestKind = "conversation_detail"
	RequestInsights           RequestKind = "insights"
	RequestSearch             RequestKind = "search"
	RequestUserDetails        RequestKind = "user_details"
)

// Upstream connection names
const (
	ConnectionPosts         = "posts"
	ConnectionComments      = "comments"
	ConnectionLikes         = "likes"
	ConnectionTagged        = "tagged"
	ConnectionConversations = "conversations"
	ConnectionInsights      = "insights"
)

// Insight periods accepted by the Graph API
var InsightPeriods = []string{"day", "week", "month", "lifetime"}

// DefaultInsightMetrics is used when an insights request names no metric
var DefaultInsightMetrics = []string{
	"page_impressions",
	"page_engaged_users",
	"page_post_engagements",
	"page_fans",
	"page_views_total",
}

// FansMetric is the single insights metric behind the fans endpoint
const FansMetric = "page_fans"

// DefaultInsightPeriod is used when an insights request names no period
const DefaultInsightPeriod = "day"

func postFields() vo.FieldSpec {
	return vo.NewFieldSpec(
		vo.F("id"),
		vo.F("message"),
		vo.F("created_time"),
		vo.F("permalink_url"),
		vo.F("likes").Summary(),
		vo.F("comments").Summary(),
		vo.F("shares"),
		vo.F("attachments"),
	)
}

// ConversationFields is the conversation selection with messages bounded to
// messageLimit. The detail variant expands the sender.
func ConversationFields(messageLimit int, detailed bool) vo.FieldSpec {
	from := vo.F("from")
	if detailed {
		from = from.WithNames("id", "name", "picture")
	}
	return vo.NewFieldSpec(
		vo.F("id"),
		vo.F("link"),
		vo.F("updated_time"),
		vo.F("messages").Limit(messageLimit).With(vo.F("message"), from, vo.F("created_time")),
	)
}

// DefaultFieldTables maps every request kind with a field selection to its
// default fields. Insights and fans select metrics instead of fields.
func DefaultFieldTables(c *DomainConfig) map[RequestKind]vo.FieldSpec {
	return map[RequestKind]vo.FieldSpec{
		RequestPageInfo: vo.FieldSpecFromNames(
			"id", "name", "about", "category", "fan_count", "link", "picture", "website",
		),
		RequestPosts:       postFields(),
		RequestPostDetails: postFields(),
		RequestComments: vo.NewFieldSpec(
			vo.F("id"),
			vo.F("message"),
			vo.F("created_time"),
			vo.F("from").WithNames("id", "name", "picture", "link"),
			vo.F("like_count"),
		),
		RequestLikes:         vo.FieldSpecFromNames("id", "name", "picture", "link"),
		RequestMentions:      vo.FieldSpecFromNames("id", "message", "created_time", "from", "story"),
		RequestConversations: ConversationFields(c.ConversationMessagesLimit, false),
		RequestSearch:        vo.FieldSpecFromNames("id", "message", "created_time", "from", "permalink_url"),
		RequestUserDetails: vo.NewFieldSpec(
			vo.F("id"),
			vo.F("name"),
			vo.F("picture").Type("large"),
			vo.F("link"),
			vo.F("email"),
		),
	}
}
