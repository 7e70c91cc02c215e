package queries

import (
	"testing"

	"pagegraph/application/queries/bus"
	"pagegraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_LimitBounds(t *testing.T) {
	tests := []struct {
		name    string
		query   bus.Query
		wantErr bool
	}{
		{"posts lower bound", ListPostsQuery{PageID: "me", Limit: 1}, false},
		{"posts upper bound", ListPostsQuery{PageID: "me", Limit: 100}, false},
		{"posts zero", ListPostsQuery{PageID: "me", Limit: 0}, true},
		{"posts over", ListPostsQuery{PageID: "me", Limit: 101}, true},
		{"comments negative", ListCommentsQuery{PostID: "1_2", Limit: -1}, true},
		{"likes over", ListLikesQuery{PostID: "1_2", Limit: 500}, true},
		{"fans ok", GetFansQuery{PageID: "me", Limit: 25}, false},
		{"mentions over", ListMentionsQuery{PageID: "me", Limit: 101}, true},
		{"insights zero", GetInsightsQuery{PageID: "me"}, true},
		{"conversation detail over", GetConversationQuery{ConversationID: "t_1", Limit: 101}, true},
		{"conversations ok", ListConversationsQuery{PageID: "me", Limit: 25}, false},
		{"search ok", SearchPostsQuery{PageID: "me", Text: "hello", Limit: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.Contains(t, errors.GetAppError(err).Details, "limit")
		})
	}
}

func TestQueries_IdentifiersCannotEscapePath(t *testing.T) {
	for _, id := range []string{"123/comments", "me?access_token=x", "a#b", "a&b"} {
		t.Run(id, func(t *testing.T) {
			err := GetPostQuery{PostID: id}.Validate()
			require.Error(t, err)
			assert.Contains(t, errors.GetAppError(err).Details, "post_id")
		})
	}

	assert.NoError(t, GetPostQuery{PostID: "123_456"}.Validate())
}

func TestQueries_RequiredIdentifiers(t *testing.T) {
	err := GetPageInfoQuery{}.Validate()

	require.Error(t, err)
	assert.Contains(t, errors.GetAppError(err).Details, "page_id is required")
}

func TestQueries_InsightsPeriodIsNotCheckedHere(t *testing.T) {
	assert.NoError(t, GetInsightsQuery{PageID: "me", Period: "bogus", Limit: 10}.Validate())
}
