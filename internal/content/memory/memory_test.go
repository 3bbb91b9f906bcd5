package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guyfedwards/newsdesk/internal/content"
)

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixture() *Source {
	return New([]content.Article{
		{ID: "old", Slug: "old", Category: "ai", PublishedAt: base.Add(-3 * time.Hour)},
		{ID: "new", Slug: "new", Category: "crypto", PublishedAt: base},
		{ID: "mid", Slug: "mid", Category: "crypto", PublishedAt: base.Add(-1 * time.Hour)},
	})
}

func ids(articles []content.Article) []string {
	var out []string
	for _, a := range articles {
		out = append(out, a.ID)
	}
	return out
}

func TestArticlesNewestFirst(t *testing.T) {
	got, err := fixture().Articles(context.Background(), nil, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(got))
}

func TestArticlesCursorIsExclusive(t *testing.T) {
	cursor := base.Add(-1 * time.Hour)
	got, err := fixture().Articles(context.Background(), &cursor, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, ids(got))
}

func TestArticlesCategoryAndLimit(t *testing.T) {
	got, err := fixture().Articles(context.Background(), nil, "crypto", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ids(got))
}

func TestArticlesReturnsCopies(t *testing.T) {
	s := New([]content.Article{{ID: "a", Tags: []string{"BTC"}}})
	got, _ := s.Articles(context.Background(), nil, "", 1)
	got[0].Tags[0] = "changed"

	again, _ := s.Articles(context.Background(), nil, "", 1)
	assert.Equal(t, "BTC", again[0].Tags[0])
}

func TestArticleBySlug(t *testing.T) {
	s := fixture()
	a, err := s.ArticleBySlug(context.Background(), "mid")
	require.NoError(t, err)
	assert.Equal(t, "mid", a.ID)

	_, err = s.ArticleBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestRelatedExcludesCurrent(t *testing.T) {
	got, err := fixture().Related(context.Background(), "new", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"mid", "old"}, ids(got))
}

func TestAdjacent(t *testing.T) {
	adj, err := content.AdjacentArticles(context.Background(), fixture(), base.Add(-1*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, adj.Prev)
	require.NotNil(t, adj.Next)
	assert.Equal(t, "old", adj.Prev.ID)
	assert.Equal(t, "new", adj.Next.ID)

	adj, err = content.AdjacentArticles(context.Background(), fixture(), base)
	require.NoError(t, err)
	assert.Nil(t, adj.Next)
}

func TestLoadDetail(t *testing.T) {
	s := fixture()
	a, _ := s.ArticleBySlug(context.Background(), "mid")
	d, err := content.LoadDetail(context.Background(), s, a, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, ids(d.Related))
	assert.Equal(t, "old", d.Adjacent.Prev.ID)
}

func TestSettingsMissing(t *testing.T) {
	_, err := New(nil).SiteSettings(context.Background())
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestTweetsLimit(t *testing.T) {
	s := New(nil, WithTweets([]content.Tweet{
		{ID: "t1", PublishedAt: base.Add(-time.Minute)},
		{ID: "t2", PublishedAt: base},
	}))
	got, err := s.Tweets(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)
}

func TestMock(t *testing.T) {
	s := Mock(base)
	assert.Equal(t, 8, s.Len())
	assert.Equal(t, []string{"crypto"}, s.Categories())
}
