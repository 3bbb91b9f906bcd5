package sanity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guyfedwards/newsdesk/internal/content"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, Dataset: "production", APIVersion: "2024-01-01", Token: "secret"})
	require.NoError(t, err)
	return c
}

func TestNewRequiresProject(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewEndpoint(t *testing.T) {
	c, err := New(Config{ProjectID: "abc123", UseCDN: true})
	require.NoError(t, err)
	assert.Equal(t, "https://abc123.apicdn.sanity.io/v"+DefaultAPIVersion+"/data/query/production", c.endpoint)
}

func TestArticlesSendsCursorAndCategory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Contains(t, q.Get("query"), "category == $category")
		assert.Contains(t, q.Get("query"), "[0...30]")
		assert.Equal(t, `"crypto"`, q.Get("$category"))
		assert.Equal(t, `"2025-01-02T03:04:05.000Z"`, q.Get("$lastPublishedAt"))

		_, _ = w.Write([]byte(`{"ms":3,"result":[
			{"_id":"a1","title":"Bitcoin rises","slug":{"current":"bitcoin-rises"},"publishedAt":"2025-01-02T03:00:00Z","category":"crypto","likes":5,"tags":["BTC"]}
		]}`))
	})

	before := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	articles, err := c.Articles(context.Background(), &before, "crypto", 30)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "a1", articles[0].ID)
	assert.Equal(t, "bitcoin-rises", articles[0].Slug)
	assert.Equal(t, 5, articles[0].Likes)
	assert.Equal(t, []string{"BTC"}, articles[0].Tags)
}

func TestArticlesWithoutCursorSendsNull(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "null", q.Get("$lastPublishedAt"))
		assert.NotContains(t, q.Get("query"), "$category")
		_, _ = w.Write([]byte(`{"result":[]}`))
	})

	articles, err := c.Articles(context.Background(), nil, "", 30)
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestArticleBySlugNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":null}`))
	})

	_, err := c.ArticleBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestArticleBySlugKeepsRichContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `"hello"`, r.URL.Query().Get("$slug"))
		_, _ = w.Write([]byte(`{"result":{"_id":"x","title":"Hello","slug":{"current":"hello"},"content":[
			{"_type":"block","style":"normal","children":[{"_type":"span","text":"Bitcoin","marks":["strong"]}]},
			{"_type":"image","asset":{"_ref":"image-abc"}}
		]}}`))
	})

	a, err := c.ArticleBySlug(context.Background(), "hello")
	require.NoError(t, err)
	require.Len(t, a.Content, 2)
	assert.Equal(t, "Bitcoin", a.Content[0].Text())

	out, err := json.Marshal(a.Content[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"_type":"image","asset":{"_ref":"image-abc"}}`, string(out))
}

func TestNeighbourMissingIsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Query().Get("query"), "order(publishedAt asc)") {
			_, _ = w.Write([]byte(`{"result":null}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":{"_id":"p","title":"Prev","slug":{"current":"prev"}}}`))
	})

	adj, err := content.AdjacentArticles(context.Background(), c, time.Now())
	require.NoError(t, err)
	require.NotNil(t, adj.Prev)
	assert.Equal(t, "prev", adj.Prev.Slug)
	assert.Nil(t, adj.Next)
}

func TestNeighbourSendsMillisecondTimestamp(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `"2025-03-04T10:00:00.000Z"`, r.URL.Query().Get("$publishedAt"))
		_, _ = w.Write([]byte(`{"result":null}`))
	})

	at := time.Date(2025, 3, 4, 11, 0, 0, 0, time.FixedZone("CET", 3600))
	prev, err := c.Previous(context.Background(), at)
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"expected '}' following object body"}}`))
	})

	_, err := c.Tweets(context.Background(), 20)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
	assert.Contains(t, serr.Message, "expected")
}

func TestSiteSettings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"title":"Desk","sidebarAd":{"url":"https://ads.example","active":true,"image":{"asset":{"_ref":"image-1"}}},"topNotification":{"text":"hi","active":true}}}`))
	})

	s, err := c.SiteSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Desk", s.Title)
	assert.True(t, s.SidebarAd.Active)
	assert.Equal(t, "image-1", s.SidebarAd.Image.Ref)
	assert.True(t, s.TopNotification.Active)
	assert.False(t, s.AINotification.Active)
}
