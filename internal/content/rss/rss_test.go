package rss

import (
	"context"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Chain Wire</title>
  <item>
    <title>Bitcoin tops $88,000</title>
    <link>https://example.com/btc</link>
    <guid>btc-1</guid>
    <category>Crypto</category>
    <pubDate>Mon, 02 Jun 2025 10:00:00 GMT</pubDate>
    <description>&lt;p&gt;Bitcoin rallied.&lt;/p&gt;&lt;p&gt;Miners followed.&lt;/p&gt;</description>
  </item>
  <item>
    <title>Fed holds rates</title>
    <link>https://example.com/fed</link>
    <guid>fed-1</guid>
    <pubDate>Mon, 02 Jun 2025 09:00:00 GMT</pubDate>
    <description>Rates unchanged.</description>
  </item>
</channel>
</rss>`

func TestFromFeed(t *testing.T) {
	parsed, err := gofeed.NewParser().ParseString(fixture)
	require.NoError(t, err)

	s := New(nil, "", nil)
	articles := s.FromFeed(Feed{URL: "https://example.com/rss"}, parsed)
	require.Len(t, articles, 2)

	btc := articles[0]
	assert.Equal(t, "Bitcoin tops $88,000", btc.Title)
	assert.Equal(t, "Chain Wire", btc.Source)
	assert.Equal(t, "crypto", btc.Category)
	assert.Equal(t, "https://example.com/btc", btc.SourceURL)
	assert.Equal(t, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC), btc.PublishedAt.UTC())
	require.Len(t, btc.Content, 2)
	assert.Equal(t, "Bitcoin rallied.", btc.Content[0].Text())
	assert.Len(t, btc.ID, 16)

	assert.Equal(t, "", articles[1].Category)
}

func TestFromFeedConfiguredOverrides(t *testing.T) {
	parsed, err := gofeed.NewParser().ParseString(fixture)
	require.NoError(t, err)

	s := New(nil, "", nil)
	articles := s.FromFeed(Feed{URL: "u", Name: "Wire", Category: "macro"}, parsed)
	assert.Equal(t, "Wire", articles[1].Source)
	assert.Equal(t, "macro", articles[1].Category)
}

func TestRefreshServesArticles(t *testing.T) {
	parsed, err := gofeed.NewParser().ParseString(fixture)
	require.NoError(t, err)

	s := New(nil, "", nil)
	s.Replace(s.FromFeed(Feed{URL: "u"}, parsed))

	got, err := s.Articles(context.Background(), nil, "", 30)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bitcoin tops $88,000", got[0].Title)

	a, err := s.ArticleBySlug(context.Background(), got[1].Slug)
	require.NoError(t, err)
	assert.Equal(t, "Fed holds rates", a.Title)
}

func TestRefreshReportsFailures(t *testing.T) {
	s := New([]Feed{{URL: "http://127.0.0.1:1/feed"}}, "", nil)
	err := s.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "bitcoin-tops-88-000-abcdef12", Slugify("Bitcoin tops $88,000!", "abcdef1234"))
	assert.Equal(t, "abcdef12", Slugify("数据", "abcdef1234"))
}
