package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/store"
)

func TestArticleMarkdown(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	d := DisplayArticle{
		Article: content.Article{
			ID:          "1",
			Title:       "Bitcoin tops 100k",
			Source:      "CoinDesk",
			SourceURL:   "https://coindesk.com/markets/btc",
			PublishedAt: now.Add(-2 * time.Hour),
			Summary:     "Short version.",
			Content:     content.Paragraphs("First.\n\nSecond."),
			Category:    "crypto",
		},
		Stats: store.Stats{Likes: 1500, Dislikes: 2, Saves: 30},
	}
	detail := &content.Detail{
		Related: []content.Article{{Title: "Other story", Slug: "other-story"}},
		Adjacent: content.Adjacent{
			Prev: &content.Article{Title: "Older", Slug: "older"},
		},
	}

	md := ArticleMarkdown(d, detail, constants.English, now)

	assert.Contains(t, md, "# Bitcoin tops 100k")
	assert.Contains(t, md, "_CoinDesk · 2h · CRYPTO_")
	assert.Contains(t, md, "1.5K likes · 2 dislikes · 30 saves · super-hot")
	assert.Contains(t, md, "**AI Summary**")
	assert.Contains(t, md, "First.\n\nSecond.")
	assert.Contains(t, md, "[coindesk.com](https://coindesk.com/markets/btc)")
	assert.Contains(t, md, "← Previous: Older (`older`)")
	assert.NotContains(t, md, "→")
	assert.Contains(t, md, "## Popular Content")
	assert.Contains(t, md, "- Other story (`other-story`)")
}

func TestArticleMarkdownWithoutDetail(t *testing.T) {
	d := DisplayArticle{Article: content.Article{Title: "Plain"}}

	md := ArticleMarkdown(d, nil, constants.German, time.Now())

	assert.Contains(t, md, "# Plain")
	assert.Contains(t, md, "_NEWS_")
	assert.NotContains(t, md, "Beliebte Inhalte")
}
