package miniflux

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mf "miniflux.app/client"

	"github.com/guyfedwards/newsdesk/internal/content"
)

type fakeAPI struct {
	entries    mf.Entries
	categories mf.Categories
	filters    []*mf.Filter
}

func (f *fakeAPI) Entries(filter *mf.Filter) (*mf.EntryResultSet, error) {
	f.filters = append(f.filters, filter)
	var out mf.Entries
	for _, e := range f.entries {
		if filter.CategoryID != 0 && (e.Feed == nil || e.Feed.Category == nil || e.Feed.Category.ID != filter.CategoryID) {
			continue
		}
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		out = append(out, e)
	}
	return &mf.EntryResultSet{Total: len(out), Entries: out}, nil
}

func (f *fakeAPI) Entry(id int64) (*mf.Entry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, mf.ErrNotFound
}

func (f *fakeAPI) Categories() (mf.Categories, error) {
	return f.categories, nil
}

func newFake() *fakeAPI {
	crypto := &mf.Category{ID: 7, Title: "Crypto"}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &fakeAPI{
		categories: mf.Categories{crypto},
		entries: mf.Entries{
			{ID: 2, Title: "Ether", Date: now, URL: "https://e.example/2", Content: "<p>Ether up</p>", Feed: &mf.Feed{Title: "Chain", Category: crypto}},
			{ID: 1, Title: "Rates", Date: now.Add(-time.Hour), Feed: &mf.Feed{Title: "Macro", Category: &mf.Category{ID: 3, Title: "Macro"}}},
		},
	}
}

func TestArticlesFilter(t *testing.T) {
	api := newFake()
	s := NewWithAPI(api)

	before := time.Unix(1700000000, 0)
	got, err := s.Articles(context.Background(), &before, "crypto", 30)
	require.NoError(t, err)
	require.Len(t, got, 1)

	a := got[0]
	assert.Equal(t, "mf-2", a.ID)
	assert.Equal(t, "mf-2", a.Slug)
	assert.Equal(t, "crypto", a.Category)
	assert.Equal(t, "Chain", a.Source)
	assert.Equal(t, "Ether up", a.Content[0].Text())

	f := api.filters[0]
	assert.Equal(t, int64(1700000000), f.Before)
	assert.Equal(t, int64(7), f.CategoryID)
	assert.Equal(t, "desc", f.Direction)
	assert.Equal(t, 30, f.Limit)
}

func TestArticlesUnknownCategory(t *testing.T) {
	got, err := NewWithAPI(newFake()).Articles(context.Background(), nil, "ai", 30)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestArticleBySlug(t *testing.T) {
	s := NewWithAPI(newFake())

	a, err := s.ArticleBySlug(context.Background(), "mf-1")
	require.NoError(t, err)
	assert.Equal(t, "Rates", a.Title)

	_, err = s.ArticleBySlug(context.Background(), "mf-99")
	assert.ErrorIs(t, err, content.ErrNotFound)

	_, err = s.ArticleBySlug(context.Background(), "bitcoin")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestRelatedSkipsCurrent(t *testing.T) {
	got, err := NewWithAPI(newFake()).Related(context.Background(), "mf-2", 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "mf-1", got[0].ID)
}

func TestNoSettingsOrTweets(t *testing.T) {
	s := NewWithAPI(newFake())
	_, err := s.SiteSettings(context.Background())
	assert.ErrorIs(t, err, content.ErrNotFound)

	tweets, err := s.Tweets(context.Background(), 20)
	assert.NoError(t, err)
	assert.Empty(t, tweets)
}
