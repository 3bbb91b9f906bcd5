// Package miniflux serves articles from a Miniflux instance.
package miniflux

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	mf "miniflux.app/client"

	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/content/htmltext"
)

const slugPrefix = "mf-"

// API is the part of the Miniflux client the source uses.
type API interface {
	Entries(filter *mf.Filter) (*mf.EntryResultSet, error)
	Entry(entryID int64) (*mf.Entry, error)
	Categories() (mf.Categories, error)
}

type Source struct {
	api API

	mu         sync.Mutex
	categories map[string]int64
}

func New(host, apiKey string) *Source {
	return NewWithAPI(mf.New(host, apiKey))
}

func NewWithAPI(api API) *Source {
	return &Source{api: api}
}

func (s *Source) Articles(ctx context.Context, before *time.Time, category string, limit int) ([]content.Article, error) {
	filter := &mf.Filter{
		Limit:     limit,
		Order:     "published_at",
		Direction: "desc",
	}
	if before != nil {
		filter.Before = before.Unix()
	}
	if category != "" {
		id, err := s.categoryID(category)
		if err != nil {
			return nil, fmt.Errorf("miniflux.Articles: %w", err)
		}
		if id == 0 {
			return nil, nil
		}
		filter.CategoryID = id
	}

	res, err := s.api.Entries(filter)
	if err != nil {
		return nil, fmt.Errorf("miniflux.Articles: %w", err)
	}
	out := make([]content.Article, 0, len(res.Entries))
	for _, e := range res.Entries {
		out = append(out, toArticle(e))
	}
	return out, nil
}

func (s *Source) ArticleBySlug(ctx context.Context, slug string) (*content.Article, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(slug, slugPrefix), 10, 64)
	if err != nil || !strings.HasPrefix(slug, slugPrefix) {
		return nil, content.ErrNotFound
	}
	e, err := s.api.Entry(id)
	if errors.Is(err, mf.ErrNotFound) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("miniflux.ArticleBySlug: %w", err)
	}
	a := toArticle(e)
	return &a, nil
}

func (s *Source) Related(ctx context.Context, excludeID string, limit int) ([]content.Article, error) {
	res, err := s.api.Entries(&mf.Filter{Limit: limit + 1, Order: "published_at", Direction: "desc"})
	if err != nil {
		return nil, fmt.Errorf("miniflux.Related: %w", err)
	}
	out := make([]content.Article, 0, limit)
	for _, e := range res.Entries {
		if len(out) == limit {
			break
		}
		a := toArticle(e)
		if a.ID == excludeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *Source) Previous(ctx context.Context, t time.Time) (*content.Article, error) {
	return s.first(&mf.Filter{Limit: 1, Order: "published_at", Direction: "desc", Before: t.Unix()})
}

func (s *Source) Next(ctx context.Context, t time.Time) (*content.Article, error) {
	return s.first(&mf.Filter{Limit: 1, Order: "published_at", Direction: "asc", After: t.Unix()})
}

func (s *Source) first(filter *mf.Filter) (*content.Article, error) {
	res, err := s.api.Entries(filter)
	if err != nil {
		return nil, fmt.Errorf("miniflux.first: %w", err)
	}
	if len(res.Entries) == 0 {
		return nil, nil
	}
	a := toArticle(res.Entries[0])
	return &a, nil
}

// Miniflux has no site settings document.
func (s *Source) SiteSettings(ctx context.Context) (*content.SiteSettings, error) {
	return nil, content.ErrNotFound
}

func (s *Source) Tweets(ctx context.Context, limit int) ([]content.Tweet, error) {
	return nil, nil
}

// categoryID maps a category name to its Miniflux id, 0 when unknown. The
// mapping is fetched once.
func (s *Source) categoryID(name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categories == nil {
		cats, err := s.api.Categories()
		if err != nil {
			return 0, err
		}
		s.categories = make(map[string]int64, len(cats))
		for _, c := range cats {
			s.categories[strings.ToLower(c.Title)] = c.ID
		}
	}
	return s.categories[strings.ToLower(name)], nil
}

func toArticle(e *mf.Entry) content.Article {
	a := content.Article{
		ID:          slugPrefix + strconv.FormatInt(e.ID, 10),
		Title:       e.Title,
		PublishedAt: e.Date,
		Content:     htmltext.Blocks(e.Content),
		SourceURL:   e.URL,
		Tags:        e.Tags,
	}
	a.Slug = a.ID
	if e.Feed != nil {
		a.Source = e.Feed.Title
		if e.Feed.Category != nil {
			a.Category = strings.ToLower(e.Feed.Category.Title)
		}
	}
	return a
}
