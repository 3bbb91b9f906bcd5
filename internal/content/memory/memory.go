// Package memory is a slice-backed content.Source. It serves the mock data
// set used when no content store is configured and backs the feed-based
// sources once their documents are fetched.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/guyfedwards/newsdesk/internal/content"
)

type Source struct {
	mu       sync.RWMutex
	articles []content.Article
	tweets   []content.Tweet
	settings *content.SiteSettings
}

type Option func(*Source)

func WithTweets(tweets []content.Tweet) Option {
	return func(s *Source) {
		s.tweets = sortedTweets(tweets)
	}
}

func WithSettings(settings *content.SiteSettings) Option {
	return func(s *Source) {
		s.settings = settings
	}
}

func New(articles []content.Article, opts ...Option) *Source {
	s := &Source{articles: sortedArticles(articles)}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Replace swaps the article set.
func (s *Source) Replace(articles []content.Article) {
	sorted := sortedArticles(articles)
	s.mu.Lock()
	s.articles = sorted
	s.mu.Unlock()
}

func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// newest first; equal timestamps keep insertion order
func sortedArticles(in []content.Article) []content.Article {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b content.Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return out
}

func sortedTweets(in []content.Tweet) []content.Tweet {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b content.Tweet) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return out
}

func (s *Source) Articles(ctx context.Context, before *time.Time, category string, limit int) ([]content.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []content.Article
	for _, a := range s.articles {
		if limit > 0 && len(out) >= limit {
			break
		}
		if category != "" && a.Category != category {
			continue
		}
		if before != nil && !a.PublishedAt.Before(*before) {
			continue
		}
		out = append(out, *a.Clone())
	}
	return out, nil
}

func (s *Source) ArticleBySlug(ctx context.Context, slug string) (*content.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.Slug == slug {
			return a.Clone(), nil
		}
	}
	return nil, content.ErrNotFound
}

func (s *Source) Related(ctx context.Context, excludeID string, limit int) ([]content.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []content.Article
	for _, a := range s.articles {
		if limit > 0 && len(out) >= limit {
			break
		}
		if a.ID == excludeID {
			continue
		}
		out = append(out, *a.Clone())
	}
	return out, nil
}

func (s *Source) Previous(ctx context.Context, t time.Time) (*content.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.PublishedAt.Before(t) {
			return a.Clone(), nil
		}
	}
	return nil, nil
}

func (s *Source) Next(ctx context.Context, t time.Time) (*content.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var next *content.Article
	for i := len(s.articles) - 1; i >= 0; i-- {
		if s.articles[i].PublishedAt.After(t) {
			next = s.articles[i].Clone()
			break
		}
	}
	return next, nil
}

func (s *Source) SiteSettings(ctx context.Context) (*content.SiteSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, content.ErrNotFound
	}
	c := *s.settings
	return &c, nil
}

func (s *Source) Tweets(ctx context.Context, limit int) ([]content.Tweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.tweets)
	if limit > 0 {
		n = min(n, limit)
	}
	return slices.Clone(s.tweets[:n]), nil
}

// Categories returns the distinct article categories in alphabetical order.
func (s *Source) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cats []string
	for _, a := range s.articles {
		if a.Category != "" && !slices.Contains(cats, a.Category) {
			cats = append(cats, a.Category)
		}
	}
	slices.SortFunc(cats, cmp.Compare[string])
	return cats
}
