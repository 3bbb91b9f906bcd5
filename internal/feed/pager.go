// Package feed turns the content store's article stream into what the user
// sees: incrementally loaded pages, reconciled counters, pinned-first order
// and translated text.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
)

// Pager accumulates pages of one category, newest first, using the
// publication time of the last loaded article as an exclusive cursor.
// A Pager is not safe for concurrent use.
type Pager struct {
	src      content.Source
	pageSize int
	category string
	articles []content.Article
	hasMore  bool
}

func NewPager(src content.Source, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = constants.PageSize
	}
	return &Pager{src: src, pageSize: pageSize, hasMore: true}
}

// Reset discards everything loaded so far and starts over from initial in
// category. It must be called whenever the category changes.
func (p *Pager) Reset(initial []content.Article, category string) {
	p.articles = append([]content.Article(nil), initial...)
	p.category = category
	p.hasMore = true
}

// Load fetches the first page of category and resets the pager to it.
func (p *Pager) Load(ctx context.Context, category string) error {
	page, err := p.src.Articles(ctx, nil, category, p.pageSize)
	if err != nil {
		return fmt.Errorf("feed.Load: %w", err)
	}
	p.Reset(page, category)
	return nil
}

// Cursor returns the exclusive upper bound of the next page. ok is false
// when there is nothing to load: the pager is empty or exhausted.
func (p *Pager) Cursor() (cursor time.Time, ok bool) {
	if len(p.articles) == 0 || !p.hasMore {
		return time.Time{}, false
	}
	return p.articles[len(p.articles)-1].PublishedAt, true
}

// Append adds a fetched page, skipping articles already loaded. A page that
// adds nothing marks the pager exhausted. It returns the number of articles
// added.
func (p *Pager) Append(page []content.Article) int {
	if !p.hasMore {
		return 0
	}
	if len(page) == 0 {
		p.hasMore = false
		return 0
	}

	seen := make(map[string]bool, len(p.articles))
	for _, a := range p.articles {
		seen[a.ID] = true
	}
	added := 0
	for _, a := range page {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		p.articles = append(p.articles, a)
		added++
	}
	if added == 0 {
		p.hasMore = false
	}
	return added
}

// LoadMore fetches the page after the cursor and appends it. It is a no-op
// on an empty or exhausted pager. On error nothing changes.
func (p *Pager) LoadMore(ctx context.Context) (int, error) {
	cursor, ok := p.Cursor()
	if !ok {
		return 0, nil
	}
	page, err := p.src.Articles(ctx, &cursor, p.category, p.pageSize)
	if err != nil {
		return 0, fmt.Errorf("feed.LoadMore: %w", err)
	}
	return p.Append(page), nil
}

func (p *Pager) Articles() []content.Article {
	return append([]content.Article(nil), p.articles...)
}

func (p *Pager) Len() int {
	return len(p.articles)
}

func (p *Pager) HasMore() bool {
	return p.hasMore
}

func (p *Pager) Category() string {
	return p.category
}

func (p *Pager) PageSize() int {
	return p.pageSize
}

// NearEnd reports whether index is within threshold items of the end of a
// list of length n.
func NearEnd(index, n, threshold int) bool {
	return n > 0 && index >= n-1-threshold
}
