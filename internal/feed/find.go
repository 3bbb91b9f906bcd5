package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/guyfedwards/newsdesk/internal/content"
)

// DefaultFindPages bounds how far back Find pages when looking up an id.
const DefaultFindPages = 10

// Find resolves ref to an article. ref is tried as a slug first, then looked
// for as an id in the newest maxPages pages of the feed.
func Find(ctx context.Context, src content.Source, ref string, pageSize, maxPages int) (*content.Article, error) {
	a, err := src.ArticleBySlug(ctx, ref)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, content.ErrNotFound) {
		return nil, fmt.Errorf("feed.Find: %w", err)
	}

	p := NewPager(src, pageSize)
	if err := p.Load(ctx, ""); err != nil {
		return nil, fmt.Errorf("feed.Find: %w", err)
	}
	for page := 1; ; page++ {
		for _, a := range p.Articles() {
			if a.ID == ref {
				return &a, nil
			}
		}
		if page >= maxPages || !p.HasMore() {
			break
		}
		n, err := p.LoadMore(ctx)
		if err != nil {
			return nil, fmt.Errorf("feed.Find: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return nil, content.ErrNotFound
}
