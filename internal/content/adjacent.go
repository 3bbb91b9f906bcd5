package content

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

type Adjacent struct {
	Prev *Article `json:"prev"`
	Next *Article `json:"next"`
}

// AdjacentArticles looks up the neighbours of an article published at t. Both
// lookups run concurrently and both must finish before it returns.
func AdjacentArticles(ctx context.Context, src Source, t time.Time) (Adjacent, error) {
	var adj Adjacent
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prev, err := src.Previous(gctx, t)
		adj.Prev = prev
		return err
	})
	g.Go(func() error {
		next, err := src.Next(gctx, t)
		adj.Next = next
		return err
	})
	if err := g.Wait(); err != nil {
		return Adjacent{}, fmt.Errorf("content.AdjacentArticles: %w", err)
	}
	return adj, nil
}

// Detail bundles what the article detail view needs besides the article
// itself.
type Detail struct {
	Related  []Article
	Adjacent Adjacent
}

// LoadDetail fetches related and adjacent articles concurrently.
func LoadDetail(ctx context.Context, src Source, a *Article, relatedLimit int) (Detail, error) {
	var d Detail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		related, err := src.Related(gctx, a.ID, relatedLimit)
		d.Related = related
		return err
	})
	g.Go(func() error {
		adj, err := AdjacentArticles(gctx, src, a.PublishedAt)
		d.Adjacent = adj
		return err
	})
	if err := g.Wait(); err != nil {
		return Detail{}, fmt.Errorf("content.LoadDetail: %w", err)
	}
	return d, nil
}
