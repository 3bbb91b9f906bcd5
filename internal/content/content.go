// Package content describes the documents served by the headless content
// store and the read-only query interface the front end consumes.
package content

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("content: document not found")

type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	PublishedAt time.Time `json:"publishedAt"`
	Summary     string    `json:"summary,omitempty"`
	Content     []Block   `json:"content,omitempty"`
	Category    string    `json:"category,omitempty"`
	Source      string    `json:"source,omitempty"`
	SourceURL   string    `json:"sourceUrl,omitempty"`
	Tags        []string  `json:"tags,omitempty"`

	// Baseline counters as stored in the content store.
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
	Saves    int `json:"saves"`
}

// Clone returns a copy of a that shares no slices with it.
func (a *Article) Clone() *Article {
	c := *a
	if a.Tags != nil {
		c.Tags = append([]string(nil), a.Tags...)
	}
	if a.Content != nil {
		c.Content = make([]Block, len(a.Content))
		for i, b := range a.Content {
			c.Content[i] = b.clone()
		}
	}
	return &c
}

type Tweet struct {
	ID           string    `json:"id"`
	AuthorName   string    `json:"authorName"`
	AuthorHandle string    `json:"authorHandle"`
	AuthorAvatar string    `json:"authorAvatar,omitempty"`
	Content      string    `json:"content"`
	SourceURL    string    `json:"sourceUrl,omitempty"`
	PublishedAt  time.Time `json:"publishedAt"`
	Likes        int       `json:"likes"`
	Retweets     int       `json:"retweets"`
	Views        int       `json:"views"`
}

type Image struct {
	Ref string `json:"ref,omitempty"`
	URL string `json:"url,omitempty"`
}

type SidebarAd struct {
	Image  Image  `json:"image"`
	URL    string `json:"url,omitempty"`
	Active bool   `json:"active"`
}

type Notification struct {
	Text   string `json:"text,omitempty"`
	Active bool   `json:"active"`
}

type SiteSettings struct {
	Title           string       `json:"title"`
	Logo            Image        `json:"logo"`
	SidebarAd       SidebarAd    `json:"sidebarAd"`
	TopNotification Notification `json:"topNotification"`
	AINotification  Notification `json:"aiNotification"`
}

// Source is the query interface of a content store. All queries are
// read-only. Article lists are ordered by publication time, newest first.
type Source interface {
	// Articles returns up to limit articles published strictly before
	// before (or the newest articles when before is nil), optionally
	// restricted to a category.
	Articles(ctx context.Context, before *time.Time, category string, limit int) ([]Article, error)
	// ArticleBySlug returns ErrNotFound when no article has the slug.
	ArticleBySlug(ctx context.Context, slug string) (*Article, error)
	Related(ctx context.Context, excludeID string, limit int) ([]Article, error)
	// Previous returns the newest article published before t, or nil.
	Previous(ctx context.Context, t time.Time) (*Article, error)
	// Next returns the oldest article published after t, or nil.
	Next(ctx context.Context, t time.Time) (*Article, error)
	SiteSettings(ctx context.Context) (*SiteSettings, error)
	Tweets(ctx context.Context, limit int) ([]Tweet, error)
}
