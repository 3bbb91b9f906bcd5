// Package rss serves articles read from RSS and Atom feeds.
package rss

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/content/htmltext"
	"github.com/guyfedwards/newsdesk/internal/content/memory"
)

type Feed struct {
	URL      string
	Name     string
	Category string
}

// Source fetches its feeds on Refresh and answers queries from memory.
type Source struct {
	*memory.Source
	feeds  []Feed
	parser *gofeed.Parser
	log    *slog.Logger
	now    func() time.Time
}

func New(feeds []Feed, userAgent string, log *slog.Logger) *Source {
	parser := gofeed.NewParser()
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	if log == nil {
		log = slog.Default()
	}
	return &Source{
		Source: memory.New(nil),
		feeds:  feeds,
		parser: parser,
		log:    log,
		now:    time.Now,
	}
}

// Refresh refetches every feed. A failing feed is logged and skipped; the
// returned error joins all failures.
func (s *Source) Refresh(ctx context.Context) error {
	var (
		articles []content.Article
		errs     []error
	)
	for _, f := range s.feeds {
		parsed, err := s.parser.ParseURLWithContext(f.URL, ctx)
		if err != nil {
			s.log.Warn("fetching feed failed", "url", f.URL, "error", err)
			errs = append(errs, fmt.Errorf("rss.Refresh: %s: %w", f.URL, err))
			continue
		}
		articles = append(articles, s.FromFeed(f, parsed)...)
	}
	s.Replace(dedupe(articles))
	return errors.Join(errs...)
}

// FromFeed converts parsed feed items into articles.
func (s *Source) FromFeed(f Feed, parsed *gofeed.Feed) []content.Article {
	name := f.Name
	if name == "" {
		name = parsed.Title
	}
	out := make([]content.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		out = append(out, s.itemToArticle(f, name, item))
	}
	return out
}

func (s *Source) itemToArticle(f Feed, source string, item *gofeed.Item) content.Article {
	key := item.GUID
	if key == "" {
		key = item.Link
	}
	if key == "" {
		key = item.Title
	}
	sum := sha1.Sum([]byte(f.URL + "\x00" + key))
	id := hex.EncodeToString(sum[:])[:16]

	published := s.now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	a := content.Article{
		ID:          id,
		Title:       strings.TrimSpace(item.Title),
		Slug:        Slugify(item.Title, id),
		PublishedAt: published,
		Category:    category(f, item),
		Source:      source,
		SourceURL:   item.Link,
		Tags:        item.Categories,
	}

	switch {
	case item.Content != "":
		a.Content = htmltext.Blocks(item.Content)
		a.Summary = htmltext.Markdown(item.Description)
	default:
		a.Content = htmltext.Blocks(item.Description)
	}
	return a
}

func category(f Feed, item *gofeed.Item) string {
	if f.Category != "" {
		return f.Category
	}
	for _, c := range item.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if slices.Contains(constants.Categories, c) {
			return c
		}
	}
	return ""
}

func dedupe(articles []content.Article) []content.Article {
	seen := make(map[string]bool, len(articles))
	out := articles[:0]
	for _, a := range articles {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds a URL slug from a title, suffixed with a short id so slugs
// stay unique across feeds.
func Slugify(title, id string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if len(s) > 80 {
		s = strings.TrimRight(s[:80], "-")
	}
	if len(id) > 8 {
		id = id[:8]
	}
	if s == "" {
		return id
	}
	return s + "-" + id
}
