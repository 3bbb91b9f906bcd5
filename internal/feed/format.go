package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// Flame grades how hot an article is by its likes.
type Flame int

const (
	NoFlame Flame = iota
	WarmFlame
	HotFlame
	SuperHotFlame
)

func FlameFor(likes int) Flame {
	switch {
	case likes >= 1000:
		return SuperHotFlame
	case likes >= 500:
		return HotFlame
	case likes >= 100:
		return WarmFlame
	default:
		return NoFlame
	}
}

func (f Flame) String() string {
	switch f {
	case WarmFlame:
		return "warm"
	case HotFlame:
		return "hot"
	case SuperHotFlame:
		return "super-hot"
	default:
		return ""
	}
}

// TimeAgo formats the age of t as whole minutes below an hour, whole hours
// otherwise.
func TimeAgo(t, now time.Time) string {
	minutes := int(now.Sub(t) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	return fmt.Sprintf("%dh", minutes/60)
}

// FormatCount abbreviates large counters: 1.2K, 3.4M.
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}

// SourceHost returns the host part of a source link for display.
func SourceHost(link string) string {
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	host, _, _ := strings.Cut(link, "/")
	return host
}

// Badges returns the tags to show next to an article, falling back to a
// badge derived from its category.
func Badges(d DisplayArticle) []string {
	if len(d.Tags) > 0 {
		return d.Tags
	}
	switch d.Category {
	case "crypto":
		return []string{"CRYPTO"}
	case "finance":
		return []string{"FINANCE"}
	default:
		return []string{"NEWS"}
	}
}

type titles []DisplayArticle

func (t titles) String(i int) string {
	return t[i].Title + " " + t[i].Source
}

func (t titles) Len() int {
	return len(t)
}

// Filter fuzzy-matches query against titles and sources, best match first.
// An empty query keeps everything in order.
func Filter(ds []DisplayArticle, query string) []DisplayArticle {
	if strings.TrimSpace(query) == "" {
		return ds
	}
	matches := fuzzy.FindFrom(query, titles(ds))
	out := make([]DisplayArticle, 0, len(matches))
	for _, m := range matches {
		out = append(out, ds[m.Index])
	}
	return out
}
