package feed

import (
	"fmt"
	"strings"
	"time"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/i18n"
)

// ArticleMarkdown lays out the detail page of an article as markdown. detail
// may be nil when related and adjacent articles could not be loaded.
func ArticleMarkdown(d DisplayArticle, detail *content.Detail, lang constants.Language, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", d.Title)

	meta := []string{}
	if d.Source != "" {
		meta = append(meta, d.Source)
	}
	if !d.PublishedAt.IsZero() {
		meta = append(meta, TimeAgo(d.PublishedAt, now))
	}
	meta = append(meta, strings.Join(Badges(d), " "))
	fmt.Fprintf(&sb, "_%s_\n\n", strings.Join(meta, " · "))

	fmt.Fprintf(&sb, "%s %s · %s %s · %s %s",
		FormatCount(d.Stats.Likes), i18n.T(lang, "stats.likes"),
		FormatCount(d.Stats.Dislikes), i18n.T(lang, "stats.dislikes"),
		FormatCount(d.Stats.Saves), i18n.T(lang, "stats.saves"))
	if f := d.Flame(); f != NoFlame {
		fmt.Fprintf(&sb, " · %s", f)
	}
	sb.WriteString("\n\n")

	if d.Summary != "" {
		fmt.Fprintf(&sb, "> **%s**\n>\n> %s\n\n", i18n.T(lang, "article.ai_summary"), d.Summary)
	}

	if body := content.Markdown(d.Content); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}

	if d.SourceURL != "" {
		fmt.Fprintf(&sb, "%s [%s](%s)\n\n", i18n.T(lang, "article.read_original"), SourceHost(d.SourceURL), d.SourceURL)
	}

	if detail == nil {
		return sb.String()
	}

	if detail.Adjacent.Prev != nil || detail.Adjacent.Next != nil {
		sb.WriteString("---\n\n")
		if p := detail.Adjacent.Prev; p != nil {
			fmt.Fprintf(&sb, "← %s: %s (`%s`)\n\n", i18n.T(lang, "article.previous"), p.Title, p.Slug)
		}
		if n := detail.Adjacent.Next; n != nil {
			fmt.Fprintf(&sb, "→ %s: %s (`%s`)\n\n", i18n.T(lang, "article.next"), n.Title, n.Slug)
		}
	}

	if len(detail.Related) > 0 {
		fmt.Fprintf(&sb, "## %s\n\n", i18n.T(lang, "article.popular_content"))
		for _, r := range detail.Related {
			fmt.Fprintf(&sb, "- %s (`%s`)\n", r.Title, r.Slug)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
