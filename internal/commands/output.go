package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/guyfedwards/newsdesk/internal/config"
	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/feed"
	"github.com/guyfedwards/newsdesk/internal/i18n"
)

const defaultWidth = 80

type listItem struct {
	Index     int
	Item      feed.DisplayArticle
	Pinned    bool
	Hot       bool
	PinIcon   string
	FlameIcon string
	Source    string
	Age       string
	Likes     string
}

// terminal reports whether w is a terminal and its width.
func terminal(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return true, defaultWidth
	}
	return true, width
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func (c *Commands) listTemplate() (*template.Template, error) {
	format := c.config.Config.ListFormat
	if format == "" {
		format = config.DefaultListFormat
	}
	return template.New("list").Parse(format)
}

func (c *Commands) printList(ds []feed.DisplayArticle) error {
	tmpl, err := c.listTemplate()
	if err != nil {
		return fmt.Errorf("commands.List: listformat: %w", err)
	}
	isTerm, width := terminal(c.out)
	theme := c.config.Config.Theme
	now := c.now()

	for i, d := range ds {
		source := d.Source
		if source == "" {
			source = feed.SourceHost(d.SourceURL)
		}
		item := listItem{
			Index:     i + 1,
			Item:      d,
			Pinned:    d.Stats.IsPinned,
			Hot:       d.Flame() != feed.NoFlame,
			PinIcon:   theme.PinIcon,
			FlameIcon: theme.FlameIcon,
			Source:    source,
			Age:       feed.TimeAgo(d.PublishedAt, now),
			Likes:     feed.FormatCount(d.Stats.Likes),
		}
		var sb strings.Builder
		if err := tmpl.Execute(&sb, item); err != nil {
			return fmt.Errorf("commands.List: %w", err)
		}
		line := sb.String()
		if isTerm {
			line = truncate(line, width)
		}
		fmt.Fprintln(c.out, line)
	}
	return nil
}

// List prints the feed of category, loading pages pages.
func (c *Commands) List(ctx context.Context, category string, pages int) error {
	lang := c.prefs.Language(ctx)

	p := feed.NewPager(c.source, c.pageSize())
	if err := p.Load(ctx, category); err != nil {
		return fmt.Errorf("commands.List: %w", err)
	}
	for i := 1; i < pages && p.HasMore(); i++ {
		if _, err := p.LoadMore(ctx); err != nil {
			return fmt.Errorf("commands.List: %w", err)
		}
	}

	if p.Len() == 0 {
		fmt.Fprintln(c.out, i18n.T(lang, "feed.no_news"))
		return nil
	}

	// a failed translation leaves the original text in ds
	ds, _ := c.assembler.Assemble(ctx, p.Articles(), lang)

	fmt.Fprintf(c.out, "%s\n\n", i18n.CategoryLabel(lang, category))
	if err := c.printList(ds); err != nil {
		return err
	}
	if !p.HasMore() {
		fmt.Fprintf(c.out, "\n%s\n", i18n.T(lang, "feed.end"))
	}
	return nil
}

// Hot prints the most liked articles of the latest page.
func (c *Commands) Hot(ctx context.Context) error {
	lang := c.prefs.Language(ctx)

	articles, err := c.source.Articles(ctx, nil, "", c.pageSize())
	if err != nil {
		return fmt.Errorf("commands.Hot: %w", err)
	}
	hot := feed.Hot(articles, c.store, constants.HotLimit)
	if len(hot) == 0 {
		fmt.Fprintln(c.out, i18n.T(lang, "feed.no_news"))
		return nil
	}
	fmt.Fprintf(c.out, "%s\n\n", i18n.T(lang, "feed.hot"))
	return c.printList(hot)
}

func (c *Commands) Tweets(ctx context.Context) error {
	tweets, err := c.source.Tweets(ctx, constants.TweetLimit)
	if err != nil {
		return fmt.Errorf("commands.Tweets: %w", err)
	}
	lang := c.prefs.Language(ctx)
	fmt.Fprintf(c.out, "%s\n\n", i18n.T(lang, "sidebar.trending"))
	now := c.now()
	for _, t := range tweets {
		fmt.Fprintf(c.out, "%s (@%s) · %s\n  %s\n  ♥ %s  ↻ %s  👁 %s\n\n",
			t.AuthorName, t.AuthorHandle, feed.TimeAgo(t.PublishedAt, now),
			t.Content,
			feed.FormatCount(t.Likes), feed.FormatCount(t.Retweets), feed.FormatCount(t.Views))
	}
	return nil
}

func (c *Commands) glamourStyle(ctx context.Context, isTerm bool) string {
	if !isTerm {
		return "notty"
	}
	if c.config.Config.Theme.Glamour != "" && c.config.Config.Theme.Glamour != config.DefaultTheme.Glamour {
		return c.config.Config.Theme.Glamour
	}
	return string(c.prefs.Theme(ctx))
}

// Render turns markdown into terminal output.
func Render(md, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// Show prints one article with its related and adjacent articles.
func (c *Commands) Show(ctx context.Context, ref string) error {
	a, err := c.find(ctx, ref)
	if err != nil {
		return fmt.Errorf("commands.Show: %w", err)
	}
	lang := c.prefs.Language(ctx)

	d, _ := c.assembler.One(ctx, a, lang)

	var detail *content.Detail
	if loaded, err := content.LoadDetail(ctx, c.source, a, constants.RelatedLimit); err != nil {
		c.log.Warn("loading related articles failed", "id", a.ID, "error", err)
	} else {
		detail = &loaded
	}

	isTerm, width := terminal(c.out)
	out, err := Render(feed.ArticleMarkdown(d, detail, lang, c.now()), c.glamourStyle(ctx, isTerm), width)
	if err != nil {
		return fmt.Errorf("commands.Show: %w", err)
	}
	fmt.Fprint(c.out, out)
	return nil
}

// Settings prints the active site notifications.
func (c *Commands) Settings(ctx context.Context) error {
	s, err := c.source.SiteSettings(ctx)
	if err != nil {
		return fmt.Errorf("commands.Settings: %w", err)
	}
	fmt.Fprintln(c.out, s.Title)
	if s.TopNotification.Active {
		fmt.Fprintf(c.out, "! %s\n", s.TopNotification.Text)
	}
	if s.AINotification.Active {
		fmt.Fprintf(c.out, "AI: %s\n", s.AINotification.Text)
	}
	if s.SidebarAd.Active && s.SidebarAd.URL != "" {
		fmt.Fprintf(c.out, "%s: %s\n", i18n.T(c.prefs.Language(ctx), "sidebar.ad"), s.SidebarAd.URL)
	}
	return nil
}

func (c *Commands) ShowConfig() error {
	out, err := yaml.Marshal(c.config.Config)
	if err != nil {
		return fmt.Errorf("commands.ShowConfig: %w", err)
	}
	fmt.Fprintf(c.out, "# %s\n%s", c.config.ConfigPath, out)
	return nil
}

// Add appends a feed to the config file.
func (c *Commands) Add(url, name, category string) error {
	if err := c.config.AddFeed(config.Feed{URL: url, Name: name, Category: category}); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added %s\n", url)
	return nil
}
