package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/guyfedwards/newsdesk/internal/config"
	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/feed"
	"github.com/guyfedwards/newsdesk/internal/i18n"
	"github.com/guyfedwards/newsdesk/internal/store"
)

type pageMsg struct {
	seq   int
	reset bool
	page  []content.Article
	err   error
}

type assembledMsg struct {
	gen   int
	lang  constants.Language
	items []feed.DisplayArticle
}

type detailMsg struct {
	id       string
	lang     constants.Language
	theme    constants.Theme
	rendered string
	adjacent content.Adjacent
	err      error
}

// neighbourMsg carries the full document of an adjacent article, fetched
// while from was open.
type neighbourMsg struct {
	from    string
	article *content.Article
	err     error
}

type interactionMsg struct {
	title string
	verb  string
	rec   store.Interaction
	err   error
}

// fetch requests a page of the current category. A reset page replaces the
// feed, any other is appended.
func (m Model) fetch(before *time.Time, reset bool) tea.Cmd {
	ctx, src, category, size, seq := m.ctx, m.deps.Source, m.category, m.pager.PageSize(), m.seq
	return func() tea.Msg {
		page, err := src.Articles(ctx, before, category, size)
		return pageMsg{seq: seq, reset: reset, page: page, err: err}
	}
}

// loadMore asks for the next page once the cursor nears the end. Only one
// request is in flight at a time.
func (m *Model) loadMore() tea.Cmd {
	if m.loading || m.filter.Value() != "" {
		return nil
	}
	if !feed.NearEnd(m.cursor, len(m.items), loadThreshold) {
		return nil
	}
	cursor, ok := m.pager.Cursor()
	if !ok {
		return nil
	}
	m.loading = true
	return m.fetch(&cursor, false)
}

func (m *Model) reload() tea.Cmd {
	m.seq++
	m.loading = true
	m.cursor = 0
	return m.fetch(nil, true)
}

func (m *Model) assemble() tea.Cmd {
	m.gen++
	ctx, as, gen, lang, articles := m.ctx, m.deps.Assembler, m.gen, m.lang, m.pager.Articles()
	return func() tea.Msg {
		// on failure the untranslated list is still usable
		items, _ := as.Assemble(ctx, articles, lang)
		return assembledMsg{gen: gen, lang: lang, items: items}
	}
}

// restat refreshes the counters of the loaded items after an interaction
// and restores feed order with pinned items first. Items keep their
// assembled, possibly translated, text.
func (m *Model) restat() {
	shown := make(map[string]content.Article, len(m.items))
	for _, d := range m.items {
		shown[d.ID] = d.Article
	}
	items := feed.Order(feed.Reconcile(m.pager.Articles(), m.deps.Store))
	for i := range items {
		if a, ok := shown[items[i].ID]; ok {
			items[i].Article = a
		}
	}
	m.items = items
}

func (m Model) visible() []feed.DisplayArticle {
	return feed.Filter(m.items, m.filter.Value())
}

// selected is the article interactions apply to: the open one in the detail
// view, else the one under the cursor.
func (m Model) selected() (*content.Article, bool) {
	if m.view == detailView && m.article != nil {
		return m.article, true
	}
	vis := m.visible()
	if m.cursor < 0 || m.cursor >= len(vis) {
		return nil, false
	}
	a := vis[m.cursor].Article
	return m.original(a.ID, &a), true
}

// original returns the untranslated article for id, falling back to a.
func (m Model) original(id string, a *content.Article) *content.Article {
	for _, o := range m.pager.Articles() {
		if o.ID == id {
			return &o
		}
	}
	return a
}

type interaction func(ctx context.Context, id string, baseline int) (store.Interaction, error)

func (m Model) interact(verb string, pick func(store.Baseline) int, do interaction) tea.Cmd {
	a, ok := m.selected()
	if !ok {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		rec, err := do(ctx, a.ID, pick(feed.BaselineOf(*a)))
		return interactionMsg{title: a.Title, verb: verb, rec: rec, err: err}
	}
}

func (m Model) togglePin() tea.Cmd {
	a, ok := m.selected()
	if !ok {
		return nil
	}
	ctx, st := m.ctx, m.deps.Store
	return func() tea.Msg {
		rec, err := st.TogglePin(ctx, a.ID)
		verb := "Unpinned"
		if rec.IsPinned {
			verb = "Pinned"
		}
		return interactionMsg{title: a.Title, verb: verb, rec: rec, err: err}
	}
}

func (m Model) setLikes(n int) tea.Cmd {
	a, ok := m.selected()
	if !ok {
		return nil
	}
	ctx, st := m.ctx, m.deps.Store
	return func() tea.Msg {
		rec, err := st.SetLikes(ctx, a.ID, n)
		return interactionMsg{title: a.Title, verb: "Set likes of", rec: rec, err: err}
	}
}

func glamourStyle(theme constants.Theme, t config.Theme) string {
	if t.Glamour != "" && t.Glamour != config.DefaultTheme.Glamour {
		return t.Glamour
	}
	return string(theme)
}

func (m *Model) openDetail(a *content.Article) tea.Cmd {
	m.view = detailView
	m.article = a
	m.adjacent = content.Adjacent{}
	m.viewport.SetContent(i18n.T(m.lang, "feed.loading"))
	m.viewport.GotoTop()
	return m.renderDetail(a)
}

// openNeighbour loads the whole of an adjacent article before showing it.
// Adjacent lookups only carry enough to link to it.
func (m Model) openNeighbour(adj *content.Article) tea.Cmd {
	ctx, src, from, slug := m.ctx, m.deps.Source, m.article.ID, adj.Slug
	return func() tea.Msg {
		a, err := src.ArticleBySlug(ctx, slug)
		return neighbourMsg{from: from, article: a, err: err}
	}
}

// renderDetail translates, lays out and renders a, along with its related
// and adjacent articles.
func (m Model) renderDetail(a *content.Article) tea.Cmd {
	ctx, deps, lang, theme, width := m.ctx, m.deps, m.lang, m.theme, m.width
	return func() tea.Msg {
		msg := detailMsg{id: a.ID, lang: lang, theme: theme}

		d, _ := deps.Assembler.One(ctx, a, lang)
		var detail *content.Detail
		if loaded, err := content.LoadDetail(ctx, deps.Source, a, constants.RelatedLimit); err != nil {
			deps.Log.Warn("loading related articles failed", "id", a.ID, "error", err)
		} else {
			detail = &loaded
			msg.adjacent = loaded.Adjacent
		}

		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(glamourStyle(theme, deps.Theme)),
			glamour.WithWordWrap(width-2),
		)
		if err != nil {
			msg.err = err
			return msg
		}
		msg.rendered, msg.err = r.Render(feed.ArticleMarkdown(d, detail, lang, deps.Now()))
		return msg
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-3, 1)
		return m, nil

	case pageMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.deps.Log.Error("loading feed failed", "category", m.category, "error", msg.err)
			m.status = msg.err.Error()
			return m, nil
		}
		if msg.reset {
			m.pager.Reset(msg.page, m.category)
		} else {
			m.pager.Append(msg.page)
		}
		cmd := m.assemble()
		return m, cmd

	case assembledMsg:
		if msg.gen != m.gen || msg.lang != m.lang {
			return m, nil
		}
		m.items = msg.items
		m.clampCursor()
		cmd := m.loadMore()
		return m, cmd

	case detailMsg:
		if m.article == nil || msg.id != m.article.ID || msg.lang != m.lang || msg.theme != m.theme {
			return m, nil
		}
		if msg.err != nil {
			m.deps.Log.Error("rendering article failed", "id", msg.id, "error", msg.err)
			m.status = msg.err.Error()
			return m, nil
		}
		m.adjacent = msg.adjacent
		m.viewport.SetContent(msg.rendered)
		return m, nil

	case neighbourMsg:
		if m.view != detailView || m.article == nil || msg.from != m.article.ID {
			return m, nil
		}
		if msg.err != nil {
			m.deps.Log.Error("loading article failed", "from", msg.from, "error", msg.err)
			m.status = msg.err.Error()
			return m, nil
		}
		cmd := m.openDetail(msg.article)
		return m, cmd

	case interactionMsg:
		m.restat()
		m.status = fmt.Sprintf("%s %s: %d likes, %d dislikes, %d saves", msg.verb, msg.title, msg.rec.Likes, msg.rec.Dislikes, msg.rec.Saves)
		if msg.err != nil {
			m.deps.Log.Warn("interaction not persisted", "error", msg.err)
			m.status += " (not saved)"
		}
		if m.view == detailView && m.article != nil {
			return m, m.renderDetail(m.article)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.mode {
		case filtering:
			return m.updateFilter(msg)
		case editingLikes:
			return m.updateLikes(msg)
		}
		if m.view == detailView {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// updateCommon handles the keys shared by the list and detail views.
func (m Model) updateCommon(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Like):
		return m, m.interact("Liked", func(b store.Baseline) int { return b.Likes }, m.deps.Store.Like), true
	case key.Matches(msg, m.keys.Dislike):
		return m, m.interact("Disliked", func(b store.Baseline) int { return b.Dislikes }, m.deps.Store.Dislike), true
	case key.Matches(msg, m.keys.Save):
		return m, m.interact("Saved", func(b store.Baseline) int { return b.Saves }, m.deps.Store.Save), true

	case key.Matches(msg, m.keys.Pin):
		if !m.admin {
			m.status = "admin mode is off"
			return m, nil, true
		}
		return m, m.togglePin(), true

	case key.Matches(msg, m.keys.EditLikes):
		if !m.admin {
			m.status = "admin mode is off"
			return m, nil, true
		}
		if _, ok := m.selected(); !ok {
			return m, nil, true
		}
		m.mode = editingLikes
		m.likes.Reset()
		cmd := m.likes.Focus()
		return m, cmd, true

	case key.Matches(msg, m.keys.Admin):
		on, err := m.deps.Prefs.ToggleAdminMode(m.ctx)
		if err != nil {
			m.status = err.Error()
			return m, nil, true
		}
		m.admin = on
		m.status = "Admin mode off"
		if on {
			m.status = "Admin mode on"
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Language):
		lang, err := m.deps.Prefs.CycleLanguage(m.ctx)
		if err != nil {
			m.status = err.Error()
			return m, nil, true
		}
		m.lang = lang
		m.filter.Prompt = i18n.T(lang, "filter.prompt")
		m.filter.Placeholder = i18n.T(lang, "search.placeholder")
		m.status = ""
		cmd := m.assemble()
		if m.view == detailView && m.article != nil {
			cmd = tea.Batch(cmd, m.renderDetail(m.article))
		}
		return m, cmd, true

	case key.Matches(msg, m.keys.Theme):
		theme, err := m.deps.Prefs.ToggleTheme(m.ctx)
		if err != nil {
			m.status = err.Error()
			return m, nil, true
		}
		m.theme = theme
		if m.view == detailView && m.article != nil {
			return m, m.renderDetail(m.article), true
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.updateCommon(msg); ok {
		return next, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		cmd := m.loadMore()
		return m, cmd

	case key.Matches(msg, m.keys.Open):
		a, ok := m.selected()
		if !ok {
			return m, nil
		}
		cmd := m.openDetail(a)
		return m, cmd

	case key.Matches(msg, m.keys.Filter):
		m.mode = filtering
		cmd := m.filter.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.FilterClear):
		m.filter.Reset()
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Category):
		cmd := m.switchCategory(1)
		return m, cmd

	case key.Matches(msg, m.keys.PrevCat):
		cmd := m.switchCategory(-1)
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		cmd := m.reload()
		return m, cmd
	}
	return m, nil
}

// categories lists the switchable categories, all news first.
func categories() []string {
	return append([]string{""}, constants.Categories...)
}

func (m *Model) switchCategory(step int) tea.Cmd {
	cats := categories()
	i := slices.Index(cats, m.category)
	n := len(cats)
	m.category = cats[((i+step)%n+n)%n]
	m.filter.Reset()
	m.status = ""
	return m.reload()
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.updateCommon(msg); ok {
		return next, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = listView
		m.article = nil
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if m.adjacent.Prev != nil && m.article != nil {
			return m, m.openNeighbour(m.adjacent.Prev)
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.adjacent.Next != nil && m.article != nil {
			return m, m.openNeighbour(m.adjacent.Next)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = browsing
		m.filter.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.mode = browsing
		m.filter.Blur()
		m.filter.Reset()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m Model) updateLikes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = browsing
		m.likes.Blur()
		n, err := strconv.Atoi(m.likes.Value())
		if err != nil || n < 0 {
			m.status = fmt.Sprintf("%q is not a like count", m.likes.Value())
			return m, nil
		}
		return m, m.setLikes(n)
	case key.Matches(msg, m.keys.Cancel):
		m.mode = browsing
		m.likes.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.likes, cmd = m.likes.Update(msg)
	return m, cmd
}
