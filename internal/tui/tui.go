// Package tui is the interactive terminal front end: an infinitely
// scrolling feed with a detail view, interactions and settings.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/guyfedwards/newsdesk/internal/config"
	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/feed"
	"github.com/guyfedwards/newsdesk/internal/i18n"
	"github.com/guyfedwards/newsdesk/internal/prefs"
	"github.com/guyfedwards/newsdesk/internal/store"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// loadThreshold is how close to the last item the cursor gets before
	// the next page is requested.
	loadThreshold = 5
)

type Deps struct {
	Source    content.Source
	Store     *store.Store
	Prefs     *prefs.Prefs
	Assembler *feed.Assembler
	PageSize  int
	Theme     config.Theme
	Log       *slog.Logger
	Now       func() time.Time
}

type viewKind int

const (
	listView viewKind = iota
	detailView
)

type inputMode int

const (
	browsing inputMode = iota
	filtering
	editingLikes
)

type Model struct {
	ctx  context.Context
	deps Deps
	keys keyMap
	help help.Model

	pager    *feed.Pager
	category string
	// seq identifies the current feed; pages fetched for an older one are
	// dropped.
	seq     int
	loading bool

	// gen identifies the latest assembly request; older results are dropped.
	gen   int
	items []feed.DisplayArticle

	cursor int

	lang  constants.Language
	theme constants.Theme
	admin bool

	mode   inputMode
	filter textinput.Model
	likes  textinput.Model

	view     viewKind
	viewport viewport.Model
	article  *content.Article
	adjacent content.Adjacent

	status string
	width  int
	height int
}

func New(ctx context.Context, deps Deps) Model {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Theme == (config.Theme{}) {
		deps.Theme = config.DefaultTheme
	}

	lang := deps.Prefs.Language(ctx)

	filter := textinput.New()
	filter.Prompt = i18n.T(lang, "filter.prompt")
	filter.Placeholder = i18n.T(lang, "search.placeholder")

	likes := textinput.New()
	likes.Prompt = "Likes: "
	likes.CharLimit = 9

	return Model{
		ctx:      ctx,
		deps:     deps,
		keys:     defaultKeyMap(),
		help:     help.New(),
		pager:    feed.NewPager(deps.Source, deps.PageSize),
		lang:     lang,
		theme:    deps.Prefs.Theme(ctx),
		admin:    deps.Prefs.AdminMode(ctx),
		filter:   filter,
		likes:    likes,
		viewport: viewport.New(defaultWidth, defaultHeight-2),
		loading:  true,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetch(nil, true)
}

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(New(ctx, deps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
