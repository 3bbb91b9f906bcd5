package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/guyfedwards/newsdesk/internal/feed"
	"github.com/guyfedwards/newsdesk/internal/i18n"
)

type styles struct {
	title    lipgloss.Style
	admin    lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
	filter   lipgloss.Style
}

func (m Model) styles() styles {
	t := m.deps.Theme
	return styles{
		title:    lipgloss.NewStyle().Background(lipgloss.Color(t.TitleColor)).Foreground(lipgloss.Color(t.TitleColorFg)).Padding(0, 1),
		admin:    lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("231")).Padding(0, 1).Bold(true),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color(t.SelectedItemColor)).Bold(true),
		dim:      lipgloss.NewStyle().Faint(true),
		filter:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.FilterColor)),
	}
}

func (m Model) header(st styles) string {
	parts := []string{
		st.title.Render("newsdesk · " + i18n.CategoryLabel(m.lang, m.category)),
		st.dim.Render(strings.ToUpper(string(m.lang))),
	}
	if m.admin {
		parts = append(parts, st.admin.Render(i18n.T(m.lang, "admin.on")))
	}
	return strings.Join(parts, " ")
}

func (m Model) line(d feed.DisplayArticle) string {
	var sb strings.Builder
	if d.Stats.IsPinned {
		sb.WriteString(m.deps.Theme.PinIcon + " ")
	}
	sb.WriteString(d.Title)
	if d.Flame() != feed.NoFlame {
		sb.WriteString(" " + m.deps.Theme.FlameIcon)
	}

	source := d.Source
	if source == "" {
		source = feed.SourceHost(d.SourceURL)
	}
	meta := []string{}
	if source != "" {
		meta = append(meta, source)
	}
	meta = append(meta,
		feed.TimeAgo(d.PublishedAt, m.deps.Now()),
		fmt.Sprintf("♥ %s", feed.FormatCount(d.Stats.Likes)))
	return sb.String() + "  " + strings.Join(meta, " · ")
}

func (m Model) footer(st styles) string {
	switch m.mode {
	case filtering:
		return m.filter.View()
	case editingLikes:
		return m.likes.View()
	}
	if m.status != "" {
		return st.dim.Render(m.status)
	}
	if m.view == listView && m.filter.Value() != "" {
		return st.filter.Render(m.filter.Prompt + m.filter.Value())
	}
	return ""
}

func (m Model) helpView() string {
	if m.view == detailView {
		return m.help.View(detailKeys{keyMap: m.keys, admin: m.admin})
	}
	return m.help.View(listKeys{keyMap: m.keys, admin: m.admin})
}

func (m Model) View() string {
	st := m.styles()
	header := m.header(st)
	footer := m.footer(st)
	helpView := m.helpView()

	if m.view == detailView {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer, helpView)
	}

	reserved := lipgloss.Height(header) + lipgloss.Height(footer) + lipgloss.Height(helpView) + 2
	rows := max(m.height-reserved, 1)

	vis := m.visible()
	var body []string
	switch {
	case len(vis) == 0 && m.loading:
		body = append(body, st.dim.Render(i18n.T(m.lang, "feed.loading")))
	case len(vis) == 0:
		body = append(body, st.dim.Render(i18n.T(m.lang, "feed.no_news")))
	default:
		start, end := window(m.cursor, len(vis), rows)
		for i := start; i < end; i++ {
			l := truncate(m.line(vis[i]), m.width-2)
			if i == m.cursor {
				body = append(body, st.selected.Render("> "+l))
			} else {
				body = append(body, "  "+l)
			}
		}
		if end == len(vis) {
			switch {
			case m.loading:
				body = append(body, st.dim.Render("  "+i18n.T(m.lang, "feed.loading")))
			case !m.pager.HasMore():
				body = append(body, st.dim.Render("  "+i18n.T(m.lang, "feed.end")))
			}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "", strings.Join(body, "\n"), "", footer, helpView)
}

// window returns the range of n rows to draw so that cursor stays visible.
func window(cursor, n, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	start = max(start, 0)
	start = min(start, n-rows)
	return start, start + rows
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
