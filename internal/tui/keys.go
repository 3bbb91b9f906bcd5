package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Back        key.Binding
	Prev        key.Binding
	Next        key.Binding
	Like        key.Binding
	Dislike     key.Binding
	Save        key.Binding
	Pin         key.Binding
	EditLikes   key.Binding
	Admin       key.Binding
	Language    key.Binding
	Theme       key.Binding
	Filter      key.Binding
	Category    key.Binding
	PrevCat     key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	FilterClear key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:        key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
		Prev:        key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous")),
		Next:        key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next")),
		Like:        key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		Dislike:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dislike")),
		Save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Pin:         key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "pin")),
		EditLikes:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "edit likes")),
		Admin:       key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "admin")),
		Language:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
		Theme:       key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Category:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "category")),
		PrevCat:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev category")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c")),
		Confirm:     key.NewBinding(key.WithKeys("enter")),
		Cancel:      key.NewBinding(key.WithKeys("esc")),
		FilterClear: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter")),
	}
}

// listKeys is shown in the feed view.
type listKeys struct {
	keyMap
	admin bool
}

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Like, k.Filter, k.Category, k.Language, k.Help, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	cols := [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Refresh},
		{k.Like, k.Dislike, k.Save},
		{k.Filter, k.FilterClear, k.Category, k.PrevCat},
		{k.Language, k.Theme, k.Admin, k.Quit},
	}
	if k.admin {
		cols = append(cols, []key.Binding{k.Pin, k.EditLikes})
	}
	return cols
}

// detailKeys is shown while reading an article.
type detailKeys struct {
	keyMap
	admin bool
}

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Prev, k.Next, k.Like, k.Help}
}

func (k detailKeys) FullHelp() [][]key.Binding {
	cols := [][]key.Binding{
		{k.Up, k.Down, k.Back},
		{k.Prev, k.Next},
		{k.Like, k.Dislike, k.Save},
		{k.Language, k.Theme, k.Admin},
	}
	if k.admin {
		cols = append(cols, []key.Binding{k.Pin, k.EditLikes})
	}
	return cols
}
