// Package prefs stores the user's display preferences next to the
// interaction mapping.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/kv"
)

var (
	ErrUnsupportedLanguage = errors.New("prefs: unsupported language")
	ErrUnsupportedTheme    = errors.New("prefs: unsupported theme")
)

type Prefs struct {
	kv          kv.Store
	log         *slog.Logger
	defaultLang constants.Language
}

func New(backend kv.Store, log *slog.Logger) *Prefs {
	if log == nil {
		log = slog.Default()
	}
	return &Prefs{kv: backend, log: log, defaultLang: constants.DefaultLanguage}
}

// WithDefaultLanguage sets the language used until the user picks one.
func (p *Prefs) WithDefaultLanguage(lang constants.Language) *Prefs {
	if lang.Supported() {
		p.defaultLang = lang
	}
	return p
}

func (p *Prefs) get(ctx context.Context, key string) (string, bool) {
	v, err := p.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			p.log.Warn("reading preference", "key", key, "error", err)
		}
		return "", false
	}
	return v, true
}

// AdminMode is on only when the stored flag is exactly "true".
func (p *Prefs) AdminMode(ctx context.Context) bool {
	v, _ := p.get(ctx, constants.AdminModeKey)
	return v == "true"
}

func (p *Prefs) SetAdminMode(ctx context.Context, on bool) error {
	v := "false"
	if on {
		v = "true"
	}
	if err := p.kv.Set(ctx, constants.AdminModeKey, v); err != nil {
		return fmt.Errorf("prefs.SetAdminMode: %w", err)
	}
	return nil
}

func (p *Prefs) ToggleAdminMode(ctx context.Context) (bool, error) {
	on := !p.AdminMode(ctx)
	if err := p.SetAdminMode(ctx, on); err != nil {
		return !on, err
	}
	return on, nil
}

// Language returns the stored language, or the default when nothing usable
// is stored.
func (p *Prefs) Language(ctx context.Context) constants.Language {
	v, ok := p.get(ctx, constants.LanguageKey)
	lang := constants.Language(v)
	if !ok || !lang.Supported() {
		return p.defaultLang
	}
	return lang
}

func (p *Prefs) SetLanguage(ctx context.Context, lang constants.Language) error {
	if !lang.Supported() {
		return fmt.Errorf("prefs.SetLanguage: %w: %q", ErrUnsupportedLanguage, lang)
	}
	if err := p.kv.Set(ctx, constants.LanguageKey, string(lang)); err != nil {
		return fmt.Errorf("prefs.SetLanguage: %w", err)
	}
	return nil
}

// CycleLanguage switches to the next supported language.
func (p *Prefs) CycleLanguage(ctx context.Context) (constants.Language, error) {
	next := p.Language(ctx).Next()
	if err := p.SetLanguage(ctx, next); err != nil {
		return p.Language(ctx), err
	}
	return next, nil
}

func (p *Prefs) Theme(ctx context.Context) constants.Theme {
	v, _ := p.get(ctx, constants.ThemeKey)
	if constants.Theme(v) == constants.LightTheme {
		return constants.LightTheme
	}
	return constants.DarkTheme
}

func (p *Prefs) SetTheme(ctx context.Context, theme constants.Theme) error {
	if theme != constants.DarkTheme && theme != constants.LightTheme {
		return fmt.Errorf("prefs.SetTheme: %w: %q", ErrUnsupportedTheme, theme)
	}
	if err := p.kv.Set(ctx, constants.ThemeKey, string(theme)); err != nil {
		return fmt.Errorf("prefs.SetTheme: %w", err)
	}
	return nil
}

func (p *Prefs) ToggleTheme(ctx context.Context) (constants.Theme, error) {
	next := constants.LightTheme
	if p.Theme(ctx) == constants.LightTheme {
		next = constants.DarkTheme
	}
	if err := p.SetTheme(ctx, next); err != nil {
		return p.Theme(ctx), err
	}
	return next, nil
}
