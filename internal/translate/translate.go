// Package translate produces display copies of articles in another language
// using fixed per-language glossaries. It simulates the latency of a real
// translation service.
package translate

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"sync"
	"time"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
)

type Translator struct {
	glossaries   map[constants.Language]Glossary
	placeholders map[constants.Language]string
	delay        time.Duration

	cacheMu sync.Mutex
	cache   map[uint64]*content.Article
}

type Option func(*Translator)

// WithDelay sets the simulated latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(t *Translator) {
		t.delay = d
	}
}

// WithGlossary replaces the glossary of one language.
func WithGlossary(lang constants.Language, g Glossary) Option {
	return func(t *Translator) {
		t.glossaries[lang] = g
	}
}

// WithCache memoizes results by language and article text.
func WithCache() Option {
	return func(t *Translator) {
		t.cache = make(map[uint64]*content.Article)
	}
}

func New(opts ...Option) *Translator {
	glossaries, placeholders, err := parseGlossaries(defaultGlossary)
	if err != nil {
		// the glossary is embedded at build time
		panic(err)
	}
	t := &Translator{
		glossaries:   glossaries,
		placeholders: placeholders,
		delay:        constants.DefaultTranslationDelay,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Translate returns a copy of a with its text in lang. For the default
// language a itself is returned, without delay. a is never modified.
//
// Unsupported languages get no substitutions and the default-language
// placeholder for missing content.
func (t *Translator) Translate(ctx context.Context, a *content.Article, lang constants.Language) (*content.Article, error) {
	if lang == constants.DefaultLanguage {
		return a, nil
	}

	var key uint64
	if t.cache != nil {
		key = cacheKey(a, lang)
		t.cacheMu.Lock()
		cached, ok := t.cache[key]
		t.cacheMu.Unlock()
		if ok {
			return cached.Clone(), nil
		}
	}

	if err := sleep(ctx, t.delay); err != nil {
		return nil, err
	}

	out := t.apply(a, lang)

	if t.cache != nil {
		t.cacheMu.Lock()
		t.cache[key] = out.Clone()
		t.cacheMu.Unlock()
	}
	return out, nil
}

func (t *Translator) apply(a *content.Article, lang constants.Language) *content.Article {
	g := t.glossaries[lang]
	out := a.Clone()

	if len(out.Content) == 0 {
		placeholder, ok := t.placeholders[lang]
		if !ok || placeholder == "" {
			placeholder = t.placeholders[constants.DefaultLanguage]
		}
		out.Content = []content.Block{content.Paragraph(placeholder)}
	}

	out.Title = g.Apply(out.Title)
	if out.Summary != "" {
		out.Summary = g.Apply(out.Summary)
	}
	for i := range out.Content {
		b := &out.Content[i]
		if b.Type != content.BlockType {
			continue
		}
		for j := range b.Children {
			s := &b.Children[j]
			if s.Type == content.SpanType && s.Text != "" {
				s.Text = g.Apply(s.Text)
			}
		}
	}
	return out
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cacheKey(a *content.Article, lang constants.Language) uint64 {
	h := fnv.New64a()
	h.Write([]byte(lang))
	h.Write([]byte{0})
	h.Write([]byte(a.ID))
	h.Write([]byte{0})
	h.Write([]byte(a.Title))
	h.Write([]byte{0})
	h.Write([]byte(a.Summary))
	h.Write([]byte{0})
	if raw, err := json.Marshal(a.Content); err == nil {
		h.Write(raw)
	}
	return h.Sum64()
}
