package feed

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/store"
)

// DisplayArticle is an article as shown: possibly translated text plus the
// reconciled counters. It is rebuilt on every render and never stored.
type DisplayArticle struct {
	content.Article
	Stats store.Stats
}

func (d DisplayArticle) Flame() Flame {
	return FlameFor(d.Stats.Likes)
}

// Reconciler resolves the displayed counters of an article.
type Reconciler interface {
	Reconcile(id string, baseline store.Baseline) store.Stats
}

// Translator produces a display copy of an article in another language.
type Translator interface {
	Translate(ctx context.Context, a *content.Article, lang constants.Language) (*content.Article, error)
}

func BaselineOf(a content.Article) store.Baseline {
	return store.Baseline{Likes: a.Likes, Dislikes: a.Dislikes, Saves: a.Saves}
}

// Reconcile pairs each article with its displayed counters, keeping order.
func Reconcile(articles []content.Article, r Reconciler) []DisplayArticle {
	out := make([]DisplayArticle, len(articles))
	for i, a := range articles {
		out[i] = DisplayArticle{Article: a, Stats: r.Reconcile(a.ID, BaselineOf(a))}
	}
	return out
}

// Order puts pinned articles first. The sort is stable so the relative order
// within pinned and unpinned articles is kept, which keeps repeated renders
// from reshuffling the list.
func Order(in []DisplayArticle) []DisplayArticle {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b DisplayArticle) int {
		switch {
		case a.Stats.IsPinned == b.Stats.IsPinned:
			return 0
		case a.Stats.IsPinned:
			return -1
		default:
			return 1
		}
	})
	return out
}

// Hot ranks articles by displayed likes, most liked first, and keeps the top
// n.
func Hot(articles []content.Article, r Reconciler, n int) []DisplayArticle {
	ds := Reconcile(articles, r)
	slices.SortStableFunc(ds, func(a, b DisplayArticle) int {
		return cmp.Compare(b.Stats.Likes, a.Stats.Likes)
	})
	if n > 0 && len(ds) > n {
		ds = ds[:n]
	}
	return ds
}

type Assembler struct {
	reconciler Reconciler
	translator Translator
	log        *slog.Logger
}

func NewAssembler(r Reconciler, t Translator, log *slog.Logger) *Assembler {
	if log == nil {
		log = slog.Default()
	}
	return &Assembler{reconciler: r, translator: t, log: log}
}

// Assemble reconciles, orders and translates articles for display. The
// articles are translated concurrently. If any translation fails the
// untranslated list is returned together with the error.
func (as *Assembler) Assemble(ctx context.Context, articles []content.Article, lang constants.Language) ([]DisplayArticle, error) {
	ordered := Order(Reconcile(articles, as.reconciler))
	if lang == constants.DefaultLanguage || as.translator == nil {
		return ordered, nil
	}

	translated := make([]DisplayArticle, len(ordered))
	g, gctx := errgroup.WithContext(ctx)
	for i := range ordered {
		g.Go(func() error {
			a, err := as.translator.Translate(gctx, &ordered[i].Article, lang)
			if err != nil {
				return err
			}
			translated[i] = DisplayArticle{Article: *a, Stats: ordered[i].Stats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		as.log.Warn("translation failed, showing original text", "language", lang, "error", err)
		return ordered, err
	}
	return translated, nil
}

// One builds the display version of a single article.
func (as *Assembler) One(ctx context.Context, a *content.Article, lang constants.Language) (DisplayArticle, error) {
	d := DisplayArticle{Article: *a, Stats: as.reconciler.Reconcile(a.ID, BaselineOf(*a))}
	if lang == constants.DefaultLanguage || as.translator == nil {
		return d, nil
	}
	tr, err := as.translator.Translate(ctx, a, lang)
	if err != nil {
		as.log.Warn("translation failed, showing original text", "id", a.ID, "language", lang, "error", err)
		return d, err
	}
	d.Article = *tr
	return d, nil
}
