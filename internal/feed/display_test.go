package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/content"
	"github.com/guyfedwards/newsdesk/internal/store"
	"github.com/guyfedwards/newsdesk/internal/translate"
)

func displayIDs(ds []DisplayArticle) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func pinned(ids ...string) store.State {
	s := store.State{}
	for _, id := range ids {
		s = s.Apply(id, store.TogglePin, store.Baseline{})
	}
	return s
}

func TestOrderPinnedFirstStable(t *testing.T) {
	in := Reconcile([]content.Article{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}, pinned("B", "D"))

	out := Order(in)

	assert.Equal(t, []string{"B", "D", "A", "C"}, displayIDs(out))
	assert.Equal(t, []string{"A", "B", "C", "D"}, displayIDs(in))
	assert.Equal(t, out, Order(out))
}

func TestOrderNothingPinned(t *testing.T) {
	in := Reconcile([]content.Article{{ID: "A"}, {ID: "B"}, {ID: "C"}}, store.State{})
	assert.Equal(t, []string{"A", "B", "C"}, displayIDs(Order(in)))
}

func TestReconcileUsesBaselineWithoutRecord(t *testing.T) {
	a := content.Article{ID: "x", Likes: 4, Dislikes: 2, Saves: 1}
	ds := Reconcile([]content.Article{a}, store.State{})
	assert.Equal(t, store.Stats{Likes: 4, Dislikes: 2, Saves: 1}, ds[0].Stats)
	assert.Equal(t, 4, ds[0].Article.Likes)
}

func TestReconcilePrefersRecord(t *testing.T) {
	a := content.Article{ID: "x", Likes: 5}
	s := store.State{}.Apply("x", store.Like, BaselineOf(a))
	a.Likes = 50

	ds := Reconcile([]content.Article{a}, s)
	assert.Equal(t, 6, ds[0].Stats.Likes)
	assert.Equal(t, 50, ds[0].Article.Likes)
}

func TestHot(t *testing.T) {
	as := []content.Article{
		{ID: "a", Likes: 10},
		{ID: "b", Likes: 300},
		{ID: "c", Likes: 20},
		{ID: "d", Likes: 20},
	}
	s := store.State{}.Apply("a", store.SetLikes(1000), store.Baseline{})

	hot := Hot(as, s, 3)
	assert.Equal(t, []string{"a", "b", "c"}, displayIDs(hot))
	assert.Equal(t, SuperHotFlame, hot[0].Flame())
}

type failingTranslator struct{}

func (failingTranslator) Translate(context.Context, *content.Article, constants.Language) (*content.Article, error) {
	return nil, errors.New("translation service down")
}

func TestAssembleTranslatesInOrder(t *testing.T) {
	as := []content.Article{
		{ID: "1", Title: "Bitcoin rally"},
		{ID: "2", Title: "Market update"},
	}
	asm := NewAssembler(pinned("2"), translate.New(translate.WithDelay(0)), nil)

	ds, err := asm.Assemble(context.Background(), as, constants.Chinese)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "2", ds[0].ID)
	assert.True(t, ds[0].Stats.IsPinned)
	assert.Equal(t, "比特币 rally", ds[1].Title)
	assert.Equal(t, "Bitcoin rally", as[0].Title)
}

func TestAssembleEnglishIsIdentity(t *testing.T) {
	as := []content.Article{{ID: "1", Title: "Bitcoin rally"}}
	asm := NewAssembler(store.State{}, failingTranslator{}, nil)

	ds, err := asm.Assemble(context.Background(), as, constants.English)
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin rally", ds[0].Title)
}

func TestAssembleFailureKeepsOriginal(t *testing.T) {
	as := []content.Article{{ID: "1", Title: "Bitcoin rally"}, {ID: "2", Title: "Other"}}
	asm := NewAssembler(pinned("2"), failingTranslator{}, nil)

	ds, err := asm.Assemble(context.Background(), as, constants.French)
	require.Error(t, err)
	assert.Equal(t, []string{"2", "1"}, displayIDs(ds))
	assert.Equal(t, "Bitcoin rally", ds[1].Title)
}

func TestAssembleOne(t *testing.T) {
	a := &content.Article{ID: "1", Title: "Ethereum market news", Likes: 3}
	s := store.State{}.Apply("1", store.Like, BaselineOf(*a))
	asm := NewAssembler(s, translate.New(translate.WithDelay(time.Millisecond)), nil)

	d, err := asm.One(context.Background(), a, constants.German)
	require.NoError(t, err)
	assert.Equal(t, 4, d.Stats.Likes)
	assert.Equal(t, "Ethereum Markt news", d.Title)
	assert.Equal(t, "Ethereum market news", a.Title)
}
