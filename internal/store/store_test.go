package store

import (
	"context"
	"errors"
	"testing"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/kv"
	"github.com/guyfedwards/newsdesk/internal/kv/memorykv"
)

type failingKV struct {
	kv.Store
}

func (failingKV) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("disk on fire")
}

func (failingKV) Set(ctx context.Context, key, value string) error {
	return errors.New("disk on fire")
}

func TestLoadEmpty(t *testing.T) {
	s := Open(context.Background(), memorykv.New(), nil)
	if len(s.Snapshot()) != 0 {
		t.Errorf("expected empty state, got %v", s.Snapshot())
	}
}

func TestLoadMalformedStartsEmpty(t *testing.T) {
	backend := memorykv.New()
	_ = backend.Set(context.Background(), constants.InteractionsKey, "{not json")

	s := Open(context.Background(), backend, nil)
	if len(s.Snapshot()) != 0 {
		t.Errorf("expected empty state, got %v", s.Snapshot())
	}
}

func TestLoadReadErrorStartsEmpty(t *testing.T) {
	s := Open(context.Background(), failingKV{}, nil)
	if len(s.Snapshot()) != 0 {
		t.Errorf("expected empty state, got %v", s.Snapshot())
	}
}

func TestEveryMutationPersists(t *testing.T) {
	ctx := context.Background()
	backend := memorykv.New()
	s := Open(ctx, backend, nil)

	if _, err := s.Like(ctx, "a", 0); err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if _, err := s.Save(ctx, "a", 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := s.TogglePin(ctx, "b"); err != nil {
		t.Fatalf("TogglePin failed: %v", err)
	}

	if backend.Writes() != 3 {
		t.Errorf("expected 3 writes, got %d", backend.Writes())
	}
}

func TestApplyPersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	s := New(failingKV{}, nil)

	rec, err := s.Like(ctx, "a", 1)
	if err == nil {
		t.Fatal("expected persist error")
	}
	if rec.Likes != 2 {
		t.Errorf("expected 2 likes, got %d", rec.Likes)
	}
	if got := s.Reconcile("a", Baseline{}).Likes; got != 2 {
		t.Errorf("expected reconciled likes to be 2, got %d", got)
	}
}

func TestEndToEndSurvivesReload(t *testing.T) {
	ctx := context.Background()
	backend := memorykv.New()
	s := Open(ctx, backend, nil)
	baseline := Baseline{Likes: 5}

	if got := s.Reconcile("a", baseline).Likes; got != 5 {
		t.Fatalf("expected 5 likes, got %d", got)
	}

	_, _ = s.Like(ctx, "a", baseline.Likes)
	if got := s.Reconcile("a", baseline).Likes; got != 6 {
		t.Fatalf("expected 6 likes, got %d", got)
	}

	_, _ = s.Like(ctx, "a", baseline.Likes)
	if got := s.Reconcile("a", baseline).Likes; got != 7 {
		t.Fatalf("expected 7 likes, got %d", got)
	}

	_, _ = s.SetLikes(ctx, "a", 100)
	if got := s.Reconcile("a", baseline).Likes; got != 100 {
		t.Fatalf("expected 100 likes, got %d", got)
	}

	reloaded := Open(ctx, backend, nil)
	if got := reloaded.Reconcile("a", baseline).Likes; got != 100 {
		t.Errorf("expected 100 likes after reload, got %d", got)
	}
}

func TestSetLikesSeedsZeroBaseline(t *testing.T) {
	ctx := context.Background()
	s := Open(ctx, memorykv.New(), nil)

	_, _ = s.SetLikes(ctx, "a", 10)
	rec, _ := s.Get("a")
	if rec.Likes != 10 || rec.Dislikes != 0 || rec.Saves != 0 {
		t.Errorf("unexpected record %+v", rec)
	}
}
