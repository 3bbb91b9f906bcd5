// Package store keeps the per-article interactions (likes, dislikes, saves,
// pins) the user recorded locally, mirrored to a kv.Store so they survive
// restarts.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/guyfedwards/newsdesk/internal/constants"
	"github.com/guyfedwards/newsdesk/internal/kv"
)

// Store owns the interaction state and persists it after every mutation.
// Writes are last-write-wins; two processes sharing one kv.Store overwrite
// each other.
type Store struct {
	mu    sync.RWMutex
	state State
	kv    kv.Store
	log   *slog.Logger
}

func New(backend kv.Store, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{state: State{}, kv: backend, log: log}
}

// Open creates a Store and loads its persisted state.
func Open(ctx context.Context, backend kv.Store, log *slog.Logger) *Store {
	s := New(backend, log)
	s.Load(ctx)
	return s
}

// Load replaces the in-memory state with the persisted one. Missing or
// unreadable state yields an empty mapping; Load never fails.
func (s *Store) Load(ctx context.Context) {
	state := State{}

	raw, err := s.kv.Get(ctx, constants.InteractionsKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		s.log.Warn("reading interactions failed, starting empty", "error", err)
	default:
		decoded, err := Decode(raw)
		if err != nil {
			s.log.Warn("parsing interactions failed, starting empty", "error", err)
		} else {
			state = decoded
		}
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Persist writes state in full.
func (s *Store) Persist(ctx context.Context, state State) error {
	raw, err := state.Encode()
	if err != nil {
		return fmt.Errorf("store.Persist: %w", err)
	}
	if err := s.kv.Set(ctx, constants.InteractionsKey, raw); err != nil {
		return fmt.Errorf("store.Persist: %w", err)
	}
	return nil
}

// Snapshot returns the current state. Callers must not modify it.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) Get(id string) (Interaction, bool) {
	return s.Snapshot().Get(id)
}

func (s *Store) Reconcile(id string, baseline Baseline) Stats {
	return s.Snapshot().Reconcile(id, baseline)
}

// Apply mutates the record for id, seeding it from baseline if needed, and
// persists the whole mapping. The in-memory state is updated even when the
// write fails.
func (s *Store) Apply(ctx context.Context, id string, m Mutator, baseline Baseline) (Interaction, error) {
	s.mu.Lock()
	s.state = s.state.Apply(id, m, baseline)
	state := s.state
	s.mu.Unlock()

	rec := state[id]
	if err := s.Persist(ctx, state); err != nil {
		s.log.Error("persisting interactions failed", "id", id, "error", err)
		return rec, err
	}
	return rec, nil
}

func (s *Store) Like(ctx context.Context, id string, baselineLikes int) (Interaction, error) {
	return s.Apply(ctx, id, Like, Baseline{Likes: baselineLikes})
}

func (s *Store) Dislike(ctx context.Context, id string, baselineDislikes int) (Interaction, error) {
	return s.Apply(ctx, id, Dislike, Baseline{Dislikes: baselineDislikes})
}

func (s *Store) Save(ctx context.Context, id string, baselineSaves int) (Interaction, error) {
	return s.Apply(ctx, id, Save, Baseline{Saves: baselineSaves})
}

func (s *Store) SetLikes(ctx context.Context, id string, n int) (Interaction, error) {
	return s.Apply(ctx, id, SetLikes(n), Baseline{})
}

func (s *Store) TogglePin(ctx context.Context, id string) (Interaction, error) {
	return s.Apply(ctx, id, TogglePin, Baseline{})
}

// Close closes the backing kv.Store.
func (s *Store) Close() error {
	return s.kv.Close()
}
