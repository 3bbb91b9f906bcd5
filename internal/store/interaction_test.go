package store

import "testing"

func TestReconcileWithoutRecordReturnsBaseline(t *testing.T) {
	s := State{}
	got := s.Reconcile("a", Baseline{Likes: 5, Dislikes: 2, Saves: 1})
	want := Stats{Likes: 5, Dislikes: 2, Saves: 1}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestReconcileIgnoresNewBaselineOnceRecorded(t *testing.T) {
	s := State{}.Apply("a", Like, Baseline{Likes: 5})

	got := s.Reconcile("a", Baseline{Likes: 50})
	if got.Likes != 6 {
		t.Errorf("expected likes to be 6, got %d", got.Likes)
	}
}

func TestLikeIsNotIdempotent(t *testing.T) {
	s := State{}.
		Apply("a", Like, Baseline{Likes: 5}).
		Apply("a", Like, Baseline{Likes: 5})

	if got := s.Reconcile("a", Baseline{}).Likes; got != 7 {
		t.Errorf("expected likes to be 7, got %d", got)
	}
	rec, _ := s.Get("a")
	if !rec.UserLiked {
		t.Error("expected userLiked to be set")
	}
}

func TestSetLikesOverridesIncrements(t *testing.T) {
	s := State{}.
		Apply("a", Like, Baseline{Likes: 5}).
		Apply("a", SetLikes(100), Baseline{})

	if got := s.Reconcile("a", Baseline{Likes: 5}).Likes; got != 100 {
		t.Errorf("expected likes to be 100, got %d", got)
	}
}

func TestTogglePinTwiceRestores(t *testing.T) {
	s := State{}.Apply("a", TogglePin, Baseline{})
	if !s.Reconcile("a", Baseline{}).IsPinned {
		t.Fatal("expected article to be pinned")
	}

	s = s.Apply("a", TogglePin, Baseline{})
	if s.Reconcile("a", Baseline{}).IsPinned {
		t.Error("expected article to be unpinned")
	}
}

func TestSeedKeepsOtherCounters(t *testing.T) {
	s := State{}.Apply("a", Dislike, Baseline{Likes: 3, Dislikes: 1, Saves: 2})

	rec, ok := s.Get("a")
	if !ok {
		t.Fatal("expected a record")
	}
	want := Interaction{Likes: 3, Dislikes: 2, Saves: 2, UserDisliked: true}
	if rec != want {
		t.Errorf("expected %+v, got %+v", want, rec)
	}
}

func TestApplyLeavesReceiverUnchanged(t *testing.T) {
	before := State{}.Apply("a", Like, Baseline{})
	after := before.Apply("a", Like, Baseline{})

	if before["a"].Likes != 1 {
		t.Errorf("expected original state to keep 1 like, got %d", before["a"].Likes)
	}
	if after["a"].Likes != 2 {
		t.Errorf("expected new state to have 2 likes, got %d", after["a"].Likes)
	}
}

func TestSaveSetsFlag(t *testing.T) {
	s := State{}.Apply("a", Save, Baseline{Saves: 4})
	rec, _ := s.Get("a")
	if rec.Saves != 5 || !rec.UserSaved {
		t.Errorf("expected 5 saves and userSaved, got %+v", rec)
	}
}

func TestDecodeBrowserShape(t *testing.T) {
	s, err := Decode(`{"abc":{"likes":3,"dislikes":0,"saves":1,"userLiked":true,"userDisliked":false,"userSaved":false}}`)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	rec := s["abc"]
	if rec.Likes != 3 || !rec.UserLiked || rec.IsPinned {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestDecodeNull(t *testing.T) {
	s, err := Decode("null")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if s == nil || len(s) != 0 {
		t.Errorf("expected empty state, got %v", s)
	}
}
