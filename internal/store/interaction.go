package store

import (
	"encoding/json"
	"maps"
)

// Interaction is the locally recorded state for one article. A record only
// exists once the user acted on the article.
type Interaction struct {
	Likes        int  `json:"likes"`
	Dislikes     int  `json:"dislikes"`
	Saves        int  `json:"saves"`
	UserLiked    bool `json:"userLiked"`
	UserDisliked bool `json:"userDisliked"`
	UserSaved    bool `json:"userSaved"`
	IsPinned     bool `json:"isPinned"`
}

// Baseline holds the counters the content store supplies for an article.
type Baseline struct {
	Likes    int
	Dislikes int
	Saves    int
}

// Stats are the counters shown for an article.
type Stats struct {
	Likes    int  `json:"likes"`
	Dislikes int  `json:"dislikes"`
	Saves    int  `json:"saves"`
	IsPinned bool `json:"isPinned"`
}

// Mutator transforms a record. Mutators must not retain the record.
type Mutator func(Interaction) Interaction

func Like(i Interaction) Interaction {
	i.Likes++
	i.UserLiked = true
	return i
}

func Dislike(i Interaction) Interaction {
	i.Dislikes++
	i.UserDisliked = true
	return i
}

func Save(i Interaction) Interaction {
	i.Saves++
	i.UserSaved = true
	return i
}

// SetLikes overrides the like counter.
func SetLikes(n int) Mutator {
	return func(i Interaction) Interaction {
		i.Likes = n
		return i
	}
}

func TogglePin(i Interaction) Interaction {
	i.IsPinned = !i.IsPinned
	return i
}

func seed(b Baseline) Interaction {
	return Interaction{Likes: b.Likes, Dislikes: b.Dislikes, Saves: b.Saves}
}

// State maps article ids to their interaction records. A State is never
// modified in place; Apply returns a new one.
type State map[string]Interaction

func (s State) Get(id string) (Interaction, bool) {
	i, ok := s[id]
	return i, ok
}

// Apply seeds a record from baseline when id has none, applies m and returns
// the resulting state. s is left unchanged.
func (s State) Apply(id string, m Mutator, baseline Baseline) State {
	current, ok := s[id]
	if !ok {
		current = seed(baseline)
	}
	next := make(State, len(s)+1)
	maps.Copy(next, s)
	next[id] = m(current)
	return next
}

// Reconcile returns the counters to display for id. Without a local record
// the baseline is returned as is. With one, the record wins and baseline is
// ignored: the record froze the baseline it was seeded from.
func (s State) Reconcile(id string, baseline Baseline) Stats {
	i, ok := s[id]
	if !ok {
		return Stats{Likes: baseline.Likes, Dislikes: baseline.Dislikes, Saves: baseline.Saves}
	}
	return Stats{Likes: i.Likes, Dislikes: i.Dislikes, Saves: i.Saves, IsPinned: i.IsPinned}
}

func (s State) Encode() (string, error) {
	if s == nil {
		s = State{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func Decode(raw string) (State, error) {
	var s State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	if s == nil {
		s = State{}
	}
	return s, nil
}
