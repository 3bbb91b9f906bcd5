package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guyfedwards/newsdesk/internal/content"
)

func TestFlameFor(t *testing.T) {
	cases := map[int]Flame{
		0:    NoFlame,
		99:   NoFlame,
		100:  WarmFlame,
		499:  WarmFlame,
		500:  HotFlame,
		999:  HotFlame,
		1000: SuperHotFlame,
		5000: SuperHotFlame,
	}
	for likes, want := range cases {
		assert.Equal(t, want, FlameFor(likes), "likes %d", likes)
	}
	assert.Equal(t, "", NoFlame.String())
	assert.Equal(t, "super-hot", SuperHotFlame.String())
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "0min", TimeAgo(now, now))
	assert.Equal(t, "59min", TimeAgo(now.Add(-59*time.Minute-30*time.Second), now))
	assert.Equal(t, "1h", TimeAgo(now.Add(-60*time.Minute), now))
	assert.Equal(t, "25h", TimeAgo(now.Add(-25*time.Hour-10*time.Minute), now))
	assert.Equal(t, "0min", TimeAgo(now.Add(time.Hour), now))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1.0K", FormatCount(1000))
	assert.Equal(t, "12.3K", FormatCount(12345))
	assert.Equal(t, "2.5M", FormatCount(2_500_000))
}

func TestSourceHost(t *testing.T) {
	assert.Equal(t, "coindesk.com", SourceHost("https://coindesk.com/markets/a"))
	assert.Equal(t, "example.org", SourceHost("http://example.org"))
	assert.Equal(t, "", SourceHost(""))
}

func TestBadges(t *testing.T) {
	assert.Equal(t, []string{"DeFi"}, Badges(DisplayArticle{Article: content.Article{Tags: []string{"DeFi"}, Category: "crypto"}}))
	assert.Equal(t, []string{"CRYPTO"}, Badges(DisplayArticle{Article: content.Article{Category: "crypto"}}))
	assert.Equal(t, []string{"NEWS"}, Badges(DisplayArticle{Article: content.Article{Category: "ai"}}))
}

func TestFilter(t *testing.T) {
	ds := []DisplayArticle{
		{Article: content.Article{ID: "1", Title: "Bitcoin breaks record"}},
		{Article: content.Article{ID: "2", Title: "Fed holds rates"}},
		{Article: content.Article{ID: "3", Title: "Solana outage"}},
	}
	assert.Equal(t, ds, Filter(ds, "  "))
	assert.Equal(t, []string{"1"}, displayIDs(Filter(ds, "bitcoin")))
	assert.Empty(t, Filter(ds, "zzzz"))
}
