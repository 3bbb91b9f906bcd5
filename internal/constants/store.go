package constants

import "time"

// Local storage keys. The values match the keys the web front end wrote to
// browser storage so exported state stays readable.
const (
	InteractionsKey = "article_interactions"
	AdminModeKey    = "admin_mode"
	LanguageKey     = "language"
	ThemeKey        = "theme"
)

// Content query limits
const (
	PageSize     = 30
	RelatedLimit = 20
	TweetLimit   = 20
	HotLimit     = 10
)

const DefaultTranslationDelay = 500 * time.Millisecond
