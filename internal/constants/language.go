package constants

type Language string

const (
	English  Language = "en"
	Chinese  Language = "zh"
	Japanese Language = "ja"
	Korean   Language = "ko"
	French   Language = "fr"
	German   Language = "de"

	DefaultLanguage = English
)

// Languages lists the supported languages in the order the language switcher
// cycles through them.
var Languages = []Language{English, Chinese, Japanese, Korean, French, German}

func (l Language) Supported() bool {
	for _, s := range Languages {
		if s == l {
			return true
		}
	}
	return false
}

// Next returns the language after l in the switcher order, wrapping around.
func (l Language) Next() Language {
	for i, s := range Languages {
		if s == l {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return DefaultLanguage
}

type Theme string

const (
	DarkTheme    Theme = "dark"
	LightTheme   Theme = "light"
	DefaultTheme       = DarkTheme
)

// Categories known to the content schema. An empty category means all news.
var Categories = []string{
	"crypto",
	"web3",
	"ai",
	"markets",
	"macro",
	"capital",
	"companies",
	"regulation",
	"data",
}
