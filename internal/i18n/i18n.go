// Package i18n holds the interface strings shown around articles.
package i18n

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/guyfedwards/newsdesk/internal/constants"
)

//go:embed dictionary.yml
var dictionaryYAML []byte

type Dictionary map[constants.Language]map[string]string

var defaultDictionary = mustParse(dictionaryYAML)

func Parse(raw []byte) (Dictionary, error) {
	var d Dictionary
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("i18n.Parse: %w", err)
	}
	return d, nil
}

func mustParse(raw []byte) Dictionary {
	d, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// T looks key up in lang, then in English, and returns key itself when
// neither has it.
func (d Dictionary) T(lang constants.Language, key string) string {
	if s, ok := d[lang][key]; ok && s != "" {
		return s
	}
	if s, ok := d[constants.DefaultLanguage][key]; ok && s != "" {
		return s
	}
	return key
}

func T(lang constants.Language, key string) string {
	return defaultDictionary.T(lang, key)
}

// Default returns the built-in dictionary.
func Default() Dictionary {
	return defaultDictionary
}

// CategoryLabel is the navigation label of a category; the empty category
// is the top news.
func CategoryLabel(lang constants.Language, category string) string {
	if category == "" {
		return T(lang, "nav.top_news")
	}
	return T(lang, "nav."+category)
}
