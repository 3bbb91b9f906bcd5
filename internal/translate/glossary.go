package translate

import (
	_ "embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/guyfedwards/newsdesk/internal/constants"
)

//go:embed glossary.yml
var defaultGlossary []byte

type Term struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type entry struct {
	re *regexp.Regexp
	to string
}

// Glossary replaces known source terms, whole-word and case-insensitive, in
// the order they were given.
type Glossary struct {
	entries []entry
}

func NewGlossary(terms ...Term) Glossary {
	g := Glossary{entries: make([]entry, 0, len(terms))}
	for _, t := range terms {
		g.entries = append(g.entries, entry{
			re: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(t.From) + `\b`),
			to: t.To,
		})
	}
	return g
}

// Apply substitutes every term in text. Words without a mapping are kept.
func (g Glossary) Apply(text string) string {
	for _, e := range g.entries {
		text = e.re.ReplaceAllLiteralString(text, e.to)
	}
	return text
}

func (g Glossary) Len() int {
	return len(g.entries)
}

type languageFile struct {
	Placeholder string `yaml:"placeholder"`
	Terms       []Term `yaml:"terms"`
}

func parseGlossaries(raw []byte) (map[constants.Language]Glossary, map[constants.Language]string, error) {
	var file map[constants.Language]languageFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("translate.parseGlossaries: %w", err)
	}
	glossaries := make(map[constants.Language]Glossary, len(file))
	placeholders := make(map[constants.Language]string, len(file))
	for lang, lf := range file {
		glossaries[lang] = NewGlossary(lf.Terms...)
		placeholders[lang] = lf.Placeholder
	}
	return glossaries, placeholders, nil
}
