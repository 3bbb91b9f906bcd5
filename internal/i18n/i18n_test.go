package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guyfedwards/newsdesk/internal/constants"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Loading more...", T(constants.English, "feed.loading"))
	assert.Equal(t, "加载中...", T(constants.Chinese, "feed.loading"))
	assert.Equal(t, "Lädt...", T(constants.German, "feed.loading"))
}

func TestFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Hot", T(constants.Japanese, "feed.hot"))
	assert.Equal(t, "Hot", T(constants.Language("xx"), "feed.hot"))
}

func TestFallsBackToKey(t *testing.T) {
	assert.Equal(t, "no.such.key", T(constants.French, "no.such.key"))
}

func TestEveryLanguageHasTheSameBaseKeys(t *testing.T) {
	d := Default()
	for _, lang := range constants.Languages {
		require.Contains(t, d, lang)
	}
	for key := range d[constants.Chinese] {
		for _, lang := range constants.Languages {
			assert.Contains(t, d[lang], key, "%s missing %s", lang, key)
		}
	}
}

func TestEmptyEntryFallsBack(t *testing.T) {
	d, err := Parse([]byte("en:\n  a: A\nfr:\n  a: \"\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "A", d.T(constants.French, "a"))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Top News", CategoryLabel(constants.English, ""))
	assert.Equal(t, "人工智能", CategoryLabel(constants.Chinese, "ai"))
	assert.Equal(t, "Regulierung", CategoryLabel(constants.German, "regulation"))
}
