// Package htmltext turns feed HTML into plain markdown text blocks.
package htmltext

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/guyfedwards/newsdesk/internal/content"
)

var converter = md.NewConverter("", true, nil)

// Markdown converts an HTML fragment to markdown. Input that fails to
// convert is returned trimmed as-is.
func Markdown(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	out, err := converter.ConvertString(html)
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(out)
}

// Blocks converts an HTML fragment to one text block per paragraph.
func Blocks(html string) []content.Block {
	return content.Paragraphs(Markdown(html))
}
