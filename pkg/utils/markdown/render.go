// ABOUTME: Markdown rendering for collection descriptions
// ABOUTME: Input is stripped of raw HTML first; only markdown formatting survives

package markdown

import (
	"strings"

	"github.com/russross/blackfriday/v2"

	"natureshare-pipeline/pkg/utils/html"
)

// Render converts a collection description to HTML for the feed _display
// block. Raw HTML in the source is stripped before rendering so collection
// authors cannot inject markup.
func Render(text string) string {
	plain := html.StripTags(text)
	if plain == "" {
		return ""
	}

	rendered := blackfriday.Run([]byte(plain),
		blackfriday.WithExtensions(blackfriday.CommonExtensions))

	return strings.TrimSpace(string(rendered))
}
