// ABOUTME: HTML utilities for stripping tags from provider captions and descriptions
// ABOUTME: Backed by goquery so entity decoding and nesting are handled properly

package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML removes HTML markup from a string, returning the text content
// with entities decoded and whitespace collapsed.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Unparsable input is returned as-is rather than lost
		return strings.TrimSpace(html)
	}

	doc.Find("script, style").Remove()
	text := doc.Text()

	// Collapse runs of whitespace left behind by removed block elements
	return strings.Join(strings.Fields(text), " ")
}

// StripTags removes markup but preserves line structure, for text that goes
// on to markdown rendering where blank lines are significant.
func StripTags(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}

	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text())
}
