// ABOUTME: Tests for HTML stripping helpers
// ABOUTME: Covers tag removal, entity decoding and line preservation

package html

import (
	"strings"
	"testing"
)

func TestStripHTMLRemovesTags(t *testing.T) {
	got := StripHTML("<p>A <b>fox</b> at dusk</p>")
	if got != "A fox at dusk" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestStripHTMLDecodesEntities(t *testing.T) {
	got := StripHTML("fish &amp; chips")
	if got != "fish & chips" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestStripHTMLRemovesScripts(t *testing.T) {
	got := StripHTML("before<script>alert(1)</script>after")
	if strings.Contains(got, "alert") {
		t.Errorf("script content must be removed, got %q", got)
	}
}

func TestStripHTMLCollapsesWhitespace(t *testing.T) {
	got := StripHTML("<div>one</div>\n\n<div>two</div>")
	if got != "one two" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestStripHTMLEmpty(t *testing.T) {
	if got := StripHTML(""); got != "" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestStripTagsPreservesLines(t *testing.T) {
	input := "Fox!\n\n--- #natureshare.org\ntags: [night]\n---"
	got := StripTags(input)
	if got != input {
		t.Errorf("plain text with newlines must survive unchanged, got %q", got)
	}
}

func TestStripTagsRemovesMarkup(t *testing.T) {
	got := StripTags("<b>Fox!</b>\nsecond line")
	if got != "Fox!\nsecond line" {
		t.Errorf("unexpected result %q", got)
	}
}
