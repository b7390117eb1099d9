package text

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LooksLikeHTML reports whether text appears to contain markup.
func LooksLikeHTML(text string) bool {
	open := strings.IndexByte(text, '<')
	return open >= 0 && strings.IndexByte(text[open:], '>') > 0
}

// StripHTML returns the visible text of an HTML fragment or document with
// whitespace runs collapsed to single spaces. Script, style and noscript
// elements are dropped. Plain text is returned unchanged.
func StripHTML(text string) (string, error) {
	if !LooksLikeHTML(text) {
		return text, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	return strings.Join(strings.Fields(doc.Text()), " "), nil
}
