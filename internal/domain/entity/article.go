// Package entity defines the core domain types of the prefilter: the article
// records read from the input file, the verdicts returned by the relevance
// classifier and the domain-specific errors raised while loading input.
package entity

import (
	"strconv"

	"compliance-prefilter/internal/utils/text"
)

// ArticleID identifies an article in the output table.
// Input ids may be JSON integers or strings; both are kept in their literal
// rendered form so the output table reproduces them unchanged.
type ArticleID string

// IndexID returns the positional id used when an input element carries none.
func IndexID(index int) ArticleID {
	return ArticleID(strconv.Itoa(index))
}

// String implements fmt.Stringer.
func (id ArticleID) String() string {
	return string(id)
}

// ArticleRecord is one input article after shape normalization.
type ArticleRecord struct {
	ID   ArticleID
	Text string
}

// IsBlank reports whether the record has no meaningful text and must be dropped.
// Whitespace includes the separators U+001C..U+001F.
func (r ArticleRecord) IsBlank() bool {
	return text.TrimSpace(r.Text) == ""
}
