// Package loader reads the article input file.
//
// The input is a JSON document holding either a bare list or an object with an
// "articles" list. Each element may be a string or an object with optional
// "id" and "text" fields. Load resolves the document into a list of tagged
// Items once, and Normalize turns those into uniform article records.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"compliance-prefilter/internal/domain/entity"
)

// articlesKey is the wrapping key accepted for object-shaped input.
const articlesKey = "articles"

// ItemKind tags the shape of a raw input element.
type ItemKind int

const (
	// KindOther is any element that is neither a string nor an object.
	KindOther ItemKind = iota
	// KindString is a bare text element.
	KindString
	// KindObject is an object with optional "id" and "text" fields.
	KindObject
)

// String implements fmt.Stringer.
func (k ItemKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "other"
	}
}

// Item is one raw element of the input list.
type Item struct {
	Kind ItemKind

	// Text holds the element itself for KindString.
	Text string

	// Fields holds the undecoded members for KindObject.
	Fields map[string]json.RawMessage
}

// Load reads path and returns its elements in order.
//
// Errors:
//   - entity.ErrInputNotFound (wrapped) if the file does not exist
//   - *entity.ParseError if the file is not valid JSON
//   - *entity.FormatError if the top-level value is neither a list nor an
//     object whose "articles" member is a list
func Load(path string) ([]Item, error) {
	// #nosec G304 -- path comes from the operator's configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes an input document. path is only used in error messages.
func Parse(path string, data []byte) ([]Item, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &entity.ParseError{Path: path, Err: err}
	}

	elements, err := topLevelList(path, doc)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(elements))
	for _, raw := range elements {
		items = append(items, newItem(raw))
	}
	return items, nil
}

// topLevelList returns the elements of a bare list, or of the "articles"
// member of an object.
func topLevelList(path string, doc json.RawMessage) ([]json.RawMessage, error) {
	switch firstByte(doc) {
	case '[':
		return decodeList(path, doc)

	case '{':
		var object map[string]json.RawMessage
		if err := json.Unmarshal(doc, &object); err != nil {
			return nil, &entity.ParseError{Path: path, Err: err}
		}
		wrapped, ok := object[articlesKey]
		if !ok || firstByte(wrapped) != '[' {
			return nil, &entity.FormatError{Path: path}
		}
		return decodeList(path, wrapped)

	default:
		return nil, &entity.FormatError{Path: path}
	}
}

func decodeList(path string, raw json.RawMessage) ([]json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, &entity.ParseError{Path: path, Err: err}
	}
	return elements, nil
}

func newItem(raw json.RawMessage) Item {
	switch firstByte(raw) {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return Item{Kind: KindString, Text: s}
		}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err == nil {
			return Item{Kind: KindObject, Fields: fields}
		}
	}
	return Item{Kind: KindOther}
}

func firstByte(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
