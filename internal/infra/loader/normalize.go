package loader

import (
	"bytes"
	"encoding/json"

	"compliance-prefilter/internal/domain/entity"
)

// SkipReason explains why an element produced no record.
type SkipReason string

const (
	// SkipUnsupportedShape marks elements that are neither strings nor objects.
	SkipUnsupportedShape SkipReason = "unsupported_shape"
	// SkipBlankText marks elements whose text is empty or whitespace only.
	SkipBlankText SkipReason = "blank_text"
)

// Skipped describes one dropped element.
type Skipped struct {
	Index  int
	Reason SkipReason
}

// Batch is the normalized input: the records to classify in input order and
// the elements that were dropped.
type Batch struct {
	Records []entity.ArticleRecord
	Skipped []Skipped
}

// Normalize resolves raw items into article records.
//
//   - string: text is the element, id is its index
//   - object: text is the "text" member (absent or non-string means empty),
//     id is the "id" member (absent means the index)
//   - anything else is skipped
//
// Records with blank text are skipped as well.
func Normalize(items []Item) Batch {
	var batch Batch
	for index, item := range items {
		var record entity.ArticleRecord
		switch item.Kind {
		case KindString:
			record = entity.ArticleRecord{ID: entity.IndexID(index), Text: item.Text}
		case KindObject:
			record = entity.ArticleRecord{
				ID:   objectID(item.Fields, index),
				Text: objectText(item.Fields),
			}
		default:
			batch.Skipped = append(batch.Skipped, Skipped{Index: index, Reason: SkipUnsupportedShape})
			continue
		}

		if record.IsBlank() {
			batch.Skipped = append(batch.Skipped, Skipped{Index: index, Reason: SkipBlankText})
			continue
		}
		batch.Records = append(batch.Records, record)
	}
	return batch
}

// LoadBatch loads path and normalizes its elements.
func LoadBatch(path string) (Batch, error) {
	items, err := Load(path)
	if err != nil {
		return Batch{}, err
	}
	return Normalize(items), nil
}

func objectText(fields map[string]json.RawMessage) string {
	raw, ok := fields["text"]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// objectID renders the "id" member. Strings are unquoted, numbers keep their
// JSON literal form (1e2 stays 1e2), booleans render as true or false, null
// renders empty and any other value keeps its compact JSON.
func objectID(fields map[string]json.RawMessage, index int) entity.ArticleID {
	raw, ok := fields["id"]
	if !ok {
		return entity.IndexID(index)
	}

	raw = bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(raw, []byte("null")):
		return ""
	case len(raw) > 0 && raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return entity.ArticleID(s)
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return entity.ArticleID(raw)
	}
	return entity.ArticleID(compact.String())
}
