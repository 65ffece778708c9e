package vector

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Metadata holds the descriptive fields of a single document. The embedding
// it annotates lives at the same index in the corpus matrix; metadata is
// optional and a corpus may carry fewer metadata records than embeddings.
type Metadata struct {
	// ID is the logical identifier of the document (e.g. an arXiv id).
	ID string `json:"id"`

	// Title is the document title, stored verbatim.
	Title string `json:"title"`

	// Authors lists author names in source order.
	Authors StringList `json:"authors"`

	// Categories lists category tokens. Source files present categories
	// either as a list or as a single delimited string; decoding normalizes
	// both to the same token sequence.
	Categories CategoryList `json:"categories"`

	// Year is the publication year, zero when unknown.
	Year int `json:"year"`

	// Date is the publication date string as provided by the source.
	Date string `json:"date"`
}

// StringList decodes from either a JSON array of strings or a single
// comma-delimited string. Null and absent values decode to an empty list.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	items, err := decodeStringOrList(data, splitComma)
	if err != nil {
		return fmt.Errorf("vector: invalid string list: %w", err)
	}
	*l = items
	return nil
}

// CategoryList decodes from either a JSON array of strings or a single
// delimited string. String form splits on commas and whitespace, so both
// "cs.AI cs.LG" and ["cs.AI", "cs.LG"] yield the same token sequence.
type CategoryList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *CategoryList) UnmarshalJSON(data []byte) error {
	items, err := decodeStringOrList(data, splitCommaOrSpace)
	if err != nil {
		return fmt.Errorf("vector: invalid category list: %w", err)
	}
	*l = items
	return nil
}

func decodeStringOrList(data []byte, split func(string) []string) ([]string, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var raw []string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		var out []string
		for _, item := range raw {
			out = append(out, split(item)...)
		}
		return out, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return split(s), nil
}

func splitComma(s string) []string {
	return splitAndTrim(s, func(r rune) bool { return r == ',' })
}

func splitCommaOrSpace(s string) []string {
	return splitAndTrim(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func splitAndTrim(s string, isSep func(rune) bool) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, isSep) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
