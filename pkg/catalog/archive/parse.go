package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Shape names the top-level layout a search response came back in.
type Shape string

const (
	ShapeNested Shape = "response.docs" // {"response":{"docs":[...]}}
	ShapeFlat   Shape = "docs"          // {"docs":[...]}
	ShapeList   Shape = "list"          // [...]
)

// ErrUnknownShape is returned when a body matches none of the known layouts.
var ErrUnknownShape = errors.New("unrecognized search response shape")

// RawDoc is one upstream document with its fields still undecoded.
type RawDoc map[string]json.RawMessage

// ParseDocs tries each known shape in order; the first structural match wins.
// Array elements that are not JSON objects are skipped.
func ParseDocs(body []byte) ([]RawDoc, Shape, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, "", ErrUnknownShape
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, "", err
		}
		return toDocs(items), ShapeList, nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &top); err != nil {
		return nil, "", err
	}

	if inner, ok := top["response"]; ok {
		var resp map[string]json.RawMessage
		if json.Unmarshal(inner, &resp) == nil {
			if items, ok := docsArray(resp["docs"]); ok {
				return toDocs(items), ShapeNested, nil
			}
		}
	}
	if items, ok := docsArray(top["docs"]); ok {
		return toDocs(items), ShapeFlat, nil
	}
	return nil, "", ErrUnknownShape
}

func docsArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func toDocs(items []json.RawMessage) []RawDoc {
	docs := make([]RawDoc, 0, len(items))
	for _, item := range items {
		var d RawDoc
		if err := json.Unmarshal(item, &d); err != nil || d == nil {
			continue
		}
		docs = append(docs, d)
	}
	return docs
}

// Text coerces a field to a string. Missing or null fields give fallback,
// lists are joined with sep, and other scalars keep their JSON text.
func (d RawDoc) Text(field, sep, fallback string) string {
	raw, ok := d[field]
	if !ok {
		return fallback
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return fallback
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				var s string
				if json.Unmarshal(item, &s) == nil {
					parts = append(parts, s)
				} else {
					parts = append(parts, string(bytes.TrimSpace(item)))
				}
			}
			return strings.Join(parts, sep)
		}
	}
	return string(raw)
}
