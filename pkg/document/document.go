package document

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kaptinlin/jsonrepair"
)

// Document wraps a decoded JSON value and exposes field projection helpers.
// Required accessors fail with an error naming the entity and field, which
// signals an upstream schema change. Optional accessors collapse absent,
// null, empty, or wrongly-typed values into a single "absent" result so
// callers never have to distinguish the individual degradation modes.
type Document struct {
	value any
}

// Parse decodes raw bytes into a Document. Strict JSON is tried first; on
// failure the input is run through jsonrepair and decoded again, which
// tolerates the minor malformations the upstream API occasionally serves.
func Parse(data []byte) (Document, error) {
	var value any
	if err := json.Unmarshal(data, &value); err == nil {
		return Document{value: value}, nil
	}

	repaired, err := jsonrepair.JSONRepair(string(data))
	if err != nil {
		return Document{}, fmt.Errorf("json repair failed: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &value); err != nil {
		return Document{}, fmt.Errorf("unmarshal failed after repair: %w", err)
	}
	return Document{value: value}, nil
}

// FromValue wraps an already-decoded JSON value.
func FromValue(value any) Document {
	return Document{value: value}
}

// Value returns the underlying decoded JSON value.
func (d Document) Value() any {
	return d.value
}

// Encode reserializes the document to JSON bytes.
func (d Document) Encode() ([]byte, error) {
	data, err := json.Marshal(d.value)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// IsEmpty reports whether the document holds nothing usable: a JSON null,
// an empty string, an empty object, or an empty array.
func (d Document) IsEmpty() bool {
	switch v := d.value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

// AsString returns the document itself as a string, when it is one.
// Used for fields where the API sometimes serves a placeholder string in
// place of an object.
func (d Document) AsString() (string, bool) {
	s, ok := d.value.(string)
	return s, ok
}

// Items returns the document's elements when it is a JSON array.
func (d Document) Items() ([]Document, bool) {
	list, ok := d.value.([]any)
	if !ok {
		return nil, false
	}
	items := make([]Document, len(list))
	for i, v := range list {
		items[i] = Document{value: v}
	}
	return items, true
}

func (d Document) object(entity string) (map[string]any, error) {
	obj, ok := d.value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected an object, got %T", entity, d.value)
	}
	return obj, nil
}

func (d Document) required(entity, field string) (any, error) {
	obj, err := d.object(entity)
	if err != nil {
		return nil, err
	}
	value, ok := obj[field]
	if !ok {
		return nil, fmt.Errorf("%s: missing required field %q", entity, field)
	}
	return value, nil
}

// String reads a required string field. Numeric values are formatted,
// since the API is inconsistent about quoting identifiers like terms and
// docket numbers.
func (d Document) String(entity, field string) (string, error) {
	value, err := d.required(entity, field)
	if err != nil {
		return "", err
	}
	s, ok := stringify(value)
	if !ok {
		return "", fmt.Errorf("%s: field %q: expected a string, got %T", entity, field, value)
	}
	return s, nil
}

// Int reads a required integral field.
func (d Document) Int(entity, field string) (int64, error) {
	value, err := d.required(entity, field)
	if err != nil {
		return 0, err
	}
	n, ok := value.(float64)
	if !ok {
		return 0, fmt.Errorf("%s: field %q: expected a number, got %T", entity, field, value)
	}
	return int64(n), nil
}

// Child reads a required object-valued field.
func (d Document) Child(entity, field string) (Document, error) {
	value, err := d.required(entity, field)
	if err != nil {
		return Document{}, err
	}
	if _, ok := value.(map[string]any); !ok {
		return Document{}, fmt.Errorf("%s: field %q: expected an object, got %T", entity, field, value)
	}
	return Document{value: value}, nil
}

// Array reads a required array-valued field. An empty array is valid and
// yields an empty, non-nil slice.
func (d Document) Array(entity, field string) ([]Document, error) {
	value, err := d.required(entity, field)
	if err != nil {
		return nil, err
	}
	list, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: field %q: expected an array, got %T", entity, field, value)
	}
	items := make([]Document, len(list))
	for i, v := range list {
		items[i] = Document{value: v}
	}
	return items, nil
}

// OptString projects an optional string field. Absent, null, empty, or
// non-string values all collapse to absent.
func (d Document) OptString(field string) (string, bool) {
	obj, ok := d.value.(map[string]any)
	if !ok {
		return "", false
	}
	value, ok := obj[field]
	if !ok {
		return "", false
	}
	s, ok := stringify(value)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// OptInt projects an optional integral field.
func (d Document) OptInt(field string) (int64, bool) {
	obj, ok := d.value.(map[string]any)
	if !ok {
		return 0, false
	}
	n, ok := obj[field].(float64)
	if !ok {
		return 0, false
	}
	return int64(n), true
}

// OptFloat projects an optional numeric field.
func (d Document) OptFloat(field string) (float64, bool) {
	obj, ok := d.value.(map[string]any)
	if !ok {
		return 0, false
	}
	n, ok := obj[field].(float64)
	if !ok {
		return 0, false
	}
	return n, true
}

// OptChild projects an optional field as a sub-document. Absent and null
// collapse to absent; any other value is passed through so callers can
// inspect degraded shapes (e.g. a placeholder string where an object was
// expected).
func (d Document) OptChild(field string) (Document, bool) {
	obj, ok := d.value.(map[string]any)
	if !ok {
		return Document{}, false
	}
	value, ok := obj[field]
	if !ok || value == nil {
		return Document{}, false
	}
	return Document{value: value}, true
}

// OptArray projects an optional array field. Absent, null, an empty list,
// or a non-list value all collapse to absent.
func (d Document) OptArray(field string) ([]Document, bool) {
	obj, ok := d.value.(map[string]any)
	if !ok {
		return nil, false
	}
	list, ok := obj[field].([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	items := make([]Document, len(list))
	for i, v := range list {
		items[i] = Document{value: v}
	}
	return items, true
}

func stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}
