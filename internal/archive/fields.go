// Package archive implements the schema-plus-record data model backed by a
// single JSON document.
package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FieldMap is an insertion-ordered mapping from field name to string value.
// It marshals to a JSON object whose keys appear in insertion order, so the
// document on disk reflects the order fields were declared.
type FieldMap struct {
	keys   []string
	values map[string]string
}

// NewFieldMap returns an empty FieldMap.
func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string]string)}
}

// Set stores a value under name. A new name is appended to the order;
// setting an existing name updates the value in place.
func (m *FieldMap) Set(name, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

// Get returns the value for name and whether it exists.
func (m *FieldMap) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Has reports whether name is present.
func (m *FieldMap) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Len returns the number of entries.
func (m *FieldMap) Len() int {
	return len(m.keys)
}

// Names returns the field names in insertion order.
func (m *FieldMap) Names() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Equal reports whether two maps hold the same entries in the same order.
func (m *FieldMap) Equal(other *FieldMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, name := range m.keys {
		if other.keys[i] != name {
			return false
		}
		if m.values[name] != other.values[name] {
			return false
		}
	}
	return true
}

// MarshalJSON writes the map as a JSON object in insertion order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, preserving the key order in the input.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.values = make(map[string]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil // JSON null leaves the map empty
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		m.Set(name, value)
	}

	// Consume closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
