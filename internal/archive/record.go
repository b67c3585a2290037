package archive

import (
	"strings"
	"time"
)

// ContentMode indicates how a record's content field is interpreted.
type ContentMode string

const (
	// ModeText marks content holding the literal document text.
	ModeText ContentMode = "text"
	// ModeFile marks content holding a filesystem path to the document.
	// The referenced file is not copied or checked for existence at
	// write time.
	ModeFile ContentMode = "file"
)

// Valid reports whether the mode is one of the enumerated values.
func (m ContentMode) Valid() bool {
	return m == ModeText || m == ModeFile
}

// Record is a single archive entry: the four basic fields, content, and
// values for schema-declared custom fields.
type Record struct {
	Index             string      `json:"Index"`
	Title             string      `json:"Title"`
	Time              string      `json:"time"`
	AuthorOrPublisher string      `json:"author_or_publisher"`
	ContentMode       ContentMode `json:"content_mode"`
	Content           string      `json:"content"`
	CustomFields      *FieldMap   `json:"custom_fields"`
	CreatedAt         string      `json:"created_at"`
}

// NewRecord builds a record with created_at stamped to the current time.
// Custom field values are applied in the order given by the schema.
func NewRecord(index, title, pubTime, author string, mode ContentMode, content string, custom *FieldMap) *Record {
	if custom == nil {
		custom = NewFieldMap()
	}
	return &Record{
		Index:             index,
		Title:             title,
		Time:              pubTime,
		AuthorOrPublisher: author,
		ContentMode:       mode,
		Content:           content,
		CustomFields:      custom,
		CreatedAt:         time.Now().Format(time.RFC3339),
	}
}

// Validate checks the record against the schema: every basic field must be
// non-blank, the content mode must be one of the enumerated values, and
// every custom field key must be declared in the schema.
func (r *Record) Validate(schema *Schema) error {
	basics := []struct {
		name  string
		value string
	}{
		{FieldIndex, r.Index},
		{FieldTitle, r.Title},
		{FieldTime, r.Time},
		{FieldAuthorOrPublisher, r.AuthorOrPublisher},
	}
	for _, f := range basics {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "required field is blank"}
		}
	}

	if !r.ContentMode.Valid() {
		return &ValidationError{
			Field:  "content_mode",
			Reason: `must be "text" or "file"`,
		}
	}

	if r.CustomFields != nil {
		for _, name := range r.CustomFields.Names() {
			if !schema.CustomFields.Has(name) {
				return &ValidationError{Field: name, Reason: "custom field not declared in schema"}
			}
		}
	}

	return nil
}

// Equal reports whether two records hold identical values in every field.
func (r *Record) Equal(other *Record) bool {
	if r.Index != other.Index ||
		r.Title != other.Title ||
		r.Time != other.Time ||
		r.AuthorOrPublisher != other.AuthorOrPublisher ||
		r.ContentMode != other.ContentMode ||
		r.Content != other.Content ||
		r.CreatedAt != other.CreatedAt {
		return false
	}
	a, b := r.CustomFields, other.CustomFields
	if a == nil {
		a = NewFieldMap()
	}
	if b == nil {
		b = NewFieldMap()
	}
	return a.Equal(b)
}
