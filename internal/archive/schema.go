package archive

import "regexp"

// Basic field names, fixed for every database.
const (
	FieldIndex             = "Index"
	FieldTitle             = "Title"
	FieldTime              = "time"
	FieldAuthorOrPublisher = "author_or_publisher"
)

// basicFieldOrder is the display order of the basic fields.
var basicFieldOrder = []string{FieldIndex, FieldTitle, FieldTime, FieldAuthorOrPublisher}

// basicFieldDescriptions maps each basic field to its description.
var basicFieldDescriptions = map[string]string{
	FieldIndex:             "Archival index code",
	FieldTitle:             "Document title",
	FieldTime:              "Published time",
	FieldAuthorOrPublisher: "Author or publication name",
}

// validFieldName matches valid custom field names (alphanumeric + underscore,
// must start with letter or underscore).
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Schema declares the fields shared by all records in one database:
// the fixed basic fields plus user-declared custom fields.
type Schema struct {
	BasicFields  *FieldMap `json:"basic_fields"`
	CustomFields *FieldMap `json:"custom_fields"`
}

// FieldDescriptor describes one schema field for display.
type FieldDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Custom      bool   `json:"custom"`
}

// DefaultSchema returns a schema with the fixed basic fields and no
// custom fields.
func DefaultSchema() *Schema {
	basic := NewFieldMap()
	for _, name := range basicFieldOrder {
		basic.Set(name, basicFieldDescriptions[name])
	}
	return &Schema{
		BasicFields:  basic,
		CustomFields: NewFieldMap(),
	}
}

// AddCustomField declares a new custom field. It fails with a
// DuplicateFieldError if the name collides with any basic or custom field,
// and with a ValidationError if the name is blank or not a valid identifier.
func (s *Schema) AddCustomField(name, description string) error {
	if name == "" {
		return &ValidationError{Field: name, Reason: "field name cannot be blank"}
	}
	if !validFieldName.MatchString(name) {
		return &ValidationError{Field: name, Reason: "field name must be alphanumeric with underscores, starting with a letter or underscore"}
	}
	if s.BasicFields.Has(name) || s.CustomFields.Has(name) {
		return &DuplicateFieldError{Name: name}
	}
	s.CustomFields.Set(name, description)
	return nil
}

// Descriptors returns all schema fields in display order: basic fields
// first, then custom fields in declaration order.
func (s *Schema) Descriptors() []FieldDescriptor {
	var out []FieldDescriptor
	for _, name := range s.BasicFields.Names() {
		desc, _ := s.BasicFields.Get(name)
		out = append(out, FieldDescriptor{Name: name, Description: desc})
	}
	for _, name := range s.CustomFields.Names() {
		desc, _ := s.CustomFields.Get(name)
		out = append(out, FieldDescriptor{Name: name, Description: desc, Custom: true})
	}
	return out
}

// normalize fills in missing maps after unmarshalling and restores the
// basic field set if the document omitted it.
func (s *Schema) normalize() {
	if s.BasicFields == nil || s.BasicFields.Len() == 0 {
		s.BasicFields = DefaultSchema().BasicFields
	}
	if s.CustomFields == nil {
		s.CustomFields = NewFieldMap()
	}
}
