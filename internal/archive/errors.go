package archive

import "fmt"

// ValidationError reports a record or field that failed validation.
type ValidationError struct {
	Field  string // Offending field name, empty if not field-specific
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return e.Reason
}

// DuplicateFieldError reports a custom field name that collides with an
// existing basic or custom field.
type DuplicateFieldError struct {
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("field %q already exists", e.Name)
}

// StorageError reports a failed read or write of the database document.
type StorageError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
