package archive

import (
	"errors"
	"testing"
)

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()

	want := []string{"Index", "Title", "time", "author_or_publisher"}
	got := s.BasicFields.Names()
	if len(got) != len(want) {
		t.Fatalf("basic fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("basic field %d = %q, want %q", i, got[i], want[i])
		}
	}

	if s.CustomFields.Len() != 0 {
		t.Errorf("custom fields = %d, want 0", s.CustomFields.Len())
	}
}

func TestAddCustomField(t *testing.T) {
	s := DefaultSchema()

	if err := s.AddCustomField("department", "Owning department"); err != nil {
		t.Fatalf("AddCustomField: %v", err)
	}

	desc, ok := s.CustomFields.Get("department")
	if !ok {
		t.Fatal("department not declared")
	}
	if desc != "Owning department" {
		t.Errorf("description = %q, want %q", desc, "Owning department")
	}
}

func TestAddCustomField_DuplicateCustom(t *testing.T) {
	s := DefaultSchema()
	if err := s.AddCustomField("department", "first"); err != nil {
		t.Fatalf("AddCustomField: %v", err)
	}

	err := s.AddCustomField("department", "second")
	var dup *DuplicateFieldError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateFieldError, got %v", err)
	}

	// Schema unchanged
	if desc, _ := s.CustomFields.Get("department"); desc != "first" {
		t.Errorf("description = %q, want %q", desc, "first")
	}
}

func TestAddCustomField_CollidesWithBasic(t *testing.T) {
	s := DefaultSchema()
	for _, name := range []string{"Index", "Title", "time", "author_or_publisher"} {
		err := s.AddCustomField(name, "shadow")
		var dup *DuplicateFieldError
		if !errors.As(err, &dup) {
			t.Errorf("AddCustomField(%q): expected DuplicateFieldError, got %v", name, err)
		}
	}
	if s.CustomFields.Len() != 0 {
		t.Errorf("custom fields = %d, want 0", s.CustomFields.Len())
	}
}

func TestAddCustomField_InvalidName(t *testing.T) {
	s := DefaultSchema()
	for _, name := range []string{"", "with space", "1starts_with_digit", "hy-phen"} {
		err := s.AddCustomField(name, "desc")
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("AddCustomField(%q): expected ValidationError, got %v", name, err)
		}
	}
}

func TestDescriptorsOrder(t *testing.T) {
	s := DefaultSchema()
	s.AddCustomField("department", "d")
	s.AddCustomField("shelf", "s")

	descriptors := s.Descriptors()
	if len(descriptors) != 6 {
		t.Fatalf("len(Descriptors) = %d, want 6", len(descriptors))
	}
	if descriptors[0].Name != "Index" || descriptors[0].Custom {
		t.Errorf("descriptor 0 = %+v, want basic Index", descriptors[0])
	}
	if descriptors[4].Name != "department" || !descriptors[4].Custom {
		t.Errorf("descriptor 4 = %+v, want custom department", descriptors[4])
	}
	if descriptors[5].Name != "shelf" {
		t.Errorf("descriptor 5 = %+v, want custom shelf", descriptors[5])
	}
}
