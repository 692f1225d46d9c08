package property

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/vecdesk/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	p, err := New("title", []string{"text"}, "headline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "title" || p.PrimaryType() != "text" || p.Description() != "headline" {
		t.Errorf("unexpected property: %+v", p)
	}
	if p.IsArray() {
		t.Error("text must not be an array")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		propName string
		dataType []string
	}{
		{"empty name", "", []string{"text"}},
		{"bad name", "my-prop", []string{"text"}},
		{"no type", "title", nil},
		{"blank type", "title", []string{" "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.propName, tt.dataType, "")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestProperty_Kinds(t *testing.T) {
	tags := Reconstruct("tags", []string{"text[]"}, "")
	if !tags.IsArray() || tags.ScalarType() != "text" {
		t.Errorf("tags: IsArray=%v ScalarType=%q", tags.IsArray(), tags.ScalarType())
	}

	ref := Reconstruct("author", []string{"Person"}, "")
	if !ref.IsReference() {
		t.Error("Person must be a reference type")
	}
	if Reconstruct("title", []string{"text"}, "").IsReference() {
		t.Error("text must not be a reference type")
	}

	if !Reconstruct("createdAt", []string{"date"}, "").IsDate() {
		t.Error("date must be a date type")
	}
	if !Reconstruct("dates", []string{"date[]"}, "").IsDate() {
		t.Error("date[] must be a date type")
	}
}

func TestDataType_ReturnsCopy(t *testing.T) {
	src := []string{"text"}
	p := Reconstruct("title", src, "")
	src[0] = "int"
	if p.PrimaryType() != "text" {
		t.Error("Reconstruct must copy the data type slice")
	}
	dt := p.DataType()
	dt[0] = "number"
	if p.PrimaryType() != "text" {
		t.Error("DataType must return a copy")
	}
}
