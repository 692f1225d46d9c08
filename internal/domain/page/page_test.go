package page

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/vecdesk/internal/domain"
)

func TestNewSort(t *testing.T) {
	s, err := NewSort("createdAt", "DESC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Path() != "createdAt" || s.Order() != Desc {
		t.Errorf("unexpected sort %+v", s)
	}

	s, err = NewSort("createdAt", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Order() != Asc {
		t.Errorf("default order = %q, want asc", s.Order())
	}
}

func TestNewSort_Invalid(t *testing.T) {
	if _, err := NewSort("createdAt", "sideways"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad order, got %v", err)
	}
	if _, err := NewSort(`a"]`, Asc); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad path, got %v", err)
	}
}

func TestNewPage(t *testing.T) {
	p, err := New(50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Limit() != 50 || p.Offset() != 0 {
		t.Errorf("unexpected page %+v", p)
	}

	if _, err := New(0, 0); err == nil {
		t.Error("expected error for zero limit")
	}
	if _, err := New(10, -1); err == nil {
		t.Error("expected error for negative offset")
	}
}
