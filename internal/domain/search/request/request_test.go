package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/mode"
)

func ptr(f float64) *float64 { return &f }

func TestNew_Defaults(t *testing.T) {
	r, err := New("hello", "Article", "", 0, 0, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Mode() != mode.Hybrid {
		t.Errorf("Mode() = %q, want hybrid", r.Mode())
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), DefaultLimit)
	}
	if r.Properties() != nil {
		t.Errorf("Properties() = %v, want nil", r.Properties())
	}
}

func TestNew_ConfiguredDefaultLimit(t *testing.T) {
	r, err := New("hello", "Article", mode.BM25, 0, 25, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != 25 {
		t.Errorf("Limit() = %d, want 25", r.Limit())
	}
}

func TestNew_VectorDropsProperties(t *testing.T) {
	r, err := New("cats", "Article", mode.Vector, 5, 0, []string{"title"}, ptr(0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Properties() != nil {
		t.Errorf("vector search must drop properties, got %v", r.Properties())
	}
	if r.Alpha() != nil {
		t.Error("alpha only applies to hybrid")
	}
}

func TestNew_DeduplicatesProperties(t *testing.T) {
	r, err := New("cats", "Article", mode.BM25, 5, 0, []string{"title", "body", "title"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(r.Properties(), ","); got != "title,body" {
		t.Errorf("Properties() = %q", got)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		collection string
		mode       mode.Mode
		props      []string
		alpha      *float64
	}{
		{"empty query", " ", "Article", mode.BM25, nil, nil},
		{"long query", strings.Repeat("x", MaxQueryLength+1), "Article", mode.BM25, nil, nil},
		{"bad collection", "q", "Article{", mode.BM25, nil, nil},
		{"bad mode", "q", "Article", mode.Mode("fuzzy"), nil, nil},
		{"bad property", "q", "Article", mode.BM25, []string{"ti\"tle"}, nil},
		{"alpha out of range", "q", "Article", mode.Hybrid, nil, ptr(1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.query, tt.collection, tt.mode, 10, 0, tt.props, tt.alpha)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
