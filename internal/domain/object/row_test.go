package object

import "testing"

func TestSanitize_StripsReservedKeys(t *testing.T) {
	in := Properties{
		"title":       "hello",
		"id":          "abc",
		AdditionalKey: map[string]any{"id": "abc"},
	}

	out := Sanitize(in)
	if len(out) != 1 || out["title"] != "hello" {
		t.Errorf("Sanitize() = %v", out)
	}
	if _, ok := in["id"]; !ok {
		t.Error("Sanitize must not mutate its input")
	}
}

func TestIsReserved(t *testing.T) {
	if !IsReserved(AdditionalKey) || !IsReserved("id") {
		t.Error("expected sidecar keys to be reserved")
	}
	if IsReserved("title") {
		t.Error("title must not be reserved")
	}
}

func TestRow_ID(t *testing.T) {
	r := Row{Additional: Additional{ID: "1f4e"}}
	if r.ID() != "1f4e" {
		t.Errorf("ID() = %q", r.ID())
	}
	if (Row{}).ID() != "" {
		t.Error("zero row must have empty id")
	}
}
