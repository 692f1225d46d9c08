package object

import (
	"context"
	"encoding/json"
)

// mockStore implements the consumer interface for tests.
// Responses are raw JSON decoded into dest, the way the transport does.
type mockStore struct {
	lookupFn  func(path string) (string, bool, error)
	postFn    func(path string, body any) (string, error)
	patchFn   func(path string, body any) error
	deleteFn  func(path string) error
	graphqlFn func(document string) (string, error)

	ops []string
}

func fill(raw string, dest any) error {
	if dest == nil || raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (m *mockStore) Lookup(_ context.Context, op, path string, dest any) (bool, error) {
	m.ops = append(m.ops, op)
	if m.lookupFn == nil {
		return false, nil
	}
	raw, found, err := m.lookupFn(path)
	if err != nil || !found {
		return found, err
	}
	return true, fill(raw, dest)
}

func (m *mockStore) Post(_ context.Context, op, path string, body, dest any) error {
	m.ops = append(m.ops, op)
	if m.postFn == nil {
		return nil
	}
	raw, err := m.postFn(path, body)
	if err != nil {
		return err
	}
	return fill(raw, dest)
}

func (m *mockStore) Patch(_ context.Context, op, path string, body any) error {
	m.ops = append(m.ops, op)
	if m.patchFn != nil {
		return m.patchFn(path, body)
	}
	return nil
}

func (m *mockStore) Delete(_ context.Context, op, path string) error {
	m.ops = append(m.ops, op)
	if m.deleteFn != nil {
		return m.deleteFn(path)
	}
	return nil
}

func (m *mockStore) GraphQL(_ context.Context, op, document string, dest any) error {
	m.ops = append(m.ops, op)
	if m.graphqlFn == nil {
		return nil
	}
	raw, err := m.graphqlFn(document)
	if err != nil {
		return err
	}
	return fill(raw, dest)
}
