package settings_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/vecdesk/internal/connection"
	"github.com/kailas-cloud/vecdesk/internal/settings"
)

func init() {
	// Use the mock keyring so tests never touch the real OS keyring.
	keyring.MockInit()
}

func newStore(t *testing.T, service string) *settings.FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vecdesk", "settings.yaml")
	s, err := settings.NewFileStore(path, service, nil)
	require.NoError(t, err)
	return s
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	s := newStore(t, "test-missing")

	st, err := s.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, connection.Settings{}, st)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	s := newStore(t, "test-save-load")
	ctx := context.Background()

	require.NoError(t, s.SaveSettings(ctx, connection.Settings{URL: "localhost:8080", Credential: "secret-key"}))

	st, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", st.URL)
	assert.Equal(t, "secret-key", st.Credential)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-key", "credential must not be written to the file")
}

func TestFileStore_EmptyCredentialRemovesKeyringEntry(t *testing.T) {
	s := newStore(t, "test-clear")
	ctx := context.Background()

	require.NoError(t, s.SaveSettings(ctx, connection.Settings{URL: "http://a", Credential: "k"}))
	require.NoError(t, s.SaveSettings(ctx, connection.Settings{URL: "http://b"}))

	st, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://b", st.URL)
	assert.Empty(t, st.Credential)

	// Clearing twice is fine.
	require.NoError(t, s.SaveSettings(ctx, connection.Settings{URL: "http://b"}))
}

func TestFileStore_CorruptFile(t *testing.T) {
	s := newStore(t, "test-corrupt")
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o700))
	require.NoError(t, os.WriteFile(s.Path(), []byte("url: [unterminated"), 0o600))

	_, err := s.GetSettings(context.Background())
	require.Error(t, err)
}

func TestFileStore_FeedsConnectionState(t *testing.T) {
	s := newStore(t, "test-state")
	ctx := context.Background()
	require.NoError(t, s.SaveSettings(ctx, connection.Settings{URL: "weaviate.local/", Credential: "tok"}))

	conn, err := connection.New(s).Require(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://weaviate.local", conn.URL)
	assert.Equal(t, "tok", conn.Credential)
}

func TestMemory(t *testing.T) {
	m := settings.NewMemory(connection.Settings{URL: "http://a"})
	ctx := context.Background()

	st, err := m.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://a", st.URL)

	require.NoError(t, m.SaveSettings(ctx, connection.Settings{URL: "http://b", Credential: "c"}))
	st, err = m.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, connection.Settings{URL: "http://b", Credential: "c"}, st)
}

// brokenKeyring swaps in a keyring that fails every call until the test ends.
func brokenKeyring(t *testing.T) {
	t.Helper()
	keyring.MockInitWithError(errors.New("keyring locked"))
	t.Cleanup(keyring.MockInit)
}

func TestFileStore_KeyringFailureKeepsFile(t *testing.T) {
	s := newStore(t, "test-keyring-fail")
	ctx := context.Background()
	require.NoError(t, s.SaveSettings(ctx, connection.Settings{URL: "old:8080", Credential: "old-key"}))

	brokenKeyring(t)

	err := s.SaveSettings(ctx, connection.Settings{URL: "new:8080", Credential: "new-key"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyring locked")

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "url: old:8080\n", string(data))
}

func TestFileStore_FileFailureRestoresCredential(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	// The settings dir cannot be created below a regular file.
	s, err := settings.NewFileStore(filepath.Join(blocker, "settings.yaml"), "test-file-fail", nil)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, keyring.Set("test-file-fail", "credential", "old-key"))

	err = s.SaveSettings(ctx, connection.Settings{URL: "new:8080", Credential: "new-key"})
	require.Error(t, err)

	cred, err := keyring.Get("test-file-fail", "credential")
	require.NoError(t, err)
	assert.Equal(t, "old-key", cred)
}

func TestFileStore_FileFailureRestoresMissingCredential(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	s, err := settings.NewFileStore(filepath.Join(blocker, "settings.yaml"), "test-file-fail-empty", nil)
	require.NoError(t, err)

	err = s.SaveSettings(context.Background(), connection.Settings{URL: "new:8080", Credential: "new-key"})
	require.Error(t, err)

	_, err = keyring.Get("test-file-fail-empty", "credential")
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}

func TestFileStore_UnreadableKeyringLoadsURL(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	path := filepath.Join(t.TempDir(), "settings.yaml")
	s, err := settings.NewFileStore(path, "test-keyring-read", zap.New(core))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.SaveSettings(ctx, connection.Settings{URL: "open.local:8080"}))

	brokenKeyring(t)

	st, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, connection.Settings{URL: "open.local:8080"}, st)

	entries := logs.FilterMessage("Credential unavailable, continuing without it").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "test-keyring-read", entries[0].ContextMap()["service"])

	conn, err := connection.New(s).Require(ctx)
	require.NoError(t, err)
	assert.Equal(t, "http://open.local:8080", conn.URL)
}
