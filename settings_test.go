package vecdesk

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/kailas-cloud/vecdesk/internal/normalize"
	"github.com/kailas-cloud/vecdesk/internal/storetest"
)

func TestMemorySettings(t *testing.T) {
	ctx := context.Background()
	s := MemorySettings(Settings{URL: "a"})

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", got.URL)

	require.NoError(t, s.SaveSettings(ctx, Settings{URL: "b", Credential: "k"}))
	got, err = s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, Settings{URL: "b", Credential: "k"}, got)
}

func TestFileSettings_SharedBetweenClients(t *testing.T) {
	keyring.MockInit()
	ctx := context.Background()

	fake := storetest.New(storetest.WithAPIKeys("secret"))
	fake.AddClass(normalize.ClassInfo{Class: "Note", Properties: []normalize.PropertyInfo{
		{Name: "text", DataType: []string{"text"}},
	}})
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	writerStore, err := FileSettings(path, "vecdesk-test", nil)
	require.NoError(t, err)
	readerStore, err := FileSettings(path, "vecdesk-test", nil)
	require.NoError(t, err)

	writer, err := New(WithSettings(writerStore))
	require.NoError(t, err)
	reader, err := New(WithSettings(readerStore))
	require.NoError(t, err)

	_, err = reader.ListCollections(ctx)
	require.ErrorIs(t, err, ErrNotConfigured)

	require.NoError(t, writer.SaveSettings(ctx, Settings{URL: server.URL, Credential: "secret"}))

	cols, err := reader.ListCollections(ctx)
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.Equal(t, "Note", cols[0].Name)
	assert.Equal(t, server.URL, reader.CurrentEndpoint())
}
