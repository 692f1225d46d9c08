package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap/zapcore"

	"github.com/kailas-cloud/vecdesk"
	logpkg "github.com/kailas-cloud/vecdesk/internal/logger"
	"github.com/kailas-cloud/vecdesk/internal/storetest"
)

func init() {
	keyring.MockInit()
}

type cli struct {
	t        *testing.T
	settings string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("VECDESK_ENV", "")
	return &cli{t: t, settings: filepath.Join(t.TempDir(), "settings.yaml")}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--settings", c.settings))
	err := root.Execute()
	return buf.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, "vecdesk %v", args)
	return out
}

func TestVersionCommand(t *testing.T) {
	out := newCLI(t).mustRun("version")
	assert.Contains(t, out, "vecdesk dev")
}

func TestRootCommand_Help(t *testing.T) {
	out := newCLI(t).mustRun("--help")
	for _, sub := range []string{"collections", "objects", "search", "config", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestCLI_LoggerOnCommandContext(t *testing.T) {
	c := newCLI(t)
	root := NewRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"config", "show", "--log-level", "error", "--settings", c.settings})

	cmd, err := root.ExecuteC()
	require.NoError(t, err)
	logger := logpkg.FromContext(cmd.Context())
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel), "configured logger expected, got no-op")
	assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestCLI_NotConfigured(t *testing.T) {
	_, err := newCLI(t).run("collections", "list")
	require.Error(t, err)
	assert.ErrorIs(t, err, vecdesk.ErrNotConfigured)
}

func TestCLI_ConfigSetAndShow(t *testing.T) {
	c := newCLI(t)

	c.mustRun("config", "set", "--url", "localhost:8080/", "--credential", "secret")

	var view connectionView
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("config", "show")), &view))
	assert.Equal(t, "localhost:8080/", view.URL)
	assert.Equal(t, "http://localhost:8080", view.Endpoint)
	assert.True(t, view.HasCredential)

	c.mustRun("config", "set", "--clear")
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("config", "show")), &view))
	assert.Equal(t, "(not configured)", view.Endpoint)
	assert.False(t, view.HasCredential)
}

func TestCLI_Workflow(t *testing.T) {
	store := storetest.New(storetest.WithAPIKeys("secret"))
	server := httptest.NewServer(store)
	t.Cleanup(server.Close)

	c := newCLI(t)
	c.mustRun("config", "set", "--url", server.URL, "--credential", "secret")
	var h vecdesk.Health
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("status")), &h))
	assert.Equal(t, "ok", h.Status)

	c.mustRun("collections", "create", "note", "-p", "title:string", "-p", "views:int", "--description", "Notes")

	var created map[string]string
	out := c.mustRun("objects", "create", "Note", "--data", `{"title":"hello world","views":3}`)
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	id := created["id"]
	require.NotEmpty(t, id)
	c.mustRun("objects", "create", "Note", "-d", `{"title":"other","views":1}`)

	c.mustRun("objects", "update", "Note", id, "--data", `{"views":4}`)
	var props map[string]any
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("objects", "get", "Note", id)), &props))
	assert.Equal(t, "hello world", props["title"])
	assert.InDelta(t, 4, props["views"], 0)

	var rows []vecdesk.Row
	out = c.mustRun("objects", "page", "Note", "-p", "title,views", "--sort", "views:desc", "--limit", "10")
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, id, rows[0].ID)

	out = c.mustRun("search", "Note", "hello", "--type", "bm25")
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "hello world", rows[0].Properties["title"])

	var cols []vecdesk.Collection
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("collections", "list")), &cols))
	require.Len(t, cols, 1)
	assert.Equal(t, "Note", cols[0].Name)
	assert.Equal(t, 2, cols[0].Count)

	c.mustRun("objects", "delete", "Note", id)
	assert.Equal(t, 1, store.ObjectCount("Note"))

	c.mustRun("collections", "delete", "Note")
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("collections", "list")), &cols))
	assert.Empty(t, cols)
}

func TestCLI_RejectsBadInput(t *testing.T) {
	c := newCLI(t)
	c.mustRun("config", "set", "--url", "localhost:1")

	_, err := c.run("objects", "get", "Note", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid object id")

	_, err = c.run("objects", "create", "Note", "--data", `[1,2]`)
	assert.ErrorContains(t, err, "JSON object")

	_, err = c.run("objects", "page", "Note", "--sort", ":desc")
	assert.ErrorContains(t, err, "property is required")

	_, err = c.run("collections", "create", "Note", "-p", ":int")
	assert.ErrorContains(t, err, "name is required")
}

func TestParsePropertyFlag(t *testing.T) {
	p, err := parsePropertyFlag("tags:string[]")
	require.NoError(t, err)
	assert.Equal(t, vecdesk.PropertySchema{Name: "tags", DataType: "string[]"}, p)

	p, err = parsePropertyFlag("body")
	require.NoError(t, err)
	assert.Equal(t, "text", p.DataType)
}
