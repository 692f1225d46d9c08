package storetest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/vecdesk/internal/normalize"
)

func do(t *testing.T, srv *httptest.Server, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer key")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func gql(t *testing.T, srv *httptest.Server, doc string) map[string]any {
	t.Helper()
	raw, _ := json.Marshal(map[string]string{"query": doc})
	resp, out := do(t, srv, http.MethodPost, "/v1/graphql", string(raw))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return out
}

func newFixture(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	fake := New(WithAPIKeys("key"))
	fake.AddClass(normalize.ClassInfo{Class: "Article", Properties: []normalize.PropertyInfo{
		{Name: "title", DataType: []string{"text"}},
		{Name: "views", DataType: []string{"int"}},
	}})
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	return fake, srv
}

func TestServer_Auth(t *testing.T) {
	_, srv := newFixture(t)
	resp, err := srv.Client().Get(srv.URL + "/v1/schema")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_SchemaLifecycle(t *testing.T) {
	fake, srv := newFixture(t)

	resp, _ := do(t, srv, http.MethodPost, "/v1/schema", `{"class": "Author", "properties": [{"name": "name", "dataType": ["text"]}]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, srv, http.MethodPost, "/v1/schema", `{"class": "Author", "properties": []}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["error"].([]any)[0].(map[string]any)["message"], "already exists")

	resp, _ = do(t, srv, http.MethodGet, "/v1/schema/Author", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	fake.AddObject("Author", map[string]any{"name": "x"})
	resp, _ = do(t, srv, http.MethodDelete, "/v1/schema/Author", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, fake.ObjectCount("Author"))

	resp, _ = do(t, srv, http.MethodGet, "/v1/schema/Author", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ObjectLifecycle(t *testing.T) {
	_, srv := newFixture(t)

	resp, created := do(t, srv, http.MethodPost, "/v1/objects", `{"class": "Article", "properties": {"title": "a"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := created["id"].(string)

	resp, _ = do(t, srv, http.MethodPatch, "/v1/objects/"+id, `{"class": "Article", "properties": {"views": 3}}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, got := do(t, srv, http.MethodGet, "/v1/objects/"+id, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"title": "a", "views": float64(3)}, got["properties"])

	resp, _ = do(t, srv, http.MethodDelete, "/v1/objects/"+id, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodGet, "/v1/objects/"+id, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_GraphQLPageAndCount(t *testing.T) {
	fake, srv := newFixture(t)
	for i, title := range []string{"b", "a", "c"} {
		fake.AddObject("Article", map[string]any{"title": title, "views": float64(i)})
	}

	out := gql(t, srv, "{\n  Aggregate {\n    Article {\n      meta { count }\n    }\n  }\n}")
	count := out["data"].(map[string]any)["Aggregate"].(map[string]any)["Article"].([]any)[0].(map[string]any)["meta"].(map[string]any)["count"]
	assert.Equal(t, float64(3), count)

	doc := "{\n  Get {\n    Article(limit: 2, offset: 1, sort: [{path: [\"title\"], order: desc}]) {\n      title\n      _additional { id }\n    }\n  }\n}"
	rows := gql(t, srv, doc)["data"].(map[string]any)["Get"].(map[string]any)["Article"].([]any)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].(map[string]any)["title"])
	assert.Equal(t, "a", rows[1].(map[string]any)["title"])
	assert.NotEmpty(t, rows[0].(map[string]any)["_additional"].(map[string]any)["id"])
}

func TestServer_GraphQLSearch(t *testing.T) {
	fake, srv := newFixture(t)
	fake.AddObject("Article", map[string]any{"title": "solar power"})
	fake.AddObject("Article", map[string]any{"title": "solar solar wind"})
	fake.AddObject("Article", map[string]any{"title": "coal"})

	doc := "{\n  Get {\n    Article(bm25: {query: \"Solar\", properties: [\"title\"]}, limit: 10) {\n      title\n      _additional { id score }\n    }\n  }\n}"
	rows := gql(t, srv, doc)["data"].(map[string]any)["Get"].(map[string]any)["Article"].([]any)
	require.Len(t, rows, 2)
	first := rows[0].(map[string]any)
	assert.Equal(t, "solar solar wind", first["title"])
	assert.Equal(t, "2", first["_additional"].(map[string]any)["score"])
}

func TestServer_GraphQLUnknownClass(t *testing.T) {
	_, srv := newFixture(t)
	out := gql(t, srv, "{\n  Get {\n    Ghost {\n      _additional { id }\n    }\n  }\n}")
	assert.NotEmpty(t, out["errors"])
	assert.Nil(t, out["data"].(map[string]any)["Get"])
}

func TestServer_FailureInjection(t *testing.T) {
	fake, srv := newFixture(t)
	fake.Fail(Failure{Method: http.MethodPost, Path: "/v1/graphql", Query: "Aggregate", Status: 500, Body: `{"error": "boom"}`, Times: 1})

	raw, _ := json.Marshal(map[string]string{"query": "{ Aggregate { Article { meta { count } } } }"})
	resp, body := do(t, srv, http.MethodPost, "/v1/graphql", string(raw))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "boom", body["error"])

	resp, _ = do(t, srv, http.MethodPost, "/v1/graphql", string(raw))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, fake.Requests())
	assert.Len(t, fake.Queries(), 1)
}

func TestServer_BodyPreservedAfterPeek(t *testing.T) {
	fake := New()
	req := httptest.NewRequest(http.MethodPost, "/v1/graphql", bytes.NewBufferString(`{"query": "{ nothing }"}`))
	rr := httptest.NewRecorder()
	fake.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "unsupported query")
}
