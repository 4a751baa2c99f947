package mcptool

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"doc-recon/internal/converter"
	"doc-recon/internal/model"
	"doc-recon/internal/openapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captured is the last request seen by the test API
type captured struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   map[string]any
}

func newTestAPI(t *testing.T, status int, reply string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Method = r.Method
		got.Path = r.URL.EscapedPath()
		got.Query = r.URL.Query()
		got.Header = r.Header.Clone()
		got.Body = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			require.NoError(t, json.Unmarshal(data, &got.Body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func petsDocument() *openapi.Document {
	return converter.Convert([]model.EndpointRecord{
		{Method: "GET", Path: "/pets", Description: "List pets", Parameters: []model.Parameter{
			{Name: "limit", Type: "integer", Location: "query"},
			{Name: "X-Trace", Type: "string", Location: "header"},
		}},
		{Method: "POST", Path: "/pets", Description: "Create a pet", Parameters: []model.Parameter{
			{Name: "name", Type: "string", Location: "body", Required: true},
		}},
		{Method: "DELETE", Path: "/pets/{petId}", Parameters: []model.Parameter{
			{Name: "petId", Type: "int64", Location: "path", Required: true},
		}},
		{Method: "PATCH", Path: "/pets/{petId}"},
		{Method: "GET", Path: "/"},
	}, "https://api.example.com")
}

func findOperation(t *testing.T, doc *openapi.Document, name string) Operation {
	t.Helper()
	for _, op := range Operations(doc) {
		if op.Name == name {
			return op
		}
	}
	t.Fatalf("operation %s not found", name)
	return Operation{}
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		method, path, expected string
	}{
		{"GET", "/pets", "get_pets"},
		{"delete", "/pets/{petId}", "delete_pets_petId"},
		{"GET", "/", "get_root"},
		{"POST", "/v1/user-groups/{id}/members", "post_v1_user_groups_id_members"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, OperationName(tt.method, tt.path), tt.method+" "+tt.path)
	}

	long := OperationName("GET", "/a-very-long-segment/another-very-long-segment/and-one-more-segment/tail")
	assert.LessOrEqual(t, len(long), 64)
}

func TestOperationsFollowDocumentOrder(t *testing.T) {
	ops := Operations(petsDocument())

	names := make([]string, 0, len(ops))
	for _, op := range ops {
		names = append(names, op.Name)
	}
	assert.Equal(t, []string{"get_pets", "post_pets", "delete_pets_petId", "patch_pets_petId", "get_root"}, names)
	assert.True(t, ops[1].HasBody)
	assert.False(t, ops[0].HasBody)
	assert.Nil(t, Operations(nil))
}

func TestOperationsDeduplicateNames(t *testing.T) {
	doc := converter.Convert([]model.EndpointRecord{
		{Method: "GET", Path: "/a-b"},
		{Method: "GET", Path: "/a_b"},
	}, "https://api.example.com")

	ops := Operations(doc)
	require.Len(t, ops, 2)
	assert.Equal(t, "get_a_b", ops[0].Name)
	assert.Equal(t, "get_a_b_2", ops[1].Name)
}

func TestInputSchema(t *testing.T) {
	doc := petsDocument()

	schema := findOperation(t, doc, "delete_pets_petId").InputSchema()
	assert.Equal(t, "object", schema.Type)
	assert.Equal(t, []string{"petId"}, schema.Required)
	assert.Equal(t, map[string]any{"type": "integer"}, schema.Properties["petId"])

	// placeholders without a documented parameter are still required
	schema = findOperation(t, doc, "patch_pets_petId").InputSchema()
	assert.Equal(t, []string{"petId"}, schema.Required)

	schema = findOperation(t, doc, "get_pets").InputSchema()
	assert.Empty(t, schema.Required)
	assert.Contains(t, schema.Properties, "limit")
	assert.Contains(t, schema.Properties, "X-Trace")
}

func TestCallSendsQueryAndHeaders(t *testing.T) {
	api, got := newTestAPI(t, http.StatusOK, `[{"id":1,"name":"Rex"}]`)
	op := findOperation(t, petsDocument(), "get_pets")

	resp, err := Call(context.Background(), api.Client(), api.URL, op, map[string]any{
		"limit":   float64(10),
		"X-Trace": "abc",
		"sort":    []any{"name", "id"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "GET", got.Method)
	assert.Equal(t, "/pets", got.Path)
	assert.Equal(t, []string{"10"}, got.Query["limit"])
	assert.Equal(t, []string{"name", "id"}, got.Query["sort"])
	assert.Equal(t, "abc", got.Header.Get("X-Trace"))
	assert.Nil(t, got.Body)
	assert.Contains(t, resp.Text(), "\n  {\n")
}

func TestCallSubstitutesPathParameters(t *testing.T) {
	api, got := newTestAPI(t, http.StatusNoContent, "")
	op := findOperation(t, petsDocument(), "delete_pets_petId")

	resp, err := Call(context.Background(), api.Client(), api.URL+"/", op, map[string]any{"petId": "a b/c"})
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Equal(t, "DELETE", got.Method)
	assert.Equal(t, "/pets/a%20b%2Fc", got.Path)
}

func TestCallSendsRemainingArgumentsAsBody(t *testing.T) {
	api, got := newTestAPI(t, http.StatusCreated, `{"id":7}`)
	op := findOperation(t, petsDocument(), "post_pets")

	resp, err := Call(context.Background(), api.Client(), api.URL, op, map[string]any{
		"name": "Rex",
		"tag":  "dog",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "POST", got.Method)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, map[string]any{"name": "Rex", "tag": "dog"}, got.Body)
	assert.Empty(t, got.Query)
}

func TestCallMissingArguments(t *testing.T) {
	doc := petsDocument()

	_, err := Call(context.Background(), http.DefaultClient, "https://api.example.com", findOperation(t, doc, "post_pets"), nil)
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = Call(context.Background(), http.DefaultClient, "https://api.example.com", findOperation(t, doc, "patch_pets_petId"), map[string]any{})
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), "petId")
}

func TestCallRequiresHTTPServer(t *testing.T) {
	op := findOperation(t, petsDocument(), "get_pets")

	_, err := Call(context.Background(), http.DefaultClient, "", op, nil)
	assert.ErrorIs(t, err, ErrNoServer)

	_, err = Call(context.Background(), http.DefaultClient, "file:///tmp", op, nil)
	assert.ErrorIs(t, err, ErrNoServer)
}

func TestResponseTextKeepsNonJSON(t *testing.T) {
	resp := &Response{Status: 200, Body: []byte("plain text")}
	assert.Equal(t, "plain text", resp.Text())
}
