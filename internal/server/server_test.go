package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"doc-recon/internal/openapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func petsDocument(title string) *openapi.Document {
	doc := openapi.New(title, "API documentation scraped from https://petstore.example.com")
	doc.Paths.Ensure("/pets").Set("get", &openapi.Operation{
		Summary:    "List pets",
		Parameters: []openapi.Parameter{},
		Responses: map[string]openapi.Response{
			"200": {Description: "Successful response"},
		},
	})
	return doc
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandlerRoutes(t *testing.T) {
	srv, err := New(petsDocument("Pets <API>"), DefaultOptions())
	require.NoError(t, err)
	h := srv.Handler(nil)

	ui := get(t, h, "/")
	assert.Equal(t, http.StatusOK, ui.Code)
	assert.Contains(t, ui.Body.String(), "<title>Pets &lt;API&gt;</title>")
	assert.Contains(t, ui.Body.String(), `"/openapi.json"`)
	assert.Contains(t, ui.Body.String(), `"/events"`)

	doc := get(t, h, "/openapi.json")
	assert.Equal(t, "application/json", doc.Header().Get("Content-Type"))
	parsed, err := openapi.Unmarshal(doc.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"/pets"}, parsed.Paths.Keys())

	yml := get(t, h, "/openapi.yaml")
	assert.Equal(t, "application/yaml", yml.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(yml.Body.String(), "openapi:"))

	assert.Equal(t, http.StatusNotFound, get(t, h, "/missing").Code)
}

func TestHandlerBaseURLAndFallthrough(t *testing.T) {
	opt := DefaultOptions()
	opt.BaseURL = "/docs"
	srv, err := New(petsDocument("Pets"), opt)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := srv.Handler(next)

	assert.Equal(t, http.StatusOK, get(t, h, "/docs").Code)
	assert.Equal(t, http.StatusOK, get(t, h, "/docs/openapi.json").Code)
	assert.Equal(t, http.StatusTeapot, get(t, h, "/openapi.json").Code)
}

func TestHandlerCORS(t *testing.T) {
	opt := DefaultOptions()
	opt.AllowedOrigins = []string{"https://editor.example.com"}
	srv, err := New(petsDocument("Pets"), opt)
	require.NoError(t, err)
	h := srv.Handler(nil)

	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	req.Header.Set("Origin", "https://editor.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://editor.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetDocumentReplacesContent(t *testing.T) {
	srv, err := New(petsDocument("First"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Revision())

	require.NoError(t, srv.SetDocument(petsDocument("Second")))
	assert.Equal(t, 2, srv.Revision())

	body := get(t, srv.Handler(nil), "/openapi.json").Body.String()
	assert.Contains(t, body, `"title": "Second"`)
}

func TestEventsReceiveReload(t *testing.T) {
	srv, err := New(petsDocument("Pets"), DefaultOptions())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler(nil))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ":ok\n", line)
	_, _ = reader.ReadString('\n')

	require.NoError(t, srv.SetDocument(petsDocument("Updated")))

	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: update\n", line)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "data: reload\n", line)
}

func TestBroadcasterDropsForBusyClients(t *testing.T) {
	b := NewBroadcaster()
	ch := make(chan string, 1)
	b.addClient(ch)
	assert.Equal(t, 1, b.Clients())

	b.Broadcast("first")
	b.Broadcast("second")
	assert.Equal(t, "first", <-ch)

	b.removeClient(ch)
	b.removeClient(ch)
	assert.Equal(t, 0, b.Clients())
	_, open := <-ch
	assert.False(t, open)
}

func TestBroadcasterRequiresFlusher(t *testing.T) {
	b := NewBroadcaster()
	w := &plainWriter{header: http.Header{}}
	b.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusInternalServerError, w.status)
}

type plainWriter struct {
	header http.Header
	status int
}

func (w *plainWriter) Header() http.Header         { return w.header }
func (w *plainWriter) Write(b []byte) (int, error) { return io.Discard.Write(b) }
func (w *plainWriter) WriteHeader(status int)      { w.status = status }

func TestWatchFileReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

	w, err := WatchFile(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("<html><body>changed</body></html>"), 0644))

	select {
	case err := <-w.Update:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no update after write")
	}
}

func TestWatchFileReportsRenameSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

	w, err := WatchFile(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	tmp := filepath.Join(dir, ".page.html.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("<html><body>saved</body></html>"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case err := <-w.Update:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no update after rename over the file")
	}

	require.NoError(t, os.WriteFile(path, []byte("<html><body>again</body></html>"), 0644))

	select {
	case err := <-w.Update:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("no update after write following a rename")
	}
}

func TestWatchFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

	w, err := WatchFile(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.html"), []byte("x"), 0644))

	select {
	case err := <-w.Update:
		t.Fatalf("unexpected update for a sibling file: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchFileMissing(t *testing.T) {
	_, err := WatchFile(filepath.Join(t.TempDir(), "missing.html"), 0)
	assert.Error(t, err)
}

func TestFollowRebuildsOnUpdate(t *testing.T) {
	srv, err := New(petsDocument("Pets"), DefaultOptions())
	require.NoError(t, err)

	updates := make(chan error, 3)
	calls := 0
	rebuild := func(context.Context) (*openapi.Document, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("page vanished")
		}
		return petsDocument("Rebuilt"), nil
	}

	updates <- errors.New("watch error")
	updates <- nil
	updates <- nil
	close(updates)

	srv.Follow(context.Background(), updates, rebuild)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, srv.Revision())
	assert.Contains(t, get(t, srv.Handler(nil), "/openapi.json").Body.String(), "Rebuilt")
}

func TestFollowStopsOnCancel(t *testing.T) {
	srv, err := New(petsDocument("Pets"), DefaultOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		srv.Follow(ctx, make(chan error), nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}
