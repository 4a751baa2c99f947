// Package server serves a scraped OpenAPI document with a live-reloading
// Redoc page.
package server

import (
	"context"
	_ "embed"
	"html"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"doc-recon/internal/logger"
	"doc-recon/internal/openapi"

	"github.com/rs/cors"
)

//go:embed redoc.html
var redocBase string

func buildRedocUI(title, documentURL, eventsURL string) []byte {
	replacer := strings.NewReplacer(
		"%TITLE%", html.EscapeString(title),
		"%OPENAPI_DOCUMENT_URL%", documentURL,
		"%EVENTS_URL%", eventsURL,
	)
	return []byte(replacer.Replace(redocBase))
}

type Options struct {
	DebounceTime   time.Duration
	BaseURL        string   // Mount point of the UI
	AllowedOrigins []string // CORS origins for the document endpoints
}

func DefaultOptions() Options {
	return Options{
		DebounceTime:   DefaultDebounceTime,
		BaseURL:        "/",
		AllowedOrigins: []string{"*"},
	}
}

type urls struct {
	UI       string
	Document string
	YAML     string
	Events   string
}

func makeURLs(base string) urls {
	if base == "" {
		base = "/"
	}
	return urls{
		UI:       path.Clean(base),
		Document: path.Join(base, "openapi.json"),
		YAML:     path.Join(base, "openapi.yaml"),
		Events:   path.Join(base, "events"),
	}
}

// Server holds the current document and serves it to browsers
type Server struct {
	options     Options
	broadcaster *Broadcaster
	urls        urls

	mu       sync.RWMutex
	title    string
	jsonDoc  []byte
	yamlDoc  []byte
	revision int
}

// New creates a Server for doc
func New(doc *openapi.Document, opt Options) (*Server, error) {
	s := &Server{
		options:     opt,
		broadcaster: NewBroadcaster(),
		urls:        makeURLs(opt.BaseURL),
	}
	if err := s.store(doc); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler routes the UI, document and event URLs and hands everything else to h
func (s *Server) Handler(h http.Handler) http.Handler {
	mux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case s.urls.UI:
			s.mu.RLock()
			title := s.title
			s.mu.RUnlock()
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(buildRedocUI(title, s.urls.Document, s.urls.Events))
		case s.urls.Document:
			s.writeDocument(w, "application/json", func() []byte { return s.jsonDoc })
		case s.urls.YAML:
			s.writeDocument(w, "application/yaml", func() []byte { return s.yamlDoc })
		case s.urls.Events:
			s.broadcaster.ServeHTTP(w, r)
		default:
			if h != nil {
				h.ServeHTTP(w, r)
				return
			}
			http.NotFound(w, r)
		}
	})

	origins := s.options.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
	}).Handler(mux)
}

func (s *Server) writeDocument(w http.ResponseWriter, contentType string, body func() []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w.Header().Set("Content-Type", contentType)
	w.Write(body())
}

// SetDocument replaces the served document and tells connected pages to reload
func (s *Server) SetDocument(doc *openapi.Document) error {
	if err := s.store(doc); err != nil {
		return err
	}
	s.broadcaster.Broadcast("reload")
	return nil
}

// Revision counts document replacements, starting at 1
func (s *Server) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Server) store(doc *openapi.Document) error {
	jsonDoc, err := doc.MarshalIndent()
	if err != nil {
		return err
	}
	yamlDoc, err := doc.MarshalYAML()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.title = doc.Info.Title
	s.jsonDoc = jsonDoc
	s.yamlDoc = yamlDoc
	s.revision++
	s.mu.Unlock()
	return nil
}

// Follow rebuilds the document on every update until ctx is done or updates
// is closed. Failed rebuilds keep the previous document.
func (s *Server) Follow(ctx context.Context, updates <-chan error, rebuild func(context.Context) (*openapi.Document, error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-updates:
			if !ok {
				return
			}
			if err != nil {
				logger.Warn("Watch error: %v", err)
				continue
			}

			doc, err := rebuild(ctx)
			if err != nil {
				logger.Warn("Unable to update document: %v", err)
				continue
			}
			if err := s.SetDocument(doc); err != nil {
				logger.Warn("Unable to encode document: %v", err)
				continue
			}
			logger.Info("Document reloaded (revision %d, %d operations)", s.Revision(), doc.Operations())
		}
	}
}
