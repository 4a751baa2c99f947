package mcptool

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"doc-recon/internal/openapi"
	"doc-recon/internal/page"
)

var (
	ErrUnknownDocs = errors.New("docs not loaded")
	ErrInvalidID   = errors.New("invalid docs id")
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// Loaded is a scraped document registered for calls
type Loaded struct {
	ID         string
	Source     string
	BaseURL    string
	Document   *openapi.Document
	Operations []Operation
	LoadedAt   time.Time

	// Exposed lists the per-operation tools registered for this document
	Exposed []string
}

// Operation looks an operation up by name
func (l *Loaded) Operation(name string) (Operation, bool) {
	for _, op := range l.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Registry holds the documents loaded during an MCP session
type Registry struct {
	mu   sync.RWMutex
	docs map[string]*Loaded
}

func NewRegistry() *Registry {
	return &Registry{docs: make(map[string]*Loaded)}
}

// Add registers doc under id, replacing any previous document with that id.
// The replaced entry is returned so its tools can be removed.
func (r *Registry) Add(id, source string, doc *openapi.Document) (loaded, replaced *Loaded, err error) {
	if !validID.MatchString(id) {
		return nil, nil, fmt.Errorf("%w %q (use letters, digits, _ or -)", ErrInvalidID, id)
	}

	loaded = &Loaded{
		ID:         id,
		Source:     source,
		Document:   doc,
		Operations: Operations(doc),
		LoadedAt:   time.Now(),
	}
	if doc != nil && len(doc.Servers) > 0 {
		loaded.BaseURL = doc.Servers[0].URL
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	replaced = r.docs[id]
	r.docs[id] = loaded
	return loaded, replaced, nil
}

// Get returns the document loaded under id
func (r *Registry) Get(id string) (*Loaded, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocs, id)
	}
	return l, nil
}

// List returns every loaded document sorted by id
func (r *Registry) List() []*Loaded {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Loaded, 0, len(r.docs))
	for _, l := range r.docs {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Remove unloads id and returns the removed entry
func (r *Registry) Remove(id string) (*Loaded, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDocs, id)
	}
	delete(r.docs, id)
	return l, nil
}

// DocsID suggests an id for a target: the host of a URL or the base name
// of a file, cleaned to a valid id.
func DocsID(target string) string {
	target = strings.TrimSpace(target)
	name := ""
	if origin := page.Origin(target); origin != "" {
		name = strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
	} else if path, ok := page.LocalPath(target); ok && path != "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	name = nameCleaner.ReplaceAllString(name, "_")
	if len(name) > 32 {
		name = name[:32]
	}
	name = strings.Trim(name, "_")
	if name == "" {
		return "docs"
	}
	return name
}
