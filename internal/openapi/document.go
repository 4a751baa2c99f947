// Package openapi holds the subset of the OpenAPI 3.0 object model that
// doc-recon produces. Paths and operations keep insertion order so the
// serialized document is deterministic.
package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Version is the OpenAPI version written to every document
const Version = "3.0.0"

// Document is the OpenAPI root object
type Document struct {
	OpenAPI string   `json:"openapi"`
	Info    Info     `json:"info"`
	Servers []Server `json:"servers"`
	Paths   Paths    `json:"paths"`
}

type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type Operation struct {
	Summary     string              `json:"summary"`
	Description string              `json:"description"`
	Parameters  []Parameter         `json:"parameters"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type Parameter struct {
	Name        string `json:"name"`
	In          string `json:"in"` // "query", "path", "header", "cookie"
	Required    bool   `json:"required"`
	Description string `json:"description"`
	Schema      Schema `json:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema Schema `json:"schema"`
}

// Schema is a minimal JSON schema. Properties is emitted whenever it is
// non-nil, including the empty object placeholder of request bodies.
type Schema struct {
	Type       string            `json:"type,omitempty"`
	Properties map[string]Schema `json:"properties,omitzero"`
}

// New creates an empty document with the standard skeleton
func New(title, description string) *Document {
	return &Document{
		OpenAPI: Version,
		Info: Info{
			Title:       title,
			Version:     "1.0.0",
			Description: description,
		},
		Servers: []Server{},
		Paths:   NewPaths(),
	}
}

// Operations returns the number of operations across all paths
func (d *Document) Operations() int {
	if d == nil {
		return 0
	}
	count := 0
	for _, path := range d.Paths.Keys() {
		count += d.Paths.Get(path).Len()
	}
	return count
}

// MarshalIndent renders the document as indented JSON
func (d *Document) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode OpenAPI document: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalYAML renders the document as YAML, keeping JSON key order
func (d *Document) MarshalYAML() ([]byte, error) {
	data, err := d.MarshalIndent()
	if err != nil {
		return nil, err
	}
	out, err := yaml.JSONToYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert OpenAPI document to YAML: %w", err)
	}
	return out, nil
}

// Unmarshal parses a JSON document produced by MarshalIndent
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode OpenAPI document: %w", err)
	}
	return &doc, nil
}
