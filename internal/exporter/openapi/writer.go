package openapi

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"doc-recon/internal/config"
	"doc-recon/internal/model"
	oas "doc-recon/internal/openapi"
)

// Format selects the serialization of a written document
type Format string

const (
	FormatAuto Format = ""     // Decided by the file extension
	FormatJSON Format = "json" // Indented JSON
	FormatYAML Format = "yaml"
)

// DocumentWriter serializes an OpenAPI document to a file
type DocumentWriter struct {
	format Format
	// yamlSibling writes <file_name base>.yaml next to the JSON document
	yamlSibling bool
}

// NewDocumentWriter writes the document to output.file_name.
// A .yaml or .yml file name produces YAML, anything else JSON.
func NewDocumentWriter() *DocumentWriter {
	return &DocumentWriter{format: FormatAuto}
}

// NewYAMLWriter writes a YAML copy of the document next to output.file_name
func NewYAMLWriter() *DocumentWriter {
	return &DocumentWriter{format: FormatYAML, yamlSibling: true}
}

// Export implements exporter.Exporter
func (w *DocumentWriter) Export(_ *model.Summary, _ []model.EndpointRecord, doc *oas.Document, cfg *config.Config) error {
	path := cfg.GetOutputPath()
	if w.yamlSibling {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".yaml"
	}
	return WriteFile(doc, path, w.format)
}

// FormatFor returns the format implied by a file name
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serializes doc in the given format
func Encode(doc *oas.Document, format Format) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document to encode")
	}
	if format == FormatYAML {
		return doc.MarshalYAML()
	}
	return doc.MarshalIndent()
}

// WriteFile writes doc to path, creating parent directories.
// FormatAuto picks the format from the extension.
func WriteFile(doc *oas.Document, path string, format Format) error {
	if format == FormatAuto {
		format = FormatFor(path)
	}

	data, err := Encode(doc, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write OpenAPI document: %w", err)
	}
	return nil
}
