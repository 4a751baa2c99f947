package exporter

import (
	"doc-recon/internal/config"
	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
)

// Exporter is the unified interface for all output formats.
// Every exporter receives the same run: its summary, the extracted records
// and the converted document.
type Exporter interface {
	Export(summary *model.Summary, records []model.EndpointRecord, doc *openapi.Document, cfg *config.Config) error
}
