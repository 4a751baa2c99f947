package exporter

import (
	"fmt"
	"strings"

	"doc-recon/internal/config"
	"doc-recon/internal/exporter/html"
	docexport "doc-recon/internal/exporter/openapi"
	"doc-recon/internal/exporter/word"
	"doc-recon/internal/logger"
	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
)

// GetExporters returns a list of Exporters based on requested formats
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = canonicalFormat(fmtStr)
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "openapi":
			exporters = append(exporters, docexport.NewDocumentWriter())
		case "yaml":
			exporters = append(exporters, docexport.NewYAMLWriter())
		case "records":
			exporters = append(exporters, NewRecordsExporter())
		case "excel":
			exporters = append(exporters, NewExcelExporter())
		case "html":
			exporters = append(exporters, html.NewHTMLExporter())
		case "word":
			exporters = append(exporters, word.NewWordExporter())
		}
	}

	return exporters
}

// canonicalFormat folds format aliases onto one name, so "json" and "openapi"
// never write the same file twice
func canonicalFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "swagger", "json":
		return "openapi"
	case "yml":
		return "yaml"
	case "xlsx":
		return "excel"
	case "docx":
		return "word"
	}
	return format
}

// ExportAll runs every exporter for formats. A failing exporter does not stop
// the others; the first error is returned after all have run.
func ExportAll(formats []string, summary *model.Summary, records []model.EndpointRecord, doc *openapi.Document, cfg *config.Config) error {
	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}

	var firstErr error
	for _, exp := range GetExporters(formats) {
		if err := exp.Export(summary, records, doc, cfg); err != nil {
			logger.Error("Export failed (%T): %v", exp, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("export failed: %w", err)
			}
		}
	}
	return firstErr
}
