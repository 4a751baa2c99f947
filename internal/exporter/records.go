package exporter

import (
	"encoding/json"
	"fmt"
	"os"

	"doc-recon/internal/config"
	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
)

// RecordsFileName is the artifact holding the extracted records
const RecordsFileName = "records.json"

// RecordsExporter writes the extracted records so conversion can be re-run offline
type RecordsExporter struct{}

func NewRecordsExporter() *RecordsExporter {
	return &RecordsExporter{}
}

// Export writes records.json into the output directory
func (e *RecordsExporter) Export(_ *model.Summary, records []model.EndpointRecord, _ *openapi.Document, cfg *config.Config) error {
	if records == nil {
		records = []model.EndpointRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	if err := os.WriteFile(cfg.GetArtifactPath(RecordsFileName), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
