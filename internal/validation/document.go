// Package validation checks doc-recon inputs and outputs: OpenAPI documents
// with kin-openapi and exported endpoint records with a JSON schema.
package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrInvalidDocument is returned when a document parses but fails validation
var ErrInvalidDocument = errors.New("invalid OpenAPI document")

// DocumentReport describes a loaded OpenAPI document
type DocumentReport struct {
	OpenAPI    string
	Title      string
	Paths      int
	Operations int
}

// ValidateDocument loads a JSON or YAML OpenAPI document and validates it.
// The report is returned even when validation fails, as long as the data parses.
func ValidateDocument(ctx context.Context, data []byte) (*DocumentReport, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	report := &DocumentReport{OpenAPI: doc.OpenAPI}
	if doc.Info != nil {
		report.Title = doc.Info.Title
	}
	if doc.Paths != nil {
		report.Paths = doc.Paths.Len()
		for _, item := range doc.Paths.Map() {
			report.Operations += len(item.Operations())
		}
	}

	if err := doc.Validate(ctx); err != nil {
		return report, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return report, nil
}
