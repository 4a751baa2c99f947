package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"doc-recon/internal/model"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed records.schema.json
var recordsSchemaBytes []byte

const recordsSchemaURL = "doc-recon-records.json"

var recordsSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)

	object, err := jsonschema.UnmarshalJSON(bytes.NewReader(recordsSchemaBytes))
	if err != nil {
		panic(err)
	}

	if err := compiler.AddResource(recordsSchemaURL, object); err != nil {
		panic(err)
	}

	recordsSchema = compiler.MustCompile(recordsSchemaURL)
}

// ValidateRecords checks a records.json payload against the records schema
func ValidateRecords(data []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unable to parse records: %w", err)
	}

	if err := recordsSchema.Validate(instance); err != nil {
		return fmt.Errorf("records do not match schema: %w", err)
	}
	return nil
}

// LoadRecords validates and decodes a records.json payload
func LoadRecords(data []byte) ([]model.EndpointRecord, error) {
	if err := ValidateRecords(data); err != nil {
		return nil, err
	}

	var records []model.EndpointRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unable to decode records: %w", err)
	}
	return records, nil
}
