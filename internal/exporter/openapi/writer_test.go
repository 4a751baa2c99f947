package openapi

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doc-recon/internal/config"
	"doc-recon/internal/converter"
	"doc-recon/internal/model"
)

func testRecords() []model.EndpointRecord {
	return []model.EndpointRecord{
		{Method: "POST", Path: "/users", Description: "Create user", Parameters: []model.Parameter{
			{Name: "name", Type: "string", Required: true, Description: "Full name"},
		}},
		{Method: "GET", Path: "/items"},
		{Method: "DELETE", Path: "/items", Description: "Remove all items"},
	}
}

func testConfig(t *testing.T, fileName string) *config.Config {
	return &config.Config{
		Output: config.OutputConfig{
			Dir:      t.TempDir(),
			FileName: fileName,
		},
	}
}

func TestDocumentWriterJSON(t *testing.T) {
	cfg := testConfig(t, "openapi.json")
	doc := converter.Convert(testRecords(), "https://api.example.com")

	if err := NewDocumentWriter().Export(nil, nil, doc, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	content, err := os.ReadFile(cfg.GetOutputPath())
	if err != nil {
		t.Fatal(err)
	}

	var result map[string]any
	if err := json.Unmarshal(content, &result); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	if result["openapi"] != "3.0.0" {
		t.Errorf("Expected openapi 3.0.0, got %v", result["openapi"])
	}

	paths := result["paths"].(map[string]any)
	if _, ok := paths["/users"]; !ok {
		t.Error("Missing path /users")
	}
	items := paths["/items"].(map[string]any)
	if len(items) != 2 {
		t.Errorf("Expected 2 operations on /items, got %d", len(items))
	}
}

func TestDocumentWriterIsByteIdentical(t *testing.T) {
	cfg := testConfig(t, "openapi.json")
	writer := NewDocumentWriter()

	if err := writer.Export(nil, nil, converter.Convert(testRecords(), "http://x"), cfg); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(cfg.GetOutputPath())

	if err := writer.Export(nil, nil, converter.Convert(testRecords(), "http://x"), cfg); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(cfg.GetOutputPath())

	if string(first) != string(second) {
		t.Error("Expected identical output for identical input")
	}
}

func TestDocumentWriterYAMLByExtension(t *testing.T) {
	cfg := testConfig(t, "openapi.yml")
	doc := converter.Convert(testRecords(), "http://x")

	if err := NewDocumentWriter().Export(nil, nil, doc, cfg); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(cfg.GetOutputPath())
	if err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(strings.TrimSpace(string(content)), "{") {
		t.Error("Expected YAML output, got JSON")
	}
	if !strings.Contains(string(content), "/users:") {
		t.Errorf("Expected /users key in YAML, got:\n%s", content)
	}
}

func TestYAMLWriterWritesSibling(t *testing.T) {
	cfg := testConfig(t, "openapi.json")
	doc := converter.Convert(testRecords(), "http://x")

	if err := NewYAMLWriter().Export(nil, nil, doc, cfg); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(cfg.Output.Dir, "openapi.yaml")); err != nil {
		t.Errorf("Expected openapi.yaml to be written: %v", err)
	}
	if _, err := os.Stat(cfg.GetOutputPath()); !os.IsNotExist(err) {
		t.Error("YAML writer should not write the JSON document")
	}
}

func TestWriteFileEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "empty.json")
	if err := WriteFile(converter.Convert(nil, "http://x"), path, FormatAuto); err != nil {
		t.Fatal(err)
	}

	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), `"paths": {}`) {
		t.Errorf("Expected empty paths object, got:\n%s", content)
	}
}

func TestWriteFileReturnsIOErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := WriteFile(converter.Convert(nil, "http://x"), filepath.Join(blocker, "openapi.json"), FormatJSON)
	if err == nil {
		t.Error("Expected error when parent is a file")
	}
}

func TestEncodeNilDocument(t *testing.T) {
	if _, err := Encode(nil, FormatJSON); err == nil {
		t.Error("Expected error for nil document")
	}
}
