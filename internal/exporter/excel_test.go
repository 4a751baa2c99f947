package exporter

import (
	"os"
	"strings"
	"testing"

	"doc-recon/internal/config"
	"doc-recon/internal/converter"
	"doc-recon/internal/exporter/common"
	"doc-recon/internal/model"

	"github.com/xuri/excelize/v2"
)

func strPtr(s string) *string { return &s }

func sampleRun() (*model.Summary, []model.EndpointRecord) {
	records := []model.EndpointRecord{
		{Method: "POST", Path: "/users", Description: "Create user", Parameters: []model.Parameter{
			{Name: "name", Type: "string", Required: true, Description: "Full name"},
			{Name: "X-Trace", Type: "string", Location: "header"},
		}},
		{Method: "GET", Path: "/items"},
		{Method: "DELETE", Path: "/items", Description: "Remove all items", Response: strPtr("204 No Content")},
	}

	summary := model.NewSummary()
	summary.SourceURL = "https://docs.example.com/api"
	summary.BaseURL = "https://api.example.com"
	summary.PageTitle = "Example API"
	summary.ScrapeDate = "2026-10-19 10:00:00"
	summary.TotalEntries = 4
	summary.TotalRecords = 3
	summary.TotalDropped = 1
	summary.TotalPaths = 2
	summary.TotalOperations = 3
	return summary, records
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Output: config.OutputConfig{
			Dir:      t.TempDir(),
			FileName: "openapi.json",
		},
	}
}

func TestExcelExport(t *testing.T) {
	summary, records := sampleRun()
	doc := converter.Convert(records, summary.BaseURL)
	cfg := testConfig(t)

	exporter := NewExcelExporter()
	if err := exporter.Export(summary, records, doc, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	outputFile := common.ReportPath(cfg, ".xlsx")
	if _, err := os.Stat(outputFile); os.IsNotExist(err) {
		t.Fatal("Output file was not created")
	}

	f, err := excelize.OpenFile(outputFile)
	if err != nil {
		t.Fatalf("Failed to open generated Excel: %v", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("Default Sheet1 should be removed")
	}

	rows, err := f.GetRows("Endpoints")
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}

	// Header + 3 operations in document order
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}

	expected := [][2]string{{"POST", "/users"}, {"GET", "/items"}, {"DELETE", "/items"}}
	for i, exp := range expected {
		row := rows[i+1]
		if row[1] != exp[0] || row[2] != exp[1] {
			t.Errorf("Row %d: expected %s %s, got %s %s", i+2, exp[0], exp[1], row[1], row[2])
		}
	}

	if rows[1][5] != "application/json" {
		t.Errorf("Expected request body for POST, got %q", rows[1][5])
	}
	if rows[2][3] != "GET /items" {
		t.Errorf("Expected fallback summary, got %q", rows[2][3])
	}
	if !strings.Contains(rows[1][4], "name: string (query) *") {
		t.Errorf("Expected required name parameter, got %q", rows[1][4])
	}
	if len(rows[3]) < 7 || rows[3][6] != "204 No Content" {
		t.Errorf("Expected response hint on DELETE row, got %v", rows[3])
	}

	t.Log("✅ Endpoints sheet follows document order")
}

func TestExcelOverview(t *testing.T) {
	summary, records := sampleRun()
	doc := converter.Convert(records, summary.BaseURL)
	cfg := testConfig(t)

	if err := NewExcelExporter().Export(summary, records, doc, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenFile(common.ReportPath(cfg, ".xlsx"))
	if err != nil {
		t.Fatalf("Failed to open generated Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Overview")
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}

	values := map[string]string{}
	for _, row := range rows {
		if len(row) >= 2 {
			values[row[0]] = row[1]
		}
	}

	checks := map[string]string{
		"Source URL":        "https://docs.example.com/api",
		"Dropped (no path)": "1",
		"Operations":        "3",
		"GET":               "1",
		"POST":              "1",
		"DELETE":            "1",
	}
	for key, want := range checks {
		if values[key] != want {
			t.Errorf("Overview %s = %q, expected %q", key, values[key], want)
		}
	}
}

func TestExcelParametersSheet(t *testing.T) {
	summary, records := sampleRun()
	doc := converter.Convert(records, summary.BaseURL)
	cfg := testConfig(t)

	if err := NewExcelExporter().Export(summary, records, doc, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenFile(common.ReportPath(cfg, ".xlsx"))
	if err != nil {
		t.Fatalf("Failed to open generated Excel: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Parameters")
	if err != nil {
		t.Fatalf("Failed to read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 parameter rows, got %d", len(rows))
	}
	if rows[1][2] != "name" || rows[1][5] != "Yes" {
		t.Errorf("Unexpected first parameter row: %v", rows[1])
	}
	if rows[2][3] != "header" || rows[2][5] != "No" {
		t.Errorf("Unexpected second parameter row: %v", rows[2])
	}
}

func TestExcelExportEmptyRun(t *testing.T) {
	cfg := testConfig(t)
	doc := converter.Convert(nil, "http://localhost")

	if err := NewExcelExporter().Export(nil, nil, doc, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenFile(common.ReportPath(cfg, ".xlsx"))
	if err != nil {
		t.Fatalf("Failed to open generated Excel: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows("Endpoints")
	if len(rows) != 1 {
		t.Errorf("Expected only the header row, got %d rows", len(rows))
	}
}
