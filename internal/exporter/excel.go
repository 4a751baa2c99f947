package exporter

import (
	"fmt"
	"strings"

	"doc-recon/internal/config"
	"doc-recon/internal/exporter/common"
	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
	"doc-recon/internal/utils"

	"github.com/xuri/excelize/v2"
)

const (
	sheetOverview   = "Overview"
	sheetEndpoints  = "Endpoints"
	sheetParameters = "Parameters"

	// maxCellText keeps long scraped descriptions readable in a cell
	maxCellText = 500
)

// ExcelExporter handles the Excel generation
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report
func (e *ExcelExporter) Export(summary *model.Summary, records []model.EndpointRecord, doc *openapi.Document, cfg *config.Config) error {
	outputFile := common.ReportPath(cfg, ".xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	rows := common.Rows(doc, records)

	// 1. Create Overview Sheet
	if err := e.writeOverview(f, styler, summary, rows); err != nil {
		return err
	}

	// 2. Create Endpoints Sheet
	if err := e.writeEndpoints(f, styler, rows); err != nil {
		return err
	}

	// 3. Create Parameters Sheet
	if err := e.writeParameters(f, styler, rows); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}
	if idx, err := f.GetSheetIndex(sheetOverview); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("failed to save Excel report: %w", err)
	}

	return nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, summary *model.Summary, rows []common.EndpointRow) error {
	sheet := sheetOverview
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if summary == nil {
		summary = model.NewSummary()
	}

	// Section A: Source
	row := 1
	e.writeRow(f, sheet, row, []string{"Source", "Value"}, s.HeaderStyle)
	row++

	source := []struct {
		Key string
		Val string
	}{
		{"Source URL", summary.SourceURL},
		{"Base URL", summary.BaseURL},
		{"Page Title", summary.PageTitle},
		{"Scrape Date", summary.ScrapeDate},
	}
	if summary.FetchError != "" {
		source = append(source, struct {
			Key string
			Val string
		}{"Fetch Error", summary.FetchError})
	}
	for _, src := range source {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), src.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), src.Val)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	row += 1 // Spacer

	// Section B: Extraction Summary
	e.writeRow(f, sheet, row, []string{"Metric", "Count"}, s.HeaderStyle)
	row++

	metrics := []struct {
		Key string
		Val int
	}{
		{"Candidate Entries", summary.TotalEntries},
		{"Records Kept", summary.TotalRecords},
		{"Dropped (no path)", summary.TotalDropped},
		{"Excluded", summary.TotalExcluded},
		{"Paths", summary.TotalPaths},
		{"Operations", len(rows)},
	}
	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	row += 1 // Spacer

	// Section C: Operations per Method
	e.writeRow(f, sheet, row, []string{"Method", "Operations"}, s.HeaderStyle)
	row++

	counts := common.MethodCounts(rows)
	for _, method := range common.OrderedMethods(counts) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), method)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), counts[method])
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.MethodStyle(method))
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 60)

	return nil
}

// --- Endpoints Sheet Logic ---

func (e *ExcelExporter) writeEndpoints(f *excelize.File, s *Styler, rows []common.EndpointRow) error {
	sheet := sheetEndpoints
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"No", "Method", "Path", "Summary", "Parameters", "Request Body", "Response"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	row := 2
	for _, ep := range rows {
		body := "-"
		if ep.HasBody {
			body = "application/json"
		}

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ep.No)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ep.Method)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), ep.Path)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), utils.Truncate(ep.Summary, maxCellText))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), formatParams(ep.Parameters))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), body)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), utils.Truncate(ep.Response, maxCellText))

		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.DefaultStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), s.MethodStyle(ep.Method))
		f.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), s.PathStyle)
		f.SetCellStyle(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("G%d", row), s.WrapStyle)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 6)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "C", "C", 40)
	f.SetColWidth(sheet, "D", "D", 50)
	f.SetColWidth(sheet, "E", "E", 40)
	f.SetColWidth(sheet, "F", "F", 18)
	f.SetColWidth(sheet, "G", "G", 50)

	return nil
}

// --- Parameters Sheet Logic ---

func (e *ExcelExporter) writeParameters(f *excelize.File, s *Styler, rows []common.EndpointRow) error {
	sheet := sheetParameters
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Method", "Path", "Name", "In", "Type", "Required", "Description"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	row := 2
	for _, ep := range rows {
		for _, p := range ep.Parameters {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ep.Method)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ep.Path)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Name)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.In)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Schema.Type)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), common.RequiredLabel(p.Required))
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), utils.Truncate(p.Description, maxCellText))

			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.MethodStyle(ep.Method))
			f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("E%d", row), s.DefaultStyle)
			requiredStyle := s.DefaultStyle
			if p.Required {
				requiredStyle = s.RequiredStyle
			}
			f.SetCellStyle(sheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), requiredStyle)
			f.SetCellStyle(sheet, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), s.WrapStyle)
			row++
		}
	}

	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "C", 25)
	f.SetColWidth(sheet, "G", "G", 60)

	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

// formatParams renders parameters one per line as "name: type (in)", with a
// trailing asterisk for required ones
func formatParams(params []openapi.Parameter) string {
	if len(params) == 0 {
		return "-"
	}
	lines := make([]string, 0, len(params))
	for _, p := range params {
		line := fmt.Sprintf("%s: %s (%s)", p.Name, p.Schema.Type, p.In)
		if p.Required {
			line += " *"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
