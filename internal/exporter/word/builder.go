package word

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"doc-recon/internal/config"
	"doc-recon/internal/exporter/common"
	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
	"doc-recon/internal/utils"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(summary *model.Summary, records []model.EndpointRecord, doc *openapi.Document, cfg *config.Config) error {
	if summary == nil {
		summary = model.NewSummary()
	}

	// 1. Extract embedded template to temp file
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "doc-recon-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	editable := r.Editable()

	// 2. Replace summary placeholders
	rows := common.Rows(doc, records)
	title := "API Documentation"
	paths := 0
	if doc != nil {
		title = doc.Info.Title
		paths = doc.Paths.Len()
	}

	editable.Replace("{{Title}}", title, -1)
	editable.Replace("{{Date}}", summary.ScrapeDate, -1)
	editable.Replace("{{Source}}", summary.SourceURL, -1)
	editable.Replace("{{TotalPaths}}", fmt.Sprintf("%d", paths), -1)
	editable.Replace("{{TotalOperations}}", fmt.Sprintf("%d", len(rows)), -1)

	// 3. Render endpoint documentation as plain text, the library encodes it
	editable.Replace("{{Content}}", buildContent(rows), -1)

	if err := editable.WriteToFile(common.ReportPath(cfg, ".docx")); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}
	return nil
}

func buildContent(rows []common.EndpointRow) string {
	if len(rows) == 0 {
		return "No API endpoints found."
	}

	var sb strings.Builder
	for i, row := range rows {
		buildEndpointText(&sb, row)
		if i < len(rows)-1 {
			sb.WriteString("\n" + strings.Repeat("-", 80) + "\n\n")
		}
	}
	return sb.String()
}

// buildEndpointText builds plain text documentation for a single operation
func buildEndpointText(sb *strings.Builder, row common.EndpointRow) {
	fmt.Fprintf(sb, "[%s] %s\n", row.Method, row.Path)
	if row.Description != "" {
		fmt.Fprintf(sb, "%s\n", row.Description)
	}
	sb.WriteString("\n")

	if len(row.Parameters) > 0 {
		sb.WriteString("PARAMETERS:\n")
		fmt.Fprintf(sb, "%-25s %-10s %-10s %-10s %s\n", "Name", "In", "Type", "Required", "Description")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, p := range row.Parameters {
			fmt.Fprintf(sb, "%-25s %-10s %-10s %-10s %s\n",
				utils.Truncate(p.Name, 25),
				utils.Truncate(p.In, 10),
				utils.Truncate(p.Schema.Type, 10),
				common.RequiredLabel(p.Required),
				p.Description)
		}
		sb.WriteString("\n")
	}

	if row.HasBody {
		sb.WriteString("REQUEST BODY: application/json (required)\n\n")
	}

	sb.WriteString("RESPONSE:\n")
	if row.Response != "" {
		sb.WriteString(row.Response + "\n")
	} else {
		sb.WriteString("200 Successful response\n")
	}
}
