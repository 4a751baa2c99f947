package html

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"doc-recon/internal/config"
	"doc-recon/internal/exporter/common"
	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// Data structures for the API report template
type APIReportData struct {
	Title       string
	Summary     *model.Summary
	Servers     []openapi.Server
	Endpoints   []common.EndpointRow
	Methods     []MethodStat
	TotalPaths  int
	Description string
}

type MethodStat struct {
	Method string
	Count  int
}

var reportTemplate = template.Must(template.New("api-report").Funcs(template.FuncMap{
	"methodColor": getMethodColor,
	"required":    common.RequiredLabel,
	"anchor":      anchorID,
}).Parse(APIReportTemplate))

func (e *HTMLExporter) Export(summary *model.Summary, records []model.EndpointRecord, doc *openapi.Document, cfg *config.Config) error {
	if summary == nil {
		summary = model.NewSummary()
	}

	rows := common.Rows(doc, records)
	counts := common.MethodCounts(rows)

	data := APIReportData{
		Summary:   summary,
		Endpoints: rows,
	}
	if doc != nil {
		data.Title = doc.Info.Title
		data.Description = doc.Info.Description
		data.Servers = doc.Servers
		data.TotalPaths = doc.Paths.Len()
	}
	for _, method := range common.OrderedMethods(counts) {
		data.Methods = append(data.Methods, MethodStat{Method: method, Count: counts[method]})
	}

	outputFile := common.ReportPath(cfg, ".html")
	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create HTML report: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

// getMethodColor returns CSS color class for HTTP method
func getMethodColor(method string) string {
	switch strings.ToUpper(method) {
	case "GET":
		return "method-get"
	case "POST":
		return "method-post"
	case "PUT":
		return "method-put"
	case "DELETE":
		return "method-delete"
	case "PATCH":
		return "method-patch"
	default:
		return "method-default"
	}
}

// anchorID builds a stable element id for an operation, e.g. "op-3"
func anchorID(no int) string {
	return fmt.Sprintf("op-%d", no)
}
