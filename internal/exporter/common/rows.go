package common

import (
	"sort"
	"strings"

	"doc-recon/internal/config"
	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
)

// EndpointRow is one operation of a document, flattened for reports
type EndpointRow struct {
	No          int
	Method      string // Uppercase verb
	Path        string
	Summary     string
	Parameters  []openapi.Parameter
	HasBody     bool
	Response    string // Response hint scraped from the page, if any
	Description string
}

// Rows flattens doc into report rows in document order.
// Response hints are taken from records; when a (path, method) pair occurs
// more than once the last record wins, matching the document.
func Rows(doc *openapi.Document, records []model.EndpointRecord) []EndpointRow {
	if doc == nil {
		return nil
	}

	hints := make(map[string]string)
	for _, rec := range records {
		method := strings.ToUpper(strings.TrimSpace(rec.Method))
		if method == "" {
			method = model.DefaultMethod
		}
		hints[rec.Path+" "+method] = rec.ResponseText()
	}

	var rows []EndpointRow
	for _, path := range doc.Paths.Keys() {
		item := doc.Paths.Get(path)
		for _, verb := range item.Methods() {
			op := item.Get(verb)
			method := strings.ToUpper(verb)
			rows = append(rows, EndpointRow{
				No:          len(rows) + 1,
				Method:      method,
				Path:        path,
				Summary:     op.Summary,
				Description: op.Description,
				Parameters:  op.Parameters,
				HasBody:     op.RequestBody != nil,
				Response:    hints[path+" "+method],
			})
		}
	}
	return rows
}

// MethodCounts tallies rows per HTTP method
func MethodCounts(rows []EndpointRow) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Method]++
	}
	return counts
}

// OrderedMethods returns the methods present in counts, standard verbs first
// in model.MethodOrder, then any others alphabetically
func OrderedMethods(counts map[string]int) []string {
	var ordered []string
	known := make(map[string]bool, len(model.MethodOrder))
	for _, m := range model.MethodOrder {
		known[m] = true
		if counts[m] > 0 {
			ordered = append(ordered, m)
		}
	}

	var extra []string
	for m, n := range counts {
		if !known[m] && n > 0 {
			extra = append(extra, m)
		}
	}
	sort.Strings(extra)
	return append(ordered, extra...)
}

// RequiredLabel renders a parameter's required flag for reports
func RequiredLabel(required bool) string {
	if required {
		return "Yes"
	}
	return "No"
}

// ReportBaseName is the file name, without extension, of the generated reports
const ReportBaseName = "doc-recon-report"

// ReportPath returns the output path of a report with the given extension (e.g. ".xlsx")
func ReportPath(cfg *config.Config, ext string) string {
	return cfg.GetArtifactPath(ReportBaseName + ext)
}
