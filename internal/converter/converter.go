// Package converter turns extracted endpoint records into an OpenAPI document.
package converter

import (
	"strings"

	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
	"doc-recon/internal/utils"
)

const (
	// DocumentTitle is the info.title of every generated document
	DocumentTitle = "Scraped API Documentation"

	jsonContentType     = "application/json"
	successDescription  = "Successful response"
	serverDescription   = "Scraped API server"
	descriptionTemplate = "API documentation scraped from "
)

// Convert builds an OpenAPI document from records, in input order.
// Records without a path are skipped. A later record with the same path and
// method replaces the earlier operation but keeps its position.
func Convert(records []model.EndpointRecord, baseURL string) *openapi.Document {
	doc := openapi.New(DocumentTitle, descriptionTemplate+baseURL)
	doc.Servers = []openapi.Server{{URL: baseURL, Description: serverDescription}}

	for _, rec := range records {
		if !rec.HasPath() {
			continue
		}

		method := strings.ToUpper(strings.TrimSpace(rec.Method))
		if method == "" {
			method = model.DefaultMethod
		}

		path := strings.TrimSpace(rec.Path)
		item := doc.Paths.Ensure(path)
		item.Set(strings.ToLower(method), buildOperation(method, path, rec))
	}

	return doc
}

func buildOperation(method, path string, rec model.EndpointRecord) *openapi.Operation {
	fallback := method + " " + path
	description := rec.Description
	if utils.IsBlank(description) {
		description = fallback
	}

	op := &openapi.Operation{
		Summary:     description,
		Description: description,
		Parameters:  buildParameters(rec.Parameters),
		Responses: map[string]openapi.Response{
			"200": {
				Description: successDescription,
				Content: map[string]openapi.MediaType{
					jsonContentType: {Schema: openapi.Schema{Type: "object"}},
				},
			},
		},
	}

	if model.IsMutatingMethod(method) {
		op.RequestBody = &openapi.RequestBody{
			Required: true,
			Content: map[string]openapi.MediaType{
				jsonContentType: {Schema: openapi.Schema{
					Type:       "object",
					Properties: map[string]openapi.Schema{},
				}},
			},
		}
	}

	return op
}

func buildParameters(params []model.Parameter) []openapi.Parameter {
	out := make([]openapi.Parameter, 0, len(params))
	for _, p := range params {
		// Records loaded from JSON carry whatever the page said
		in := model.NormalizeLocation(p.Location)
		if in == "" {
			in = model.DefaultLocation
		}
		out = append(out, openapi.Parameter{
			Name:        p.Name,
			In:          in,
			Required:    p.Required,
			Description: p.Description,
			Schema:      openapi.Schema{Type: model.NormalizeType(p.Type)},
		})
	}
	return out
}
