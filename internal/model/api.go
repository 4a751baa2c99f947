package model

import "strings"

// Defaults applied when a field cannot be located on the page
const (
	DefaultMethod   = "GET"
	DefaultType     = "string"
	DefaultLocation = "query"
)

// EndpointRecord is the normalized description of one scraped API operation
type EndpointRecord struct {
	// HTTP Method, uppercase (GET, POST, PUT, DELETE, etc.)
	Method string `json:"method"`

	// URL path as written in the documentation (e.g., "/api/v1/users")
	Path string `json:"path"`

	// Description or summary text, may be empty
	Description string `json:"description"`

	// Parameters in document order
	Parameters []Parameter `json:"parameters"`

	// Response hint text, nil when the entry had none
	Response *string `json:"response,omitempty"`
}

// Parameter represents one documented request parameter
type Parameter struct {
	// Parameter name (may be empty if unlocatable)
	Name string `json:"name"`

	// OpenAPI primitive type (string, integer, number, boolean, array, object)
	Type string `json:"type"`

	// Whether the parameter text mentions "required"
	Required bool `json:"required"`

	// Parameter description
	Description string `json:"description"`

	// Where the parameter goes (query, path, header, cookie, body)
	Location string `json:"location,omitempty"`
}

// NewEndpointRecord creates a record carrying the documented defaults
func NewEndpointRecord() EndpointRecord {
	return EndpointRecord{
		Method:     DefaultMethod,
		Parameters: make([]Parameter, 0),
	}
}

// HasPath reports whether the record survived extraction
func (r EndpointRecord) HasPath() bool {
	return strings.TrimSpace(r.Path) != ""
}

// ResponseText returns the response hint or an empty string
func (r EndpointRecord) ResponseText() string {
	if r.Response == nil {
		return ""
	}
	return *r.Response
}

// IsMutatingMethod reports whether a request body should be synthesized for the method.
// The match is case-insensitive.
func IsMutatingMethod(method string) bool {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

// NormalizeType maps free-form type text from documentation onto an OpenAPI primitive type.
// Unknown or empty text falls back to DefaultType.
func NormalizeType(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))

	switch lower {
	case "string", "integer", "number", "boolean", "array", "object":
		return lower
	case "":
		return DefaultType
	}

	if strings.Contains(lower, "[]") || strings.HasPrefix(lower, "array") ||
		strings.HasPrefix(lower, "list") || strings.Contains(lower, "list<") {
		return "array"
	}
	if strings.Contains(lower, "bool") {
		return "boolean"
	}
	if strings.HasPrefix(lower, "int") || strings.HasPrefix(lower, "long") ||
		strings.HasPrefix(lower, "uint") || lower == "short" {
		return "integer"
	}
	if strings.Contains(lower, "float") || strings.Contains(lower, "double") ||
		strings.Contains(lower, "decimal") || strings.HasPrefix(lower, "number") {
		return "number"
	}
	if strings.Contains(lower, "object") || strings.Contains(lower, "map") ||
		strings.Contains(lower, "dict") || lower == "json" {
		return "object"
	}

	return DefaultType
}

// NormalizeLocation maps location text onto a parameter location.
// Anything unrecognised becomes an empty string so that consumers apply DefaultLocation.
func NormalizeLocation(raw string) string {
	lower := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case lower == "":
		return ""
	case strings.Contains(lower, "path"):
		return "path"
	case strings.Contains(lower, "header"):
		return "header"
	case strings.Contains(lower, "cookie"):
		return "cookie"
	case strings.Contains(lower, "query"):
		return "query"
	case strings.Contains(lower, "body"):
		return "body"
	}
	return ""
}
