package mcptool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
	"doc-recon/internal/page"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	ErrMissingArgument = errors.New("missing required argument")
	ErrNoServer        = errors.New("document has no callable server url")
)

const (
	// maxToolName is the longest tool name MCP clients accept
	maxToolName = 64

	maxResponseBytes = 10 << 20
)

var (
	nameCleaner  = regexp.MustCompile(`[^A-Za-z0-9]+`)
	placeholders = regexp.MustCompile(`\{([^{}]+)\}`)
)

// Operation is one method on one path of a loaded document
type Operation struct {
	Name    string
	Method  string
	Path    string
	Summary string
	Params  []openapi.Parameter
	HasBody bool
}

// OperationName derives a tool name from method and path,
// e.g. GET /pets/{petId} becomes get_pets_petId.
func OperationName(method, path string) string {
	parts := []string{strings.ToLower(strings.TrimSpace(method))}
	for _, seg := range strings.Split(path, "/") {
		seg = strings.Trim(nameCleaner.ReplaceAllString(seg, "_"), "_")
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	if len(parts) == 1 {
		parts = append(parts, "root")
	}

	name := strings.Join(parts, "_")
	if len(name) > maxToolName {
		name = name[:maxToolName]
	}
	return name
}

// Operations lists the operations of doc in document order.
// Names that collide after cleaning get a numeric suffix.
func Operations(doc *openapi.Document) []Operation {
	if doc == nil {
		return nil
	}

	seen := make(map[string]int)
	var ops []Operation
	for _, path := range doc.Paths.Keys() {
		item := doc.Paths.Get(path)
		for _, method := range item.Methods() {
			op := item.Get(method)
			name := OperationName(method, path)
			if n := seen[name]; n > 0 {
				seen[name] = n + 1
				name = fmt.Sprintf("%s_%d", name, n+1)
			} else {
				seen[name] = 1
			}

			ops = append(ops, Operation{
				Name:    name,
				Method:  strings.ToUpper(method),
				Path:    path,
				Summary: op.Summary,
				Params:  op.Parameters,
				HasBody: op.RequestBody != nil,
			})
		}
	}
	return ops
}

// Description is the tool description for op
func (op Operation) Description() string {
	desc := op.Method + " " + op.Path
	if op.Summary != "" && op.Summary != desc {
		desc = op.Summary + " (" + desc + ")"
	}
	if op.HasBody {
		desc += ". Arguments that are not parameters are sent as the JSON request body"
	}
	return desc
}

// InputSchema describes the arguments accepted by Call
func (op Operation) InputSchema() mcp.ToolInputSchema {
	schema := mcp.ToolInputSchema{Type: "object", Properties: map[string]any{}}

	declared := make(map[string]bool)
	for _, p := range op.Params {
		prop := map[string]any{"type": model.NormalizeType(p.Schema.Type)}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		schema.Properties[p.Name] = prop
		declared[p.Name] = true
		if p.Required || p.In == "path" {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	// Scraped pages sometimes omit the path parameters from their tables
	for _, m := range placeholders.FindAllStringSubmatch(op.Path, -1) {
		if !declared[m[1]] {
			schema.Properties[m[1]] = map[string]any{"type": model.DefaultType}
			schema.Required = append(schema.Required, m[1])
			declared[m[1]] = true
		}
	}
	return schema
}

// Tool is the MCP tool definition for op
func (op Operation) Tool() mcp.Tool {
	return mcp.Tool{
		Name:        op.Name,
		Description: op.Description(),
		InputSchema: op.InputSchema(),
	}
}

// Response is the raw result of an operation call
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Text renders the body for a tool result. JSON bodies are indented.
func (r *Response) Text() string {
	var v any
	if err := json.Unmarshal(r.Body, &v); err == nil {
		if data, err := json.MarshalIndent(v, "", "  "); err == nil {
			return string(data)
		}
	}
	return string(r.Body)
}

// Call executes op against baseURL. Path, query, header and cookie
// parameters are taken from args by name. Remaining arguments form the
// JSON body for operations that take one and extra query parameters
// for those that don't.
func Call(ctx context.Context, client *http.Client, baseURL string, op Operation, args map[string]any) (*Response, error) {
	if !page.IsRemote(baseURL) {
		return nil, fmt.Errorf("%w: %q", ErrNoServer, baseURL)
	}

	rest := make(map[string]any, len(args))
	for k, v := range args {
		if v != nil {
			rest[k] = v
		}
	}

	query := url.Values{}
	header := http.Header{}
	var cookies []*http.Cookie
	for _, p := range op.Params {
		v, ok := rest[p.Name]
		if !ok {
			if p.Required {
				return nil, fmt.Errorf("%w: %s", ErrMissingArgument, p.Name)
			}
			continue
		}

		switch p.In {
		case "path":
			// substituted below with the undeclared placeholders
			continue
		case "query":
			for _, s := range argStrings(v) {
				query.Add(p.Name, s)
			}
		case "header":
			header.Set(p.Name, argString(v))
		case "cookie":
			cookies = append(cookies, &http.Cookie{Name: p.Name, Value: argString(v)})
		default:
			// body fields stay in rest
			continue
		}
		delete(rest, p.Name)
	}

	var missing []string
	path := placeholders.ReplaceAllStringFunc(op.Path, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := rest[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		delete(rest, name)
		return url.PathEscape(argString(v))
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingArgument, strings.Join(missing, ", "))
	}

	var body io.Reader
	if op.HasBody {
		data, err := json.Marshal(rest)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		for k, v := range rest {
			for _, s := range argStrings(v) {
				query.Add(k, s)
			}
		}
	}

	target := strings.TrimRight(baseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, op.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		req.Header[k] = vs
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if op.HasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

func argString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func argStrings(v any) []string {
	if list, ok := v.([]any); ok {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, argString(item))
		}
		return out
	}
	return []string{argString(v)}
}
