// Package mcptool exposes scraping as MCP tools over stdio, and turns
// scraped documents into tools that call the documented API.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"doc-recon/internal/logger"
	"doc-recon/internal/model"
	"doc-recon/internal/pipeline"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName = "doc-recon"

	instructions = "doc-recon turns HTML API documentation pages into OpenAPI 3.0 documents. " +
		"Use scrape_docs to get an OpenAPI document for a page and extract_endpoints to see the raw endpoint records. " +
		"To call the documented API, load_docs a page under an id, list_operations to see what it offers, " +
		"then call_operation. Requests go to the first server url of the document."

	// DefaultCallTimeout bounds a single call_operation request
	DefaultCallTimeout = 30 * time.Second
)

// Tools serves MCP tool calls with a scrape runner
type Tools struct {
	runner *pipeline.Runner
	docs   *Registry
	client *http.Client

	// server receives per-operation tools; set by Register
	server *server.MCPServer
}

func New(runner *pipeline.Runner) *Tools {
	return &Tools{
		runner: runner,
		docs:   NewRegistry(),
		client: &http.Client{Timeout: DefaultCallTimeout},
	}
}

// Docs returns the registry of loaded documents
func (t *Tools) Docs() *Registry {
	return t.docs
}

// NewServer creates an MCP server with every tool registered
func NewServer(runner *pipeline.Runner, version string) (*server.MCPServer, *Tools) {
	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	t := New(runner)
	t.Register(s)
	return s, t
}

// Register adds the scraping and docs tools to s
func (t *Tools) Register(s *server.MCPServer) {
	t.server = s
	s.AddTool(
		mcp.NewTool("scrape_docs",
			mcp.WithDescription("Scrape an API documentation page and return it as an OpenAPI 3.0 document"),
			mcp.WithString("url", mcp.Required(), mcp.Description("Documentation page URL or local HTML file")),
			mcp.WithString("base_url", mcp.Description("Server URL for the document (default: origin of url)")),
			mcp.WithString("format", mcp.Description("json (default) or yaml")),
		),
		t.handleScrapeDocs,
	)

	s.AddTool(
		mcp.NewTool("extract_endpoints",
			mcp.WithDescription("Extract the endpoint records found on an API documentation page as JSON"),
			mcp.WithString("url", mcp.Required(), mcp.Description("Documentation page URL or local HTML file")),
		),
		t.handleExtractEndpoints,
	)

	s.AddTool(
		mcp.NewTool("load_docs",
			mcp.WithDescription("Scrape an API documentation page and keep it under an id so its operations can be called"),
			mcp.WithString("id", mcp.Description("Name for the loaded docs (default: derived from url)")),
			mcp.WithString("url", mcp.Required(), mcp.Description("Documentation page URL or local HTML file")),
			mcp.WithString("base_url", mcp.Description("Server URL calls are sent to (default: origin of url)")),
			mcp.WithBoolean("expose_tools", mcp.Description("Also register one tool per operation")),
		),
		t.handleLoadDocs,
	)

	s.AddTool(
		mcp.NewTool("list_docs",
			mcp.WithDescription("List the loaded docs with their server url and operation count"),
		),
		t.handleListDocs,
	)

	s.AddTool(
		mcp.NewTool("list_operations",
			mcp.WithDescription("List the operations of loaded docs with the arguments each one accepts"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Id given to load_docs")),
		),
		t.handleListOperations,
	)

	s.AddTool(
		mcp.NewTool("call_operation",
			mcp.WithDescription("Call an operation of loaded docs and return the response"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Id given to load_docs")),
			mcp.WithString("operation", mcp.Required(), mcp.Description("Operation name from list_operations (e.g. get_pets_petId)")),
			mcp.WithObject("arguments", mcp.Description("Argument values by name. A JSON object string is accepted too")),
		),
		t.handleCallOperation,
	)

	s.AddTool(
		mcp.NewTool("unload_docs",
			mcp.WithDescription("Forget loaded docs and remove their operation tools"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Id given to load_docs")),
		),
		t.handleUnloadDocs,
	)
}

// Load scrapes target and registers the result under id. With expose set,
// every operation also becomes its own tool on the registered server.
func (t *Tools) Load(ctx context.Context, id, target, baseURL string, expose bool) (*Loaded, error) {
	if id == "" {
		id = DocsID(target)
	}

	res := t.runner.Run(ctx, target, baseURL)
	if res.Summary.FetchError != "" {
		return nil, fmt.Errorf("could not load %s: %s", target, res.Summary.FetchError)
	}

	loaded, replaced, err := t.docs.Add(id, target, res.Document)
	if err != nil {
		return nil, err
	}
	if replaced != nil {
		t.hide(replaced)
	}
	if expose {
		t.expose(loaded)
	}

	logger.Info("Loaded docs %s from %s (%d operations)", id, target, len(loaded.Operations))
	return loaded, nil
}

func (t *Tools) expose(l *Loaded) {
	if t.server == nil {
		return
	}
	tools := make([]server.ServerTool, 0, len(l.Operations))
	for _, op := range l.Operations {
		tools = append(tools, server.ServerTool{Tool: op.Tool(), Handler: t.operationHandler(l, op)})
		l.Exposed = append(l.Exposed, op.Name)
	}
	t.server.AddTools(tools...)
}

func (t *Tools) hide(l *Loaded) {
	if t.server != nil && len(l.Exposed) > 0 {
		t.server.DeleteTools(l.Exposed...)
	}
}

func (t *Tools) operationHandler(l *Loaded, op Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return t.call(ctx, l, op, req.GetArguments()), nil
	}
}

func (t *Tools) call(ctx context.Context, l *Loaded, op Operation, args map[string]any) *mcp.CallToolResult {
	resp, err := Call(ctx, t.client, l.BaseURL, op, args)
	if err != nil {
		logger.Debug("%s %s failed: %v", op.Method, op.Path, err)
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", op.Name, err))
	}
	if resp.Status >= http.StatusBadRequest {
		return mcp.NewToolResultError(fmt.Sprintf("HTTP %d\n%s", resp.Status, resp.Text()))
	}
	return mcp.NewToolResultText(resp.Text())
}

type docsSummary struct {
	ID         string `json:"id"`
	Source     string `json:"source"`
	BaseURL    string `json:"base_url"`
	Operations int    `json:"operations"`
	Tools      int    `json:"exposed_tools"`
}

type operationSummary struct {
	Name        string              `json:"name"`
	Method      string              `json:"method"`
	Path        string              `json:"path"`
	Description string              `json:"description"`
	Arguments   mcp.ToolInputSchema `json:"arguments"`
}

func (t *Tools) handleLoadDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := strings.TrimSpace(mcp.ParseString(req, "url", ""))
	if target == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	loaded, err := t.Load(ctx,
		strings.TrimSpace(mcp.ParseString(req, "id", "")),
		target,
		strings.TrimSpace(mcp.ParseString(req, "base_url", "")),
		mcp.ParseBoolean(req, "expose_tools", false),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	msg := fmt.Sprintf("Loaded %s: %d operations against %s", loaded.ID, len(loaded.Operations), loaded.BaseURL)
	if len(loaded.Exposed) > 0 {
		msg += fmt.Sprintf(" (%d tools registered)", len(loaded.Exposed))
	}
	return mcp.NewToolResultText(msg), nil
}

func (t *Tools) handleListDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := t.docs.List()
	out := make([]docsSummary, 0, len(list))
	for _, l := range list {
		out = append(out, docsSummary{
			ID:         l.ID,
			Source:     l.Source,
			BaseURL:    l.BaseURL,
			Operations: len(l.Operations),
			Tools:      len(l.Exposed),
		})
	}
	return jsonResult(out)
}

func (t *Tools) handleListOperations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	l, err := t.docs.Get(strings.TrimSpace(mcp.ParseString(req, "id", "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]operationSummary, 0, len(l.Operations))
	for _, op := range l.Operations {
		out = append(out, operationSummary{
			Name:        op.Name,
			Method:      op.Method,
			Path:        op.Path,
			Description: op.Description(),
			Arguments:   op.InputSchema(),
		})
	}
	return jsonResult(out)
}

func (t *Tools) handleCallOperation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	l, err := t.docs.Get(strings.TrimSpace(mcp.ParseString(req, "id", "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	name := strings.TrimSpace(mcp.ParseString(req, "operation", ""))
	op, ok := l.Operation(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown operation %q for %s (see list_operations)", name, l.ID)), nil
	}

	args, err := objectArgument(mcp.ParseArgument(req, "arguments", nil))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return t.call(ctx, l, op, args), nil
}

func (t *Tools) handleUnloadDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	l, err := t.docs.Remove(strings.TrimSpace(mcp.ParseString(req, "id", "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	t.hide(l)
	logger.Info("Unloaded docs %s", l.ID)
	return mcp.NewToolResultText(fmt.Sprintf("Unloaded %s", l.ID)), nil
}

// objectArgument accepts an object or a JSON object string
func objectArgument(v any) (map[string]any, error) {
	switch x := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return x, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return map[string]any{}, nil
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(x), &out); err != nil {
			return nil, fmt.Errorf("invalid arguments JSON: %v", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("arguments must be an object, got %T", v)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (t *Tools) handleScrapeDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := strings.TrimSpace(mcp.ParseString(req, "url", ""))
	baseURL := strings.TrimSpace(mcp.ParseString(req, "base_url", ""))
	format := strings.ToLower(strings.TrimSpace(mcp.ParseString(req, "format", "json")))

	if target == "" {
		return mcp.NewToolResultError("url is required"), nil
	}
	if format != "json" && format != "yaml" {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q (use json or yaml)", format)), nil
	}

	res := t.runner.Run(ctx, target, baseURL)
	if res.Summary.FetchError != "" {
		logger.Warn("scrape_docs: %s returned an empty document: %s", target, res.Summary.FetchError)
	}

	var (
		data []byte
		err  error
	)
	if format == "yaml" {
		data, err = res.Document.MarshalYAML()
	} else {
		data, err = res.Document.MarshalIndent()
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode document: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (t *Tools) handleExtractEndpoints(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target := strings.TrimSpace(mcp.ParseString(req, "url", ""))
	if target == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	res := t.runner.Run(ctx, target, "")
	if res.Summary.FetchError != "" {
		return mcp.NewToolResultError(fmt.Sprintf("could not load %s: %s", target, res.Summary.FetchError)), nil
	}

	records := res.Records
	if records == nil {
		records = []model.EndpointRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode records: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
