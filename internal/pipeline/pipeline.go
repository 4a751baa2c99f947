// Package pipeline wires page loading, extraction, conversion and export into
// one scrape run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"doc-recon/internal/config"
	"doc-recon/internal/converter"
	"doc-recon/internal/exporter"
	"doc-recon/internal/extractor"
	"doc-recon/internal/logger"
	"doc-recon/internal/model"
	"doc-recon/internal/openapi"
	"doc-recon/internal/page"
	"doc-recon/internal/ui"
	"doc-recon/internal/validation"
)

// LocalBaseURL is the server URL used for documentation loaded from a file
const LocalBaseURL = "http://localhost"

// Result is the outcome of one scrape run
type Result struct {
	Records  []model.EndpointRecord
	Document *openapi.Document
	Summary  *model.Summary
}

// Runner executes scrape runs
type Runner struct {
	Source   page.Source
	Progress *ui.Pipeline // nil renders nothing

	// Exclude reports whether an extracted path should be left out
	Exclude func(path string) bool

	// Now stamps the summary; defaults to time.Now
	Now func() time.Time
}

// NewRunner builds a Runner from configuration: a fetcher with cache and
// retry settings behind a file/URL router.
func NewRunner(cfg *config.Config, progress *ui.Pipeline) (*Runner, error) {
	opts := []page.FetcherOption{
		page.WithUserAgent(cfg.Source.UserAgent),
	}

	retry := page.DefaultRetryConfig()
	if cfg.Source.RetryAttempts > 0 {
		retry.MaxAttempts = cfg.Source.RetryAttempts
	}
	opts = append(opts, page.WithRetry(retry))

	if cfg.Source.CacheDir != "" {
		cache, err := page.NewCache(cfg.Source.CacheDir, cfg.Source.CacheTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, page.WithCache(cache))
	}

	return &Runner{
		Source:   page.NewRouter(page.NewFetcher(cfg.Source.Timeout, opts...)),
		Progress: progress,
		Exclude:  cfg.IsExcluded,
	}, nil
}

// Run scrapes target and converts the result. It never fails: a page that
// cannot be loaded is logged and yields an empty document, with the error
// kept in Summary.FetchError. An empty baseURL is inferred from target.
func (r *Runner) Run(ctx context.Context, target, baseURL string) *Result {
	if baseURL == "" {
		baseURL = InferBaseURL(target)
	}

	summary := model.NewSummary()
	summary.SourceURL = target
	summary.BaseURL = baseURL
	summary.ScrapeDate = r.now().Format("2006-01-02 15:04:05")

	// Phase 1: Fetching
	bar := r.Progress.NextPhase(ui.Indeterminate)
	bar.Describe(target)
	doc, err := r.load(ctx, target)
	if err != nil {
		logger.Warn("Could not load %s, continuing with an empty page: %v", target, err)
		logger.LogFetchError(target, err, "scrape")
		summary.FetchError = err.Error()
		doc = nil
	} else {
		summary.PageTitle = doc.Title()
	}

	// Phase 2: Extracting
	bar = r.Progress.NextPhase(1)
	extracted := extractor.ExtractAll(doc)
	bar.SetTotal(max(extracted.Candidates, 1))
	records := r.filter(extracted.Records, summary)
	bar.Describe(fmt.Sprintf("%d records", len(records)))
	logger.Info("Extracted %d records from %d candidate entries (%d without path)",
		len(records), extracted.Candidates, extracted.Dropped)

	summary.TotalEntries = extracted.Candidates
	summary.TotalDropped = extracted.Dropped

	return r.convert(ctx, records, baseURL, summary)
}

// ConvertRecords converts previously exported records without loading a
// page. source only labels the summary. Exclusions still apply.
func (r *Runner) ConvertRecords(ctx context.Context, source string, records []model.EndpointRecord, baseURL string) *Result {
	summary := model.NewSummary()
	summary.SourceURL = source
	summary.BaseURL = baseURL
	summary.ScrapeDate = r.now().Format("2006-01-02 15:04:05")
	summary.TotalEntries = len(records)

	kept := make([]model.EndpointRecord, 0, len(records))
	for _, rec := range records {
		if !rec.HasPath() {
			summary.TotalDropped++
			continue
		}
		kept = append(kept, rec)
	}

	return r.convert(ctx, r.filter(kept, summary), baseURL, summary)
}

// convert runs the Converting phase and fills the summary counters
func (r *Runner) convert(ctx context.Context, records []model.EndpointRecord, baseURL string, summary *model.Summary) *Result {
	summary.TotalRecords = len(records)

	bar := r.Progress.NextPhase(1)
	document := converter.Convert(records, baseURL)
	bar.Increment()

	summary.TotalPaths = document.Paths.Len()
	summary.TotalOperations = document.Operations()
	for _, path := range document.Paths.Keys() {
		for _, method := range document.Paths.Get(path).Methods() {
			summary.MethodCounts[strings.ToUpper(method)]++
		}
	}

	checkDocument(ctx, document)

	return &Result{Records: records, Document: document, Summary: summary}
}

// Export runs the configured exporters as the final phase
func (r *Runner) Export(res *Result, cfg *config.Config) error {
	bar := r.Progress.NextPhase(len(cfg.Output.Formats))
	defer r.Progress.Finish()
	bar.Describe(cfg.Output.Dir)

	return exporter.ExportAll(cfg.Output.Formats, res.Summary, res.Records, res.Document, cfg)
}

func (r *Runner) load(ctx context.Context, target string) (*page.Document, error) {
	if r.Source == nil {
		return nil, errors.New("no page source configured")
	}
	return r.Source.Load(ctx, target)
}

func (r *Runner) filter(records []model.EndpointRecord, summary *model.Summary) []model.EndpointRecord {
	if r.Exclude == nil {
		return records
	}
	kept := make([]model.EndpointRecord, 0, len(records))
	for _, rec := range records {
		if r.Exclude(strings.TrimSpace(rec.Path)) {
			logger.Debug("Excluding %s %s", rec.Method, rec.Path)
			summary.TotalExcluded++
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// checkDocument validates the generated document and logs findings as warnings
func checkDocument(ctx context.Context, doc *openapi.Document) {
	data, err := doc.MarshalIndent()
	if err != nil {
		logger.Warn("Could not encode document for validation: %v", err)
		return
	}
	if _, err := validation.ValidateDocument(ctx, data); err != nil {
		logger.Warn("Generated document has validation findings: %v", err)
	}
}

// InferBaseURL returns the origin of an http(s) target, or LocalBaseURL for files
func InferBaseURL(target string) string {
	if origin := page.Origin(strings.TrimSpace(target)); origin != "" {
		return origin
	}
	return LocalBaseURL
}
