package main

import (
	"fmt"
	"strings"

	"doc-recon/internal/logger"
	"doc-recon/internal/pipeline"
	"doc-recon/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type scrapeOptions struct {
	baseURL    string
	formats    string
	noProgress bool
}

func newScrapeCmd(global *globalOptions) *cobra.Command {
	opts := &scrapeOptions{}

	cmd := &cobra.Command{
		Use:   "scrape [url|file]",
		Short: "Scrape a documentation page and export an OpenAPI document",
		Long: `Loads an HTML API documentation page, extracts every endpoint entry,
converts the records into an OpenAPI 3.0 document and writes the configured
output formats. The page defaults to source.url from the configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, global, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Server URL for the document (default: origin of the page URL)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "Comma-separated output formats (openapi,yaml,records,excel,html,word)")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Do not render progress bars")
	return cmd
}

func runScrape(cmd *cobra.Command, global *globalOptions, opts *scrapeOptions, args []string) error {
	out := cmd.OutOrStdout()
	printBanner(out)

	cfg, err := global.setup(out)
	if err != nil {
		return err
	}
	defer logger.Close()

	if len(args) == 1 {
		cfg.Source.URL = args[0]
	}
	if opts.baseURL != "" {
		cfg.Source.BaseURL = opts.baseURL
	}
	if opts.formats != "" {
		cfg.Output.Formats = splitFormats(opts.formats)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	progress := ui.NewPipelineWithOutput(ui.ScrapePhases, out)
	if opts.noProgress {
		progress = ui.NewDisabledPipeline(ui.ScrapePhases)
	}

	runner, err := pipeline.NewRunner(cfg, progress)
	if err != nil {
		return err
	}

	logger.Info("Scraping %s", cfg.Source.URL)
	res := runner.Run(cmd.Context(), cfg.Source.URL, cfg.Source.BaseURL)
	exportErr := runner.Export(res, cfg)

	printSummary(out, res.Summary)

	if exportErr != nil {
		return fmt.Errorf("export failed: %w", exportErr)
	}
	progress.PrintSummary(color.GreenString("Scrape complete. Check [%s] directory.", cfg.Output.Dir))
	return nil
}

func splitFormats(raw string) []string {
	var formats []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
