package main

import (
	"fmt"
	"io"
	"os"

	"doc-recon/internal/logger"
	"doc-recon/internal/pipeline"
	"doc-recon/internal/ui"
	"doc-recon/internal/validation"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newConvertCmd(global *globalOptions) *cobra.Command {
	var baseURL, formats string

	cmd := &cobra.Command{
		Use:   "convert <records.json>",
		Short: "Convert exported endpoint records into an OpenAPI document",
		Long: `Reads endpoint records previously written by the records format, checks
them against the records schema and converts them without loading any page.
Use "-" to read the records from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := global.setup(out)
			if err != nil {
				return err
			}
			defer logger.Close()

			if formats != "" {
				cfg.Output.Formats = splitFormats(formats)
			}
			if err := cfg.ValidateOutput(); err != nil {
				return err
			}

			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			records, err := validation.LoadRecords(data)
			if err != nil {
				return err
			}
			logger.Info("Loaded %d records from %s", len(records), args[0])

			runner := &pipeline.Runner{
				Progress: ui.NewPipelineWithOutput([]ui.Phase{ui.PhaseConverting, ui.PhaseGenerating}, out),
				Exclude:  cfg.IsExcluded,
			}
			res := runner.ConvertRecords(cmd.Context(), args[0], records, baseURL)
			exportErr := runner.Export(res, cfg)

			printSummary(out, res.Summary)

			if exportErr != nil {
				return fmt.Errorf("export failed: %w", exportErr)
			}
			fmt.Fprintln(out, color.GreenString("Conversion complete. Check [%s] directory.", cfg.Output.Dir))
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Server URL for the document (required)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "Comma-separated output formats (openapi,yaml,records,excel,html,word)")
	_ = cmd.MarkFlagRequired("base-url")
	return cmd
}

// readInput reads a file argument, with "-" meaning stdin
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return readAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return data, nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read stdin: %w", err)
	}
	return data, nil
}
