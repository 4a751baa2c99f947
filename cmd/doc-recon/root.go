package main

import (
	"fmt"
	"io"
	"path/filepath"

	"doc-recon/internal/config"
	"doc-recon/internal/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// LogFileName is created inside the output directory
const LogFileName = "doc_recon.log"

type globalOptions struct {
	configPath string
	verbose    bool
	outputDir  string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           appName,
		Short:         appDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "config.yaml", "Path to configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging (DEBUG level)")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Override output directory from config")

	root.AddCommand(
		newScrapeCmd(opts),
		newConvertCmd(opts),
		newValidateCmd(opts),
		newServeCmd(opts),
		newMCPCmd(opts),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and starts the
// logger. Console logs go to console; the log file lives in the output dir
// when it can be opened.
func (o *globalOptions) setup(console io.Writer) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if o.outputDir != "" {
		dir, err := filepath.Abs(o.outputDir)
		if err != nil {
			return nil, fmt.Errorf("invalid output directory: %w", err)
		}
		cfg.Output.Dir = dir
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	logPath := filepath.Join(cfg.Output.Dir, LogFileName)
	if err := logger.Init(console, logPath, o.verbose); err != nil {
		logger.InitConsole(console, o.verbose)
		logger.Warn("Logging to console only: %v", err)
	}

	if o.verbose {
		cfg.Print(console)
	}
	return cfg, nil
}

func printBanner(w io.Writer) {
	bold := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintln(w, bold("╔═══════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(w, bold(fmt.Sprintf("║  %-55s  ║", "DOC RECON v"+appVersion)))
	fmt.Fprintln(w, bold(fmt.Sprintf("║  %-55s  ║", "HTML API documentation to OpenAPI 3.0")))
	fmt.Fprintln(w, bold("╚═══════════════════════════════════════════════════════════╝"))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n%s\n", appName, appVersion, appDesc)
		},
	}
}
