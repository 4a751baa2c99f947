package main

import (
	"fmt"

	"doc-recon/internal/logger"
	"doc-recon/internal/mcptool"
	"doc-recon/internal/pipeline"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

type mcpOptions struct {
	docs    string
	docsID  string
	baseURL string
}

func newMCPCmd(global *globalOptions) *cobra.Command {
	opts := &mcpOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run as an MCP server over stdio",
		Long: `Serves the scraping tools and the docs tools (load_docs, list_docs,
list_operations, call_operation, unload_docs) over stdio. With --docs the page is
loaded at startup and each of its operations is served as its own tool.
Stdout carries the protocol, so logs go to stderr and the log file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer logger.Close()

			runner, err := pipeline.NewRunner(cfg, nil)
			if err != nil {
				return err
			}

			s, tools := mcptool.NewServer(runner, appVersion)
			if opts.docs != "" {
				loaded, err := tools.Load(cmd.Context(), opts.docsID, opts.docs, opts.baseURL, true)
				if err != nil {
					return err
				}
				logger.Info("Serving %d operation tools for %s", len(loaded.Exposed), loaded.ID)
			}

			logger.Info("Starting %s MCP server (stdio)", appName)
			if err := server.ServeStdio(s); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.docs, "docs", "", "Documentation page to load at startup, one tool per operation")
	cmd.Flags().StringVar(&opts.docsID, "docs-id", "", "Id for the --docs page (default: derived from the url)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Server URL calls are sent to (default: origin of --docs)")
	return cmd
}
