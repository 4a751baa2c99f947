package main

import (
	"fmt"
	"io"

	"doc-recon/internal/exporter/common"
	"doc-recon/internal/model"

	"github.com/fatih/color"
)

func printSummary(w io.Writer, s *model.Summary) {
	label := color.New(color.Bold).SprintFunc()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", label("Source:     "), s.SourceURL)
	fmt.Fprintf(w, "%s %s\n", label("Base URL:   "), s.BaseURL)
	if s.PageTitle != "" {
		fmt.Fprintf(w, "%s %s\n", label("Page title: "), s.PageTitle)
	}
	fmt.Fprintf(w, "%s %d (%d without path, %d excluded)\n", label("Entries:    "), s.TotalEntries, s.TotalDropped, s.TotalExcluded)
	fmt.Fprintf(w, "%s %d\n", label("Records:    "), s.TotalRecords)
	fmt.Fprintf(w, "%s %d paths, %d operations\n", label("Document:   "), s.TotalPaths, s.TotalOperations)

	for _, method := range common.OrderedMethods(s.MethodCounts) {
		fmt.Fprintf(w, "  %-8s %d\n", method, s.MethodCounts[method])
	}

	if s.FetchError != "" {
		color.New(color.FgYellow).Fprintf(w, "Page could not be loaded: %s\n", s.FetchError)
	}
}
