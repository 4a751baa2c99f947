package model

// Summary holds run-level statistics shown in reports
type Summary struct {
	SourceURL  string
	BaseURL    string
	ScrapeDate string
	PageTitle  string

	TotalEntries    int // Candidate documentation entries found on the page
	TotalRecords    int // Records kept after the no-path filter
	TotalDropped    int // Entries dropped because no path was found
	TotalExcluded   int // Records left out by extraction.exclude_paths
	TotalPaths      int
	TotalOperations int

	// Operation count per uppercase method, after last-write-wins
	MethodCounts map[string]int

	// Navigation failure, empty when the page loaded
	FetchError string
}

// NewSummary creates an empty summary
func NewSummary() *Summary {
	return &Summary{
		MethodCounts: make(map[string]int),
	}
}

// MethodOrder is the display order for methods in reports
var MethodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS", "TRACE"}
