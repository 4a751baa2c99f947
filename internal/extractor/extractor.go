// Package extractor turns a rendered documentation page into endpoint records.
package extractor

import (
	"strings"

	"doc-recon/internal/model"
	"doc-recon/internal/page"
)

// Result carries the extracted records together with filter statistics
type Result struct {
	Records    []model.EndpointRecord
	Candidates int // Entry elements found on the page
	Dropped    int // Entries discarded for having no path
}

// Extract returns the endpoint records of doc in document order.
// Entries without a discoverable path are dropped. A nil document yields an
// empty, non-nil slice.
func Extract(doc *page.Document) []model.EndpointRecord {
	return ExtractAll(doc).Records
}

// ExtractAll is Extract with candidate and drop counts
func ExtractAll(doc *page.Document) Result {
	res := Result{Records: make([]model.EndpointRecord, 0)}

	for _, el := range doc.QueryAll(strings.Join(EntrySelectors, ", ")) {
		res.Candidates++

		rec := Classify(el)
		if !rec.HasPath() {
			res.Dropped++
			continue
		}
		res.Records = append(res.Records, rec)
	}

	return res
}
