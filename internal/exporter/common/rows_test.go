package common

import (
	"testing"

	"doc-recon/internal/converter"
	"doc-recon/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRowsFollowDocumentOrder(t *testing.T) {
	records := []model.EndpointRecord{
		{Method: "GET", Path: "/items", Response: strPtr("first")},
		{Method: "POST", Path: "/users", Description: "Create user", Parameters: []model.Parameter{{Name: "name", Required: true}}},
		{Method: "DELETE", Path: "/items"},
		{Method: "get", Path: "/items", Response: strPtr("second")},
	}
	doc := converter.Convert(records, "http://localhost")

	rows := Rows(doc, records)
	require.Len(t, rows, 3)

	assert.Equal(t, EndpointRow{No: 1, Method: "GET", Path: "/items", Summary: "GET /items", Description: "GET /items", Parameters: rows[0].Parameters, Response: "second"}, rows[0])
	assert.Equal(t, "DELETE", rows[1].Method)
	assert.Equal(t, "/items", rows[1].Path)
	assert.Equal(t, 3, rows[2].No)
	assert.Equal(t, "POST", rows[2].Method)
	assert.True(t, rows[2].HasBody)
	require.Len(t, rows[2].Parameters, 1)
	assert.Equal(t, "name", rows[2].Parameters[0].Name)
}

func TestRowsNilDocument(t *testing.T) {
	assert.Empty(t, Rows(nil, nil))
}

func TestMethodCountsAndOrder(t *testing.T) {
	rows := []EndpointRow{
		{Method: "DELETE"}, {Method: "GET"}, {Method: "GET"}, {Method: "PURGE"}, {Method: "POST"}, {Method: "COPY"},
	}

	counts := MethodCounts(rows)
	assert.Equal(t, 2, counts["GET"])
	assert.Equal(t, 1, counts["DELETE"])

	assert.Equal(t, []string{"GET", "POST", "DELETE", "COPY", "PURGE"}, OrderedMethods(counts))
}

func TestRequiredLabel(t *testing.T) {
	assert.Equal(t, "Yes", RequiredLabel(true))
	assert.Equal(t, "No", RequiredLabel(false))
}
