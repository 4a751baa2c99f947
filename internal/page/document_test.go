package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<html><head><title>  API
  Reference </title></head><body>
<div class="entry" data-id=" 7 ">
  <span class="name">  first
     entry </span>
  <span class="empty">   </span>
  <div class="entry"><span class="name">nested</span></div>
</div>
<div class="entry"><span class="name">second</span></div>
</body></html>`

func TestDocumentTitleAndURL(t *testing.T) {
	doc, err := ParseString(sampleHTML, "https://example.com/docs")
	require.NoError(t, err)

	assert.Equal(t, "API Reference", doc.Title())
	assert.Equal(t, "https://example.com/docs", doc.URL())
}

func TestDocumentQueryAllSkipsNested(t *testing.T) {
	doc, err := ParseString(sampleHTML, "")
	require.NoError(t, err)

	entries := doc.QueryAll(".entry")
	require.Len(t, entries, 2)

	name, ok := entries[0].QueryFirst(".name")
	assert.True(t, ok)
	assert.Equal(t, "first entry", name)

	name, ok = entries[1].QueryFirst(".name")
	assert.True(t, ok)
	assert.Equal(t, "second", name)
}

func TestElementQueryFirstBlankIsAbsent(t *testing.T) {
	doc, err := ParseString(sampleHTML, "")
	require.NoError(t, err)
	entry := doc.QueryAll(".entry")[0]

	_, ok := entry.QueryFirst(".empty")
	assert.False(t, ok)

	_, ok = entry.QueryFirst(".missing")
	assert.False(t, ok)

	_, ok = entry.QueryFirst("")
	assert.False(t, ok)
}

func TestElementAttrFirst(t *testing.T) {
	doc, err := ParseString(sampleHTML, "")
	require.NoError(t, err)
	entry := doc.QueryAll(".entry")[0]

	v, ok := entry.AttrFirst("", "data-id")
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	_, ok = entry.AttrFirst(".name", "data-id")
	assert.False(t, ok)

	_, ok = entry.AttrFirst("", "")
	assert.False(t, ok)
}

func TestElementQueryAllRelative(t *testing.T) {
	doc, err := ParseString(`<div id="root" class="box">
		<ul class="list"><li class="item">a</li><li class="item">b <ul><li class="item">b.1</li></ul></li></ul>
	</div>`, "")
	require.NoError(t, err)

	roots := doc.QueryAll(".box")
	require.Len(t, roots, 1)

	items := roots[0].QueryAll(".item")
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Text())
	assert.Equal(t, "b b.1", items[1].Text())
}

func TestNilDocumentIsEmpty(t *testing.T) {
	var doc *Document
	assert.Empty(t, doc.QueryAll(".entry"))
	assert.Equal(t, "", doc.Title())
	assert.Equal(t, "", doc.URL())

	var el *Element
	assert.Equal(t, "", el.Text())
	_, ok := el.QueryFirst(".x")
	assert.False(t, ok)
}

func TestInvalidSelectorMatchesNothing(t *testing.T) {
	doc, err := ParseString(sampleHTML, "")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.Empty(t, doc.QueryAll("[[["))
	})
}
