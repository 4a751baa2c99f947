package page

import (
	"fmt"
	"io"
	"strings"

	"doc-recon/internal/utils"

	"github.com/PuerkitoBio/goquery"
)

// Document is a rendered page snapshot that can be queried with CSS selectors.
// It is read-only: nothing in this package mutates the parsed tree.
type Document struct {
	doc *goquery.Document
	url string
}

// Element is one node of a Document
type Element struct {
	sel *goquery.Selection
}

// Parse builds a Document from HTML read from r
func Parse(r io.Reader, url string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc, url: url}, nil
}

// ParseString builds a Document from an HTML string
func ParseString(html, url string) (*Document, error) {
	return Parse(strings.NewReader(html), url)
}

// URL returns the location the document was loaded from
func (d *Document) URL() string {
	if d == nil {
		return ""
	}
	return d.url
}

// Title returns the normalized <title> text
func (d *Document) Title() string {
	if d == nil {
		return ""
	}
	return utils.NormalizeWhitespace(d.doc.Find("title").First().Text())
}

// QueryAll returns the elements matching selector in document order.
// An element nested inside another match is skipped, so one documentation
// entry never yields two candidates.
func (d *Document) QueryAll(selector string) []*Element {
	if d == nil || selector == "" {
		return nil
	}
	matches := d.doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered(selector).Length() == 0
	})
	return wrap(matches)
}

// Text returns the element's text content with whitespace collapsed
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return utils.NormalizeWhitespace(e.sel.Text())
}

// QueryFirst returns the text of the first descendant matching selector.
// A match whose text is blank counts as absent.
func (e *Element) QueryFirst(selector string) (string, bool) {
	if e == nil || selector == "" {
		return "", false
	}
	match := e.sel.Find(selector).First()
	if match.Length() == 0 {
		return "", false
	}
	text := utils.NormalizeWhitespace(match.Text())
	return text, text != ""
}

// AttrFirst returns the attribute value of the first descendant matching selector.
// An empty selector reads the attribute from the element itself.
func (e *Element) AttrFirst(selector, attr string) (string, bool) {
	if e == nil || attr == "" {
		return "", false
	}
	target := e.sel
	if selector != "" {
		target = e.sel.Find(selector).First()
	}
	if target.Length() == 0 {
		return "", false
	}
	value, ok := target.Attr(attr)
	if !ok {
		return "", false
	}
	value = utils.NormalizeWhitespace(value)
	return value, value != ""
}

// QueryAll returns descendants matching selector in document order,
// skipping matches nested inside another match below this element.
func (e *Element) QueryAll(selector string) []*Element {
	if e == nil || selector == "" {
		return nil
	}
	root := e.sel
	matches := root.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsUntilSelection(root).Filter(selector).Length() == 0
	})
	return wrap(matches)
}

func wrap(sel *goquery.Selection) []*Element {
	elements := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}
