package extractor

import "doc-recon/internal/page"

// Locator is one named strategy for finding a field inside an element.
// Selector picks a descendant; Attr, when set, reads an attribute instead of
// text (an empty Selector with Attr reads the element itself).
type Locator struct {
	Name     string
	Selector string
	Attr     string
}

// Locate returns the value found by this locator, if any
func (l Locator) Locate(el *page.Element) (string, bool) {
	if l.Attr != "" {
		return el.AttrFirst(l.Selector, l.Attr)
	}
	return el.QueryFirst(l.Selector)
}

// LocatorChain is an ordered list of locators for one logical field
type LocatorChain []Locator

// First returns the value of the first locator that finds something
func (c LocatorChain) First(el *page.Element) (string, bool) {
	for _, l := range c {
		if v, ok := l.Locate(el); ok {
			return v, true
		}
	}
	return "", false
}

// FirstOr returns the first located value or def
func (c LocatorChain) FirstOr(el *page.Element, def string) string {
	if v, ok := c.First(el); ok {
		return v
	}
	return def
}

// Selectors for the documentation entry elements themselves.
// They are combined into a single group so matches come back in document order.
var EntrySelectors = []string{
	".endpoint",
	".api-endpoint",
	".operation",
	".opblock",
	".api-method",
	"[data-endpoint]",
	"[data-http-method]",
}

// Selectors for parameter-like sub-elements of an entry
var ParameterSelectors = []string{
	".parameter",
	".param",
	".api-param",
	".parameters tbody tr",
	"[data-param]",
}

var (
	MethodLocators = LocatorChain{
		{Name: "method", Selector: ".method"},
		{Name: "http-method", Selector: ".http-method"},
		{Name: "opblock-method", Selector: ".opblock-summary-method"},
		{Name: "verb", Selector: ".verb"},
		{Name: "data-method", Attr: "data-method"},
		{Name: "data-http-method", Attr: "data-http-method"},
	}

	PathLocators = LocatorChain{
		{Name: "path", Selector: ".path"},
		{Name: "endpoint-path", Selector: ".endpoint-path"},
		{Name: "url", Selector: ".url"},
		{Name: "opblock-path", Selector: ".opblock-summary-path"},
		{Name: "route", Selector: ".route"},
		{Name: "data-path", Attr: "data-path"},
	}

	// Description-like fields first, then summary-like, then any paragraph
	DescriptionLocators = LocatorChain{
		{Name: "description", Selector: ".description"},
		{Name: "desc", Selector: ".desc"},
		{Name: "summary", Selector: ".summary"},
		{Name: "opblock-description", Selector: ".opblock-summary-description"},
		{Name: "paragraph", Selector: "p"},
	}

	ResponseLocators = LocatorChain{
		{Name: "response", Selector: ".response"},
		{Name: "responses", Selector: ".responses"},
		{Name: "response-example", Selector: ".response-example"},
		{Name: "example", Selector: "pre"},
	}

	ParamNameLocators = LocatorChain{
		{Name: "name", Selector: ".name"},
		{Name: "param-name", Selector: ".param-name"},
		{Name: "parameter-name", Selector: ".parameter__name"},
		{Name: "data-name", Attr: "data-name"},
		{Name: "code", Selector: "code"},
		{Name: "first-cell", Selector: "td:first-child"},
	}

	ParamTypeLocators = LocatorChain{
		{Name: "type", Selector: ".type"},
		{Name: "param-type", Selector: ".param-type"},
		{Name: "parameter-type", Selector: ".parameter__type"},
		{Name: "data-type", Attr: "data-type"},
	}

	ParamDescriptionLocators = LocatorChain{
		{Name: "description", Selector: ".description"},
		{Name: "param-description", Selector: ".param-description"},
		{Name: "parameter-description", Selector: ".parameter__description"},
		{Name: "paragraph", Selector: "p"},
	}

	ParamLocationLocators = LocatorChain{
		{Name: "in", Selector: ".in"},
		{Name: "param-in", Selector: ".param-in"},
		{Name: "location", Selector: ".location"},
		{Name: "parameter-in", Selector: ".parameter__in"},
		{Name: "data-in", Attr: "data-in"},
	}
)
