package extractor

import (
	"strings"

	"doc-recon/internal/model"
	"doc-recon/internal/page"
)

// requiredToken marks a parameter as required when it appears anywhere in its text.
// Case-sensitive, no word boundary: "not required" also matches.
const requiredToken = "required"

// Classify reads one documentation entry element into a draft record.
// It never fails: every field that cannot be located falls back to its default,
// and a missing path is left empty for the caller to filter.
func Classify(el *page.Element) model.EndpointRecord {
	rec := model.NewEndpointRecord()

	rec.Method = strings.ToUpper(MethodLocators.FirstOr(el, model.DefaultMethod))
	rec.Path = PathLocators.FirstOr(el, "")
	rec.Description = DescriptionLocators.FirstOr(el, "")

	for _, paramEl := range el.QueryAll(strings.Join(ParameterSelectors, ", ")) {
		rec.Parameters = append(rec.Parameters, classifyParameter(paramEl))
	}

	if resp, ok := ResponseLocators.First(el); ok {
		rec.Response = &resp
	}

	return rec
}

func classifyParameter(el *page.Element) model.Parameter {
	return model.Parameter{
		Name:        ParamNameLocators.FirstOr(el, ""),
		Type:        model.NormalizeType(ParamTypeLocators.FirstOr(el, model.DefaultType)),
		Required:    strings.Contains(el.Text(), requiredToken),
		Description: ParamDescriptionLocators.FirstOr(el, ""),
		Location:    model.NormalizeLocation(ParamLocationLocators.FirstOr(el, "")),
	}
}
