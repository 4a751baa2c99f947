package exporter

import (
	"github.com/xuri/excelize/v2"
)

// methodColors is the badge color per HTTP method, shared with the HTML report
var methodColors = map[string]string{
	"GET":    "#61AFFE",
	"POST":   "#49CC90",
	"PUT":    "#FCA130",
	"PATCH":  "#50E3C2",
	"DELETE": "#F93E3E",
}

// Styler handles Excel styling
type Styler struct {
	File *excelize.File

	// Pre-defined styles
	HeaderStyle   int
	PathStyle     int
	RequiredStyle int
	WrapStyle     int
	DefaultStyle  int

	methodStyles map[string]int
	otherMethod  int
}

// NewStyler creates a new Styler and explicitly registers styles
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f, methodStyles: make(map[string]int)}
	var err error

	// Header Style: Bold, Gray Background, Center Aligned
	s.HeaderStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#000000"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Path Style: Monospace Blue
	s.PathStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Consolas", Color: "#0000FF"},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Required Style: Red Bold
	s.RequiredStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#D32F2F"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	s.WrapStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Default Style
	s.DefaultStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Method badges: white bold text on the method color
	for method, color := range methodColors {
		s.methodStyles[method], err = newBadgeStyle(f, color)
		if err != nil {
			return nil, err
		}
	}
	s.otherMethod, err = newBadgeStyle(f, "#9E9E9E")
	if err != nil {
		return nil, err
	}

	return s, nil
}

// MethodStyle returns the badge style for an uppercase HTTP method
func (s *Styler) MethodStyle(method string) int {
	if style, ok := s.methodStyles[method]; ok {
		return style
	}
	return s.otherMethod
}

func newBadgeStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
}

func createBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "D4D4D4", Style: 1},
		{Type: "top", Color: "D4D4D4", Style: 1},
		{Type: "bottom", Color: "D4D4D4", Style: 1},
		{Type: "right", Color: "D4D4D4", Style: 1},
	}
}
