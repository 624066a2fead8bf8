// Package model defines the core domain types shared across the binder packages.
package model

import "strings"

// Category codes.
const (
	CodeMulticolor = "M"
	CodeWhite      = "W"
	CodeBlue       = "U"
	CodeBlack      = "B"
	CodeRed        = "R"
	CodeGreen      = "G"
	CodeArtifacts  = "C"
	CodeLands      = "L"
)

// Category is one of the fixed color buckets a card can be reported under.
type Category struct {
	Code        string `json:"code" yaml:"code"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	// StyleHint is a presentation color; the pipeline never reads it.
	StyleHint string `json:"style_hint" yaml:"style_hint"`
}

// IsMulticolor reports whether c is the catch-all bucket.
func (c Category) IsMulticolor() bool {
	return c.Code == CodeMulticolor
}

// Matches reports whether an item with the given upper-cased color code
// belongs to this category. Multicolor matches every code that is not one
// of the single color codes, independent of which categories are enabled.
func (c Category) Matches(colorCode string) bool {
	if c.IsMulticolor() {
		return !IsSingleColorCode(colorCode)
	}
	return colorCode == c.Code
}

var categories = []Category{
	{Code: CodeMulticolor, DisplayName: "Multicolor", StyleHint: "#B8860B"},
	{Code: CodeWhite, DisplayName: "White", StyleHint: "#FFD7AF"},
	{Code: CodeBlue, DisplayName: "Blue", StyleHint: "#3B82F6"},
	{Code: CodeBlack, DisplayName: "Black", StyleHint: "#800080"},
	{Code: CodeRed, DisplayName: "Red", StyleHint: "#FF0000"},
	{Code: CodeGreen, DisplayName: "Green", StyleHint: "#008000"},
	{Code: CodeArtifacts, DisplayName: "Artifacts", StyleHint: "#875F00"},
	{Code: CodeLands, DisplayName: "Lands", StyleHint: "#5F87AF"},
}

// Categories returns the fixed category table in canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByCode looks up a category by its code, case-insensitively.
func CategoryByCode(code string) (Category, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range categories {
		if c.Code == code {
			return c, true
		}
	}
	return Category{}, false
}

// SingleColorCodes returns the codes of every category except multicolor.
// This is the exclusion set for the multicolor bucket and must always be
// the full fixed set.
func SingleColorCodes() []string {
	codes := make([]string, 0, len(categories)-1)
	for _, c := range categories {
		if !c.IsMulticolor() {
			codes = append(codes, c.Code)
		}
	}
	return codes
}

// IsSingleColorCode reports whether code is exactly one of the seven
// non-multicolor codes.
func IsSingleColorCode(code string) bool {
	for _, c := range categories {
		if !c.IsMulticolor() && c.Code == code {
			return true
		}
	}
	return false
}
