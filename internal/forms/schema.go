// Package forms generates the quantity-driven per-jersey question set,
// validates submissions into structured detail lists and computes the
// order summary projection.
package forms

import "fmt"

// Option sets offered by the detail-collection form.
var (
	JerseyTypes    = []string{"Player Jersey", "Keeper Jersey", "Official Jersey", "Training Jersey", "Warm-up Jersey"}
	SizeCategories = []string{"Adult", "Kids", "Muslima"}
	Sizes          = []string{"XS", "S", "M", "L", "XL", "2XL", "3XL", "4XL", "5XL"}
	Sleeves        = []string{"Short Sleeve", "Long Sleeve"}
	ShortsOptions  = []string{"Yes", "No"}
)

// Jersey numbers are printed on the back and limited to two digits.
const (
	MinJerseyNumber = 1
	MaxJerseyNumber = 99
)

// Field describes one question of a jersey sub-form.
type Field struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
	Min      int      `json:"min,omitempty"`
	Max      int      `json:"max,omitempty"`
}

// JerseyGroup is the full question set for a single jersey, addressed by a
// stable zero-based index.
type JerseyGroup struct {
	Index  int     `json:"index"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// FieldName returns the submission key for a jersey index and field suffix,
// e.g. jersey_0_type.
func FieldName(index int, suffix string) string {
	return fmt.Sprintf("jersey_%d_%s", index, suffix)
}

// Schema produces exactly quantity repetitions of the jersey field set,
// indices 0..quantity-1. It is a pure function of the quantity.
func Schema(quantity int) []JerseyGroup {
	groups := make([]JerseyGroup, 0, quantity)
	for i := 0; i < quantity; i++ {
		groups = append(groups, JerseyGroup{
			Index: i,
			Title: fmt.Sprintf("Jersey %d", i+1),
			Fields: []Field{
				{Name: FieldName(i, "type"), Label: "Jersey Type", Kind: "select", Required: true, Options: JerseyTypes},
				{Name: FieldName(i, "name"), Label: "Player Name", Kind: "text", Required: true},
				{Name: FieldName(i, "number"), Label: "Jersey Number", Kind: "number", Required: true, Min: MinJerseyNumber, Max: MaxJerseyNumber},
				{Name: FieldName(i, "size_category"), Label: "Size Category", Kind: "select", Required: true, Options: SizeCategories},
				{Name: FieldName(i, "size"), Label: "Size", Kind: "select", Required: true, Options: Sizes},
				{Name: FieldName(i, "sleeve"), Label: "Sleeve", Kind: "select", Required: true, Options: Sleeves},
				{Name: FieldName(i, "shorts"), Label: "Shorts", Kind: "select", Required: true, Options: ShortsOptions},
				{Name: FieldName(i, "additional"), Label: "Additional Details & Special Requirements", Kind: "textarea", Required: false},
			},
		})
	}
	return groups
}
