package forms

import "jerseyorders/internal/models"

// Summary counts submitted details by jersey type, size category and sleeve
// type. It backs both the live counters while the form is filled and the
// read-only recap once details are submitted.
type Summary struct {
	Types          map[string]int `json:"types"`
	SizeCategories map[string]int `json:"sizeCategories"`
	Sleeves        map[string]int `json:"sleeves"`
}

// Summarize recomputes the projection from any detail list. It is
// idempotent: the same input always yields the same counters.
func Summarize(details []models.JerseyDetail) Summary {
	s := Summary{
		Types:          make(map[string]int),
		SizeCategories: make(map[string]int),
		Sleeves:        make(map[string]int),
	}
	for _, d := range details {
		if d.Type != "" {
			s.Types[d.Type]++
		}
		if d.SizeCategory != "" {
			s.SizeCategories[d.SizeCategory]++
		}
		if d.Sleeve != "" {
			s.Sleeves[d.Sleeve]++
		}
	}
	return s
}
