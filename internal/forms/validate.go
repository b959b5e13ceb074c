package forms

import (
	"fmt"
	"strconv"
	"strings"

	"jerseyorders/internal/models"
)

// ValidationError reports the first jersey index with missing or invalid
// fields. Validation is fail-fast: later indices are not inspected.
type ValidationError struct {
	Index   int
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("jersey %d: missing or invalid fields: %s",
		e.Index+1, strings.Join(e.Missing, ", "))
}

// ValidateSubmission aggregates raw form fields into exactly quantity
// JerseyDetail records. Every field except additional details is required;
// the jersey number must be an integer between 1 and 99.
func ValidateSubmission(fields map[string]string, quantity int) ([]models.JerseyDetail, *ValidationError) {
	details := make([]models.JerseyDetail, 0, quantity)

	for i := 0; i < quantity; i++ {
		get := func(suffix string) string {
			return strings.TrimSpace(fields[FieldName(i, suffix)])
		}

		detail := models.JerseyDetail{
			Type:              get("type"),
			Name:              get("name"),
			SizeCategory:      get("size_category"),
			Size:              get("size"),
			Sleeve:            get("sleeve"),
			Shorts:            get("shorts"),
			AdditionalDetails: get("additional"),
		}

		var missing []string
		if detail.Type == "" {
			missing = append(missing, "type")
		}
		if detail.Name == "" {
			missing = append(missing, "name")
		}

		rawNumber := get("number")
		number, err := strconv.Atoi(rawNumber)
		if rawNumber == "" || err != nil || number < MinJerseyNumber || number > MaxJerseyNumber {
			missing = append(missing, "number")
		} else {
			detail.Number = number
		}

		if detail.SizeCategory == "" {
			missing = append(missing, "sizeCategory")
		}
		if detail.Size == "" {
			missing = append(missing, "size")
		}
		if detail.Sleeve == "" {
			missing = append(missing, "sleeve")
		}
		if detail.Shorts == "" {
			missing = append(missing, "shorts")
		}

		if len(missing) > 0 {
			return nil, &ValidationError{Index: i, Missing: missing}
		}
		details = append(details, detail)
	}

	return details, nil
}
