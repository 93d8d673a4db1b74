package search

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the fields the UI relies on: a link target and
// non-negative counts.
func (r Result) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required),
		validation.Field(&r.TextMatches, validation.Min(0)),
		validation.Field(&r.TotalOccurrences, validation.Min(0)),
		validation.Field(&r.Keywords),
	)
}

// Validate checks a single keyword row.
func (k Keyword) Validate() error {
	return validation.ValidateStruct(&k,
		validation.Field(&k.Count, validation.Min(0)),
	)
}

func validateResults(results []Result) error {
	for i, r := range results {
		if err := r.Validate(); err != nil {
			return &AppError{Status: StatusSuccess, Message: fmt.Sprintf("malformed result %d: %v", i, err)}
		}
	}
	return nil
}

func (t taskResponse) validateSuccess() error {
	err := validation.ValidateStruct(&t,
		validation.Field(&t.RedirectURL, validation.Required),
	)
	if err != nil {
		return &AppError{Status: t.Status, Message: fmt.Sprintf("malformed task response: %v", err)}
	}
	return nil
}
