package errors

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Output formats understood by the CLI and API.
var Formats = []string{"text", "json", "dot", "svg"}

// Orderings understood by the CLI and API.
var Orderings = []string{"rotation", "shuffle"}

// ValidateJobID checks that id is a UUID as issued for routing jobs.
func ValidateJobID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "job id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "job id %q is not a UUID", id)
	}
	return nil
}

// ValidateFormats checks a comma-separated list of output formats and returns
// the individual names.
func ValidateFormats(list string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(strings.ToLower(f))
		if f == "" {
			continue
		}
		if !slices.Contains(Formats, f) {
			return nil, New(ErrCodeInvalidFormat, "unknown format %q (valid: %s)", f, strings.Join(Formats, ", "))
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return nil, New(ErrCodeInvalidFormat, "no output format given")
	}
	return formats, nil
}

// ValidateOrdering checks an ordering strategy name.
func ValidateOrdering(name string) error {
	if !slices.Contains(Orderings, name) {
		return New(ErrCodeInvalidInput, "unknown ordering %q (valid: %s)", name, strings.Join(Orderings, ", "))
	}
	return nil
}

// ValidateAttempts rejects negative attempt budgets. Zero selects one attempt
// per net.
func ValidateAttempts(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "attempts must not be negative, got %d", n)
	}
	return nil
}
