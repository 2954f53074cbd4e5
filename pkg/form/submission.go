package form

import (
	"net/url"
	"strings"
	"time"
)

// Form field names.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldCompany     = "company"
	FieldProjectType = "project_type"
	FieldBudget      = "budget"
	FieldTimeline    = "timeline"
	FieldLocation    = "location"
	FieldDescription = "description"
)

// RequiredFields lists the required field names in canonical order.
// Missing-field error messages follow this order.
var RequiredFields = []string{
	FieldName,
	FieldEmail,
	FieldProjectType,
	FieldBudget,
	FieldDescription,
}

// OptionalFields lists the optional field names.
var OptionalFields = []string{
	FieldCompany,
	FieldTimeline,
	FieldLocation,
}

// Submission is one contact-form submission.
type Submission struct {
	// ID uniquely identifies the submission for diagnostics and log entries.
	ID string

	// Received is when the server accepted the submission (UTC).
	Received time.Time

	fields map[string]string
}

// FromValues builds a Submission from decoded form values. For repeated
// keys the first value wins. The input is not retained or mutated.
func FromValues(values url.Values) *Submission {
	fields := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			fields[key] = vals[0]
		}
	}
	return &Submission{fields: fields}
}

// Field returns the value for the given field name, or "" if absent.
func (s *Submission) Field(name string) string {
	return s.fields[name]
}

// FieldOr returns the value for the given field name, or fallback when the
// field is absent or blank.
func (s *Submission) FieldOr(name, fallback string) string {
	v := strings.TrimSpace(s.fields[name])
	if v == "" {
		return fallback
	}
	return s.fields[name]
}

// MissingFields returns the required fields that are absent or blank, in
// canonical order. An empty result means the submission is valid.
func (s *Submission) MissingFields() []string {
	var missing []string
	for _, name := range RequiredFields {
		if strings.TrimSpace(s.fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
