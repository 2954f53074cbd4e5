// Package form defines the contact-form submission model and its validation.
//
// A Submission is decoded from an application/x-www-form-urlencoded request
// body. Five fields are required (name, email, project_type, budget,
// description); three are optional (company, timeline, location). Validation
// treats an absent key and a whitespace-only value identically as missing,
// and reports missing fields in a fixed canonical order so error messages
// are deterministic.
package form
