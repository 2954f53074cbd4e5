// Package notify renders a validated contact-form submission into the
// message bodies used for dispatch: an HTML email body and a plain-text
// block for the fallback submission log. Rendering is deterministic given
// the submission and timestamp; user-provided values are HTML-escaped in
// the email body.
package notify
