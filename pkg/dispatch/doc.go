// Package dispatch delivers validated contact-form submissions.
//
// Two Dispatcher variants exist: Mailer relays a submission by email over
// SMTP (STARTTLS then AUTH), and FileLogger appends it to a local
// plain-text log. The variant is chosen exactly once at startup, based on
// whether mail credentials are configured, and shared across all requests.
//
// Both variants convert every transport, authentication, and I/O problem
// into an error value; a dispatch failure must never take down the server.
package dispatch
