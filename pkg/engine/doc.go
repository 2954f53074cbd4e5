// Package engine provides the formd HTTP server: the contact-form request
// pipeline, static file serving, CORS handling, and server lifecycle.
//
// One request is one traversal of the pipeline: decode the form body,
// validate required fields, dispatch (email or log fallback), respond with
// a JSON {success, message} envelope. Requests are independent; the only
// shared state is the immutable configuration and the dispatcher.
package engine
