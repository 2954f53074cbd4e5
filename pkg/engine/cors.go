// CORS middleware for the form server.

package engine

import "net/http"

// CORS header values fixed by the form endpoint's contract: the form is
// posted cross-origin from the static site, so every response carries a
// permissive policy and OPTIONS preflights short-circuit with 200.
const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// CORSMiddleware wraps an http.Handler with wildcard CORS handling.
type CORSMiddleware struct {
	handler http.Handler
}

// NewCORSMiddleware creates a new CORS middleware around handler.
func NewCORSMiddleware(handler http.Handler) *CORSMiddleware {
	return &CORSMiddleware{handler: handler}
}

// ServeHTTP implements the http.Handler interface. Preflight requests on
// any path get a 200 with headers only and an empty body.
func (m *CORSMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", corsAllowOrigin)
	w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
	w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	m.handler.ServeHTTP(w, r)
}
