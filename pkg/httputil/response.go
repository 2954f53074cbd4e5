// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Result is the response envelope for every form endpoint reply.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteResult writes a Result envelope with the given status code.
func WriteResult(w http.ResponseWriter, status int, success bool, message string) {
	WriteJSON(w, status, Result{Success: success, Message: message})
}

// WriteSuccess writes a 200 OK success Result.
func WriteSuccess(w http.ResponseWriter, message string) {
	WriteResult(w, http.StatusOK, true, message)
}

// WriteFailure writes a failure Result with the given status code.
func WriteFailure(w http.ResponseWriter, status int, message string) {
	WriteResult(w, status, false, message)
}

// WriteNotFound writes a 404 Not Found failure Result.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteFailure(w, http.StatusNotFound, message)
}
