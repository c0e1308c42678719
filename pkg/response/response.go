// Package response centralizes JSON response writing.
package response

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON writes the payload as-is with the given status.
func JSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func OK(w http.ResponseWriter, payload interface{}) {
	JSON(w, http.StatusOK, payload)
}

func Error(w http.ResponseWriter, statusCode int, msg string) {
	JSON(w, statusCode, errorBody{Error: msg})
}

// ErrorDetails attaches provider-supplied or lower-level detail to an error.
func ErrorDetails(w http.ResponseWriter, statusCode int, msg, details string) {
	JSON(w, statusCode, errorBody{Error: msg, Details: details})
}

func BadRequest(w http.ResponseWriter, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

func Unauthorized(w http.ResponseWriter, msg string) {
	Error(w, http.StatusUnauthorized, msg)
}

func NotFound(w http.ResponseWriter, msg string) {
	Error(w, http.StatusNotFound, msg)
}

func InternalError(w http.ResponseWriter, msg string) {
	Error(w, http.StatusInternalServerError, msg)
}
