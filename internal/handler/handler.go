// Package handler serves the HTTP API.
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/naka-gawa/repo-detective/internal/api"
	"github.com/naka-gawa/repo-detective/internal/domain"
)

const maxBodyBytes = 1 << 20

// SendJSON sends a JSON response with the given status code.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// SendError sends an {"error": message} response.
func SendError(w http.ResponseWriter, message string, statusCode int) {
	SendJSON(w, statusCode, api.ErrorResponse{Error: message})
}

// MethodNotAllowed answers requests with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	SendError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// statusFor maps the domain error taxonomy to HTTP status codes. Only bad
// input is a client error; everything else the API reports as 500.
func statusFor(err error) int {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func logError(logger *log.Logger, r *http.Request, err error) {
	logger.Printf("%s %s failed: %v", r.Method, r.URL.Path, err)
}
