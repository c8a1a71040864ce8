// Package httpapi is the HTTP transport over pkg/engine: a chi.Router
// exposing one endpoint per operation, JWT auth, CORS, and a uniform
// response envelope.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/tradecircle/backend/pkg/engine"
)

// envelope is the uniform response body every endpoint writes.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// writeError maps an engine.Error's Kind to an HTTP status; anything
// else (a wiring bug, a store failure) becomes a 500.
func writeError(w http.ResponseWriter, err error) {
	engErr, ok := err.(*engine.Error)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, envelope{
			Success: false,
			Error:   &apiError{Code: "internal_error", Message: "internal server error"},
		})
		return
	}

	status := http.StatusInternalServerError
	switch engErr.Kind {
	case engine.KindValidation:
		status = http.StatusBadRequest
	case engine.KindNotFound:
		status = http.StatusNotFound
	case engine.KindConflict:
		status = http.StatusConflict
	case engine.KindPermission:
		status = http.StatusForbidden
	case engine.KindState:
		status = http.StatusConflict
	}
	writeJSON(w, status, envelope{
		Success: false,
		Error:   &apiError{Code: string(engErr.Kind), Message: engErr.Message},
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
