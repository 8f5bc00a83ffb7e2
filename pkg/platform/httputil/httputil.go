// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "checkin/pkg/domain-errors"
)

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a coded error into an HTTP response. Internal errors
// never leak their message to the caller; every other code returns its
// human-readable message in the "error" field.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Erro interno. Tente novamente mais tarde."

	var de *dErrors.Error
	if errors.As(err, &de) {
		status = dErrors.ToHTTPStatus(de.Code)
		if de.Code != dErrors.CodeInternal {
			message = de.Message
		}
	}

	WriteJSON(w, status, map[string]string{"error": message})
}
