// Package httputil centralizes JSON response and error envelope handling so
// every handler speaks the same wire format.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	domainerrors "lexdiff/pkg/domainerrors"
)

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates an error into the JSON error envelope. Internal
// errors omit the description so implementation details never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeInternal
	message := ""

	var coded *domainerrors.Error
	if errors.As(err, &coded) {
		code = coded.Code
		message = coded.Message
	}

	body := map[string]string{"error": string(code)}
	if message != "" && code != domainerrors.CodeInternal {
		body["error_description"] = message
	}
	WriteJSON(w, domainerrors.ToHTTPStatus(code), body)
}

// Decode parses a JSON request body into T, rejecting unknown fields.
func Decode[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, domainerrors.Wrap(domainerrors.CodeBadRequest, "invalid request body", err)
	}
	return v, nil
}
