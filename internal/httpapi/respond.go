package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/alexanderramin/officeflow/internal/contract"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := contract.Classify(err)
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		h.api.Logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, status, contract.ErrorResponse{Error: err.Error(), Code: code})
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &contract.RequestError{Message: "request body is empty"}
		}
		return &contract.RequestError{Message: "invalid JSON body: " + err.Error()}
	}
	return nil
}

func badRequest(msg string) error {
	return &contract.RequestError{Message: msg}
}
