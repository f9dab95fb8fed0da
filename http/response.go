package http

import (
	"encoding/json"
	"net/http"

	"strokerisk/inference"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError answers 401 for authentication failures and 400 for everything
// else, with the error message as the body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch inference.KindOf(err) {
	case inference.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

func kindLabel(err error) string {
	if kind := inference.KindOf(err); kind != "" {
		return string(kind)
	}
	return "Other"
}
