package service

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respond(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func problem(w http.ResponseWriter, status int, msg string) {
	respond(w, status, errorResponse{Error: msg})
}

// backendProblem hides the underlying failure behind the generic
// retry-prompting message the UI shows for network errors.
func backendProblem(w http.ResponseWriter) {
	problem(w, http.StatusInternalServerError, "request failed, please retry")
}
