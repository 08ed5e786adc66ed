// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"encoding/json"
	"net/http"
)

// CodeResponse is the error shape of the pokedata endpoint.
type CodeResponse struct {
	Code string `json:"code"`
}

// RouteNotFoundResponse is returned for unmatched routes.
type RouteNotFoundResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Error codes.
const (
	CodeRankingNotFound   = "ranking-data-not-found"
	CodeReferenceNotFound = "reference-data-unavailable"
	CodeRateLimited       = "rate-limited"
)

// WriteJSONObject marshals a Go value to JSON and writes it.
func WriteJSONObject(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteCode sends {"code": code} with status.
func WriteCode(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	WriteJSONObject(w, status, CodeResponse{Code: code})
}

// WriteRouteNotFound sends the 404 body for unmatched routes.
func WriteRouteNotFound(w http.ResponseWriter) {
	WriteJSONObject(w, http.StatusNotFound, RouteNotFoundResponse{
		Success: false,
		Error:   "Route not found",
	})
}
