package common

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes data as the JSON response body
func RespondJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// StatusResponse is the body of the root, health and readiness endpoints
type StatusResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	DocsURL   string `json:"docs_url,omitempty"`
	Version   string `json:"version,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}
