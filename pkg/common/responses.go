package common

import (
	"encoding/json"
	"net/http"
)

// APIResponse represents the standard success envelope:
// {success, data, action?, pagination?}
type APIResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Action     string      `json:"action,omitempty"`
	Pagination *PageInfo   `json:"pagination,omitempty"`
	Error      string      `json:"error,omitempty"`
	Details    []string    `json:"details,omitempty"`
}

// RespondJSON sends a success response carrying data
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// RespondList sends a listing response. Pagination metadata is only
// attached when the caller asked for a paginated listing.
func RespondList(w http.ResponseWriter, status int, data interface{}, pagination *PageInfo) {
	write(w, status, APIResponse{
		Success:    status >= 200 && status < 300,
		Data:       data,
		Pagination: pagination,
	})
}

// RespondAction sends a response carrying data and the action that was
// applied, so callers can update dependent state without a re-fetch.
func RespondAction(w http.ResponseWriter, status int, data interface{}, action string) {
	write(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
		Action:  action,
	})
}

// RespondError sends a structured failure response
func RespondError(w http.ResponseWriter, status int, message string) {
	write(w, status, APIResponse{
		Success: false,
		Error:   message,
	})
}

// RespondErrorWithDetails sends a failure response enumerating every
// violation found
func RespondErrorWithDetails(w http.ResponseWriter, status int, message string, details []string) {
	write(w, status, APIResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

func write(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

// ParseJSONBody parses a JSON request body with a size limit
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}
