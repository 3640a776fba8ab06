// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aanand-mishra/student-profiles-api/internal/validation"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a message, a record…).
// Error responses always look like:
//
//	{ "status": "error", "error": "Branch is required." }
//
// Validation failures additionally carry every violation, in field order:
//
//	{
//	  "status": "error",
//	  "error":  "branch: Mechanical is not a valid branch for the selected course.",
//	  "errors": [ { "field": "branch", "kind": "invalidForCourse", "message": "..." } ]
//	}
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string                 `json:"status"`
	Error  string                 `json:"error"`
	Errors []validation.Violation `json:"errors,omitempty"`
}

// Message is the envelope for plain success and not-found replies.
type Message struct {
	Message string `json:"message"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for unexpected errors (DB failures, decode errors, etc.)
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts the ordered violations into a Response. The
// joined Error string is kept for clients that only show one line; Errors
// lets a form mark every failing field in one pass.
func ValidationError(vs validation.Violations) Response {
	msgs := make([]string, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, v.Field+": "+v.Message)
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
		Errors: vs,
	}
}
