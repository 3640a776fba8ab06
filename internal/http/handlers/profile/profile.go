// Package profile contains the HTTP handlers for student registration and
// resume details.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN
// ────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature
//
//	func(http.ResponseWriter, *http.Request)
//
// which has no room for dependencies. Each exported function below is a
// factory: it is called ONCE at startup with the service, and returns the
// handler that runs on EVERY request.
//
//	router.HandleFunc("POST /api/v1/user/register", profile.Register(svc))
package profile

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	svc "github.com/aanand-mishra/student-profiles-api/internal/profile"
	"github.com/aanand-mishra/student-profiles-api/internal/refdata"
	"github.com/aanand-mishra/student-profiles-api/internal/storage"
	"github.com/aanand-mishra/student-profiles-api/internal/utils/response"
	"github.com/aanand-mishra/student-profiles-api/internal/validation"
)

// maxBodyBytes caps request bodies; a resume with every section filled is
// well below this.
const maxBodyBytes = 1 << 20

// ─────────────────────────────────────────────────────────────────────────────
// Register handles POST /api/v1/user/register
//
// Success response (200 OK):
//
//	{ "message": "Registration successful" }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Register(service *svc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("registering a student")

		raw, ok := decode(w, r)
		if !ok {
			return
		}

		if err := service.SubmitRegistration(r.Context(), raw); err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Message{Message: "Registration successful"})
	}
}

// resumeCreated is the success body of SubmitResumeDetails.
type resumeCreated struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	User    any    `json:"user"`
}

// ─────────────────────────────────────────────────────────────────────────────
// SubmitResumeDetails handles POST /api/v1/user/resume-details
//
// Success response (201 Created):
//
//	{ "message": "User resume details added successfully", "id": "...", "user": { ... } }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or failed validation
//	409 Conflict     — a resume with this email already exists
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func SubmitResumeDetails(service *svc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("adding resume details")

		raw, ok := decode(w, r)
		if !ok {
			return
		}

		rec, err := service.SubmitResumeDetails(r.Context(), raw)
		if err != nil {
			writeError(w, err)
			return
		}

		slog.Info("resume details added", slog.String("id", rec.ID))
		response.WriteJSON(w, http.StatusCreated, resumeCreated{
			Message: "User resume details added successfully",
			ID:      rec.ID,
			User:    rec,
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetResumeDetails handles GET /api/v1/user/resume-details?email=...
//
//	200 OK           — the stored record
//	400 Bad Request  — email query parameter missing
//	404 Not Found    — no resume for that email
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetResumeDetails(service *svc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		// The email is personal data; it stays out of the logs.
		slog.Info("getting resume details")

		rec, err := service.GetResumeDetailsByEmail(r.Context(), email)
		if err != nil {
			writeError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, rec)
	}
}

// Courses handles GET /api/v1/courses and serves the reference table so a
// client can fill its course and branch selectors.
func Courses(table *refdata.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, table.Entries())
	}
}

// decode reads the JSON object body. Numbers are kept as json.Number so
// integer fields are judged on the exact digits the client sent.
func decode(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()

	var raw map[string]any
	err := dec.Decode(&raw)

	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return nil, false
	}

	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return nil, false
	}

	if raw == nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body must be a JSON object")))
		return nil, false
	}

	return raw, true
}

// writeError maps the service's error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var vs validation.Violations

	switch {
	case errors.As(err, &vs):
		response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(vs))

	case errors.Is(err, storage.ErrConflict):
		response.WriteJSON(w, http.StatusConflict,
			response.GeneralError(errors.New("resume details for this email are already registered")))

	case errors.Is(err, storage.ErrNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.Message{Message: "Resume details not found"})

	case errors.Is(err, svc.ErrEmailRequired):
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))

	default:
		slog.Error("request failed", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError,
			response.GeneralError(errors.New("some error occurred")))
	}
}
