// Package profile implements the three operations the service exposes:
// submitting a registration, submitting resume details, and reading resume
// details back by email. It glues the validator to the storage gateway and
// keeps the error taxonomy intact on the way out:
//
//   - validation.Violations   bad input, reported field by field
//   - storage.ErrConflict     the resume email is already registered
//   - storage.ErrNotFound     no resume for that email
//   - anything else           a storage or internal failure
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aanand-mishra/student-profiles-api/internal/storage"
	"github.com/aanand-mishra/student-profiles-api/internal/types"
	"github.com/aanand-mishra/student-profiles-api/internal/validation"
)

// Outcome labels used in logs and metrics.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// ErrEmailRequired is returned by GetResumeDetailsByEmail for a blank email.
var ErrEmailRequired = errors.New("email is required")

// Service is safe for concurrent use: the validator is immutable and the
// gateway handles its own concurrency.
type Service struct {
	validator *validation.Validator
	store     storage.Gateway
	log       *slog.Logger
}

func New(v *validation.Validator, store storage.Gateway, log *slog.Logger) *Service {
	return &Service{validator: v, store: store, log: log}
}

// Validator returns the validator the service checks payloads with.
func (s *Service) Validator() *validation.Validator {
	return s.validator
}

// SubmitRegistration validates raw and stores the registration profile.
func (s *Service) SubmitRegistration(ctx context.Context, raw map[string]any) (err error) {
	entity := string(types.KindRegistration)
	defer func() { s.record(entity, err) }()

	rec, err := s.validator.Registration(raw)
	if err != nil {
		return err
	}

	id, err := s.create(ctx, types.KindRegistration, rec)
	if err != nil {
		return err
	}

	s.log.Info("registration stored", slog.String("id", id), slog.String("course", rec.Course))
	return nil
}

// SubmitResumeDetails validates raw, stores the resume and returns the
// stored record with its assigned ID.
func (s *Service) SubmitResumeDetails(ctx context.Context, raw map[string]any) (rec types.ResumeDetails, err error) {
	entity := string(types.KindResumeDetails)
	defer func() { s.record(entity, err) }()

	rec, err = s.validator.ResumeDetails(raw)
	if err != nil {
		return types.ResumeDetails{}, err
	}

	id, err := s.create(ctx, types.KindResumeDetails, rec)
	if err != nil {
		return types.ResumeDetails{}, err
	}

	rec.ID = id
	s.log.Info("resume details stored", slog.String("id", id))
	return rec, nil
}

// GetResumeDetailsByEmail returns the resume whose basicInformation.email
// equals email.
func (s *Service) GetResumeDetailsByEmail(ctx context.Context, email string) (types.ResumeDetails, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return types.ResumeDetails{}, ErrEmailRequired
	}

	timer := prometheus.NewTimer(storageDuration.WithLabelValues(string(types.KindResumeDetails), "find"))
	var rec types.ResumeDetails
	id, err := s.store.FindOne(ctx, types.KindResumeDetails, storage.ResumeEmailField, email, &rec)
	timer.ObserveDuration()

	lookups.WithLabelValues(Outcome(err)).Inc()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.ResumeDetails{}, err
		}
		return types.ResumeDetails{}, fmt.Errorf("profile.GetResumeDetailsByEmail: %w", err)
	}

	rec.ID = id
	return rec, nil
}

func (s *Service) create(ctx context.Context, kind types.EntityKind, rec any) (string, error) {
	timer := prometheus.NewTimer(storageDuration.WithLabelValues(string(kind), "create"))
	defer timer.ObserveDuration()

	id, err := s.store.Create(ctx, kind, rec)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return "", err
		}
		return "", fmt.Errorf("profile.create %s: %w", kind, err)
	}
	return id, nil
}

func (s *Service) record(entity string, err error) {
	outcome := Outcome(err)
	submissions.WithLabelValues(entity, outcome).Inc()

	var vs validation.Violations
	if errors.As(err, &vs) {
		for _, v := range vs {
			violations.WithLabelValues(entity, string(v.Kind)).Inc()
		}
		s.log.Debug("submission rejected",
			slog.String("entity", entity),
			slog.Int("violations", len(vs)))
		return
	}

	if outcome == OutcomeError {
		s.log.Error("submission failed",
			slog.String("entity", entity),
			slog.String("error", err.Error()))
	}
}

// Outcome classifies an error returned by the service.
func Outcome(err error) string {
	var vs validation.Violations
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &vs):
		return OutcomeInvalid
	case errors.Is(err, storage.ErrConflict):
		return OutcomeConflict
	case errors.Is(err, storage.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}
