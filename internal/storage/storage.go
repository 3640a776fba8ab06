// Package storage defines the Gateway interface, the contract every document
// backend must satisfy to persist validated records.
//
// WHY AN INTERFACE?
// ─────────────────
// The profile service should not know or care which database it talks to.
// By depending only on this interface:
//
//   - Switching backends = implement the interface for the new store and
//     change the driver name in config. Zero service changes.
//
//   - Writing tests = pass an in-memory fake that satisfies the interface.
//     No real database needed for unit tests.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-profiles-api/internal/types"
)

var (
	// ErrConflict is returned by Create when a unique field (the resume
	// email) is already taken. Callers render it as "already registered".
	ErrConflict = errors.New("storage: record already exists")

	// ErrNotFound is returned by FindOne when nothing matches.
	ErrNotFound = errors.New("storage: record not found")
)

// Gateway is the persistence contract.
type Gateway interface {
	// Create stores one normalized record of the given kind and returns the
	// identifier the store assigned to it. A uniqueness conflict is reported
	// as ErrConflict; any other failure is returned wrapped.
	Create(ctx context.Context, kind types.EntityKind, record any) (string, error)

	// FindOne decodes into out the first record of kind whose field (a
	// dotted path such as "basicInformation.email") equals value, and
	// returns its identifier. It returns ErrNotFound when nothing matches.
	FindOne(ctx context.Context, kind types.EntityKind, field string, value any, out any) (string, error)

	// Close releases the backend's connections.
	Close(ctx context.Context) error
}

// ResumeEmailField is the unique lookup key of resume details.
const ResumeEmailField = "basicInformation.email"
