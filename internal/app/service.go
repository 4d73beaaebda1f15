package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"erp-dashboard/internal/core"

	"github.com/invopop/jsonschema"
)

var (
	// ErrUnknownCollection is returned for a collection name that is not served.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrSessionNotFound is returned for a missing, expired or logged-out session.
	ErrSessionNotFound = errors.New("session not found")
)

// ApplicationService is the single interface all adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// Collections describes every record collection in navigation order.
	Collections() []CollectionInfo

	// Collection returns the service for one collection by storage name.
	Collection(name string) (CollectionService, error)

	// Authenticate checks credentials and opens a session.
	Authenticate(ctx context.Context, req LoginRequest) (*Session, error)

	// Logout ends a session. Ending an unknown session is not an error.
	Logout(ctx context.Context, sessionID string) error

	// Session returns a live session, or ErrSessionNotFound.
	Session(ctx context.Context, sessionID string) (*Session, error)

	// GetProfile returns the settings of a user, creating defaults on first use.
	GetProfile(ctx context.Context, email string) (*core.Profile, error)

	// SaveProfile validates and stores the settings of a user.
	SaveProfile(ctx context.Context, req SaveProfileRequest) (*core.Profile, error)

	// FinanceData returns the finance dashboard document as stored on disk.
	FinanceData(ctx context.Context) (json.RawMessage, error)

	// Summary aggregates every collection into the dashboard key figures.
	Summary(ctx context.Context) (*core.Summary, error)

	// Navigation returns the sidebar modules and their tabs.
	Navigation() []core.Module

	// Export writes one collection as an XLSX workbook.
	Export(ctx context.Context, req ExportRequest, w io.Writer) error

	// ResetAll restores every collection to its seed.
	ResetAll(ctx context.Context) ([]ResetResult, error)
}

// CollectionService manages the records of one collection. Records cross
// this boundary as their concrete core type boxed in any.
type CollectionService interface {
	Info() CollectionInfo

	// List returns the records matching f in insertion order.
	List(ctx context.Context, f core.Filter) (*ListResult, error)

	// Get returns one record or core.ErrRecordNotFound.
	Get(ctx context.Context, id int) (any, error)

	// Fields renders a stored record as form fields, for pre-filling an edit.
	Fields(ctx context.Context, id int) (core.Fields, error)

	// Validate reports the field errors of a submission without storing it.
	// editingID is 0 for a new record.
	Validate(ctx context.Context, fields core.Fields, editingID int) (core.FieldErrors, error)

	// Create validates fields and appends the new record.
	Create(ctx context.Context, fields core.Fields) (*MutationResult, error)

	// Update replaces record id with fields, keeping the id.
	Update(ctx context.Context, id int, fields core.Fields) (*MutationResult, error)

	// Delete removes record id.
	Delete(ctx context.Context, id int) (*MutationResult, error)

	// Reset restores the seed.
	Reset(ctx context.Context) (*ResetResult, error)

	// Table renders the matching records as display rows.
	Table(ctx context.Context, f core.Filter) (*TableResult, error)

	// Schema describes the form as a JSON Schema document.
	Schema() *jsonschema.Schema
}
