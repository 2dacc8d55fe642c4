package repository

import (
	"context"

	"github.com/omysaju/saju-go/internal/domain"
)

// RecordStore is the persistence contract for application records. Two
// drivers implement it: a Redis key-value store holding the whole collection
// as one JSON array, and a Postgres table. The local store is the source of
// truth for the UI; the remote sheet is only ever mirrored best-effort.
//
// GetAll normalizes every record's companions on the way out and persists the
// healed form back (self-healing migration of pre-rename payer fields).
// Unparsable persisted data reads as an empty collection, never as an error.
type RecordStore interface {
	GetAll(ctx context.Context) ([]domain.Record, error)

	// ReplaceAll swaps the entire persisted collection, used after a
	// remote reconciliation.
	ReplaceAll(ctx context.Context, records []domain.Record) error

	// Save prepends the record to the collection.
	Save(ctx context.Context, record domain.Record) error

	// UpdateStatus rewrites one record's status. Returns ErrNotFound when
	// no record matches.
	UpdateStatus(ctx context.Context, id string, status domain.Status) error

	// Delete removes one record permanently (no tombstone). Returns
	// ErrNotFound when no record matches.
	Delete(ctx context.Context, id string) error
}
