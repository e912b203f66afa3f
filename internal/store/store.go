// Package store provides the SQLite-backed inbox of raw memory records
// awaiting export.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/craigeley/obsidian-ios-memories-companion/internal/model"
)

// StagedRecord is one inbox row: the raw record JSON plus bookkeeping.
type StagedRecord struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	StartsAt   time.Time  `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	Payload    string     `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	ExportedAt *time.Time `json:"exported_at,omitempty"`
}

// Record decodes the staged payload back into a model.Record.
func (s StagedRecord) Record() (model.Record, error) {
	var rec model.Record
	if err := json.Unmarshal([]byte(s.Payload), &rec); err != nil {
		return model.Record{}, fmt.Errorf("decode record %s: %w", s.ID, err)
	}
	return rec, nil
}

// ListParams filters inbox listings.
type ListParams struct {
	// All includes records that were already exported.
	All bool
	// Limit caps the result count; 0 means no cap.
	Limit int
}

// Store is the record inbox interface.
type Store interface {
	// Add stages a record for export. Returns the staged row.
	Add(ctx context.Context, rec model.Record) (*StagedRecord, error)

	// Get retrieves a staged record by ID.
	Get(ctx context.Context, id string) (*StagedRecord, error)

	// List lists staged records, pending-only by default, oldest start first.
	List(ctx context.Context, p ListParams) ([]StagedRecord, error)

	// Rm removes a staged record.
	Rm(ctx context.Context, id string) error

	// MarkExported stamps the given records as exported.
	MarkExported(ctx context.Context, ids []string) error

	// Close closes the store.
	Close() error
}
