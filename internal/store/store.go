// Package store persists field mappings, benchmark overrides, canonical
// statement sets and computed ratio bundles. Two backends exist: an embedded
// sqlite store for the standalone CLI, and a postgres store for shared
// deployments. Both serialize statements and bundles as JSON documents keyed
// by (organization, period); writes are upserts, so re-ingesting a period
// replaces its data.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/coopstack/ratio-engine/internal/entity"
)

// Store is the persistence surface shared by both backends.
type Store interface {
	// ListMappings returns the organization's mappings followed by the
	// global ones, preserving insertion order within each scope.
	ListMappings(ctx context.Context, orgID uuid.UUID) ([]entity.FieldMapping, error)
	// SaveMapping upserts a mapping keyed by (organization, statement
	// type, canonical field).
	SaveMapping(ctx context.Context, m entity.FieldMapping) error
	DeleteMapping(ctx context.Context, orgID uuid.UUID, st entity.StatementType, canonicalField string) error

	// GetOverrides returns the organization's benchmark overrides, or an
	// empty map when none were saved.
	GetOverrides(ctx context.Context, orgID uuid.UUID) (map[string]*float64, error)
	SaveOverrides(ctx context.Context, orgID uuid.UUID, overrides map[string]*float64) error

	SaveStatementSet(ctx context.Context, set *entity.StatementSet) error
	GetStatementSet(ctx context.Context, orgID uuid.UUID, periodLabel string) (*entity.StatementSet, error)

	SaveRatioBundle(ctx context.Context, orgID uuid.UUID, bundle *entity.RatioBundle) error
	GetRatioBundle(ctx context.Context, orgID uuid.UUID, periodLabel string) (*entity.RatioBundle, error)
	// ListPeriods returns every period label with a stored statement set,
	// most recently ingested first.
	ListPeriods(ctx context.Context, orgID uuid.UUID) ([]string, error)

	Close() error
}
