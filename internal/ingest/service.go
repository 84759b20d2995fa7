// Package ingest orchestrates the document pipeline: extract tables from an
// uploaded file, resolve labels to canonical fields, build the statement set
// for the period and persist it.
package ingest

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/coopstack/ratio-engine/internal/common"
	"github.com/coopstack/ratio-engine/internal/entity"
	"github.com/coopstack/ratio-engine/internal/extract"
	"github.com/coopstack/ratio-engine/internal/period"
	"github.com/coopstack/ratio-engine/internal/ratios"
	"github.com/coopstack/ratio-engine/internal/resolver"
	"github.com/coopstack/ratio-engine/internal/statement"
	"github.com/coopstack/ratio-engine/internal/store"
)

// Service wires the extraction pipeline to the store.
type Service struct {
	store  store.Store
	logger *zap.Logger
}

func NewService(st store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger}
}

// IngestFile runs the full pipeline for one uploaded document and persists
// the resulting statement set, replacing any prior ingestion of the same
// period. The period label is parsed from the filename stem; a stem that
// matches no supported period format is used verbatim.
func (s *Service) IngestFile(ctx context.Context, orgID uuid.UUID, filename string, data []byte) (*entity.StatementSet, error) {
	label := periodLabelFromFilename(filename)

	extractor, err := extract.ForFile(filename, data)
	if err != nil {
		return nil, common.NewAppError("INGEST_FORMAT", "unsupported document format", err)
	}
	raw, err := extractor.Extract()
	if err != nil {
		return nil, common.NewAppError("INGEST_EXTRACT", "statement extraction failed", err)
	}

	mappings, err := s.store.ListMappings(ctx, orgID)
	if err != nil {
		return nil, err
	}

	builder := statement.NewBuilder(resolver.New(mappings), orgID, s.logger)
	set := builder.BuildSet(label, raw)
	set.IngestedAt = time.Now().UTC()

	if err := s.store.SaveStatementSet(ctx, set); err != nil {
		return nil, err
	}
	s.logger.Info("document ingested",
		zap.String("organization_id", orgID.String()),
		zap.String("file", filepath.Base(filename)),
		zap.String("period", label))
	return set, nil
}

// ComputeRatios loads the period's statement set and the organization's
// benchmark overrides, computes the full bundle and persists it.
func (s *Service) ComputeRatios(ctx context.Context, orgID uuid.UUID, periodLabel string) (*entity.RatioBundle, error) {
	set, err := s.store.GetStatementSet(ctx, orgID, periodLabel)
	if err != nil {
		return nil, err
	}
	overrides, err := s.store.GetOverrides(ctx, orgID)
	if err != nil {
		return nil, err
	}

	bundle, err := ratios.Compute(set, ratios.DefaultBenchmarks().Merge(overrides))
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveRatioBundle(ctx, orgID, bundle); err != nil {
		return nil, err
	}
	s.logger.Info("ratios computed",
		zap.String("organization_id", orgID.String()),
		zap.String("period", periodLabel),
		zap.Int("ratios", len(bundle.Statuses)))
	return bundle, nil
}

// SaveMapping validates and persists one field-mapping rule for the
// organization's scope (uuid.Nil for the global scope).
func (s *Service) SaveMapping(ctx context.Context, m entity.FieldMapping) error {
	v := common.NewValidator()
	v.Field("canonical_field", m.CanonicalField, common.Required, common.MaxLength(64))
	v.Field("display_name", m.DisplayName, common.Required, common.MaxLength(128))
	v.Field("statement_type", string(m.StatementType), common.OneOf(statementTypeNames()...))
	for _, alias := range m.Aliases {
		v.Field("alias", alias, common.Required, common.MaxLength(128))
	}
	if err := v.Error(); err != nil {
		return err
	}
	return s.store.SaveMapping(ctx, m)
}

func statementTypeNames() []string {
	names := make([]string, len(entity.RequiredStatements))
	for i, st := range entity.RequiredStatements {
		names[i] = string(st)
	}
	return names
}

// SaveOverrides validates and persists a benchmark override document.
func (s *Service) SaveOverrides(ctx context.Context, orgID uuid.UUID, doc []byte) (map[string]*float64, error) {
	overrides, err := ratios.ParseOverrides(doc)
	if err != nil {
		return nil, common.NewAppError("BENCHMARK_INVALID", "benchmark overrides rejected", err)
	}
	if err := s.store.SaveOverrides(ctx, orgID, overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func periodLabelFromFilename(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if p, ok := period.Parse(stem); ok {
		return p.Label
	}
	return stem
}
