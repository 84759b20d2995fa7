package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coopstack/ratio-engine/internal/common"
	"github.com/coopstack/ratio-engine/internal/entity"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS field_mappings (
	organization_id UUID NOT NULL,
	statement_type  TEXT NOT NULL,
	canonical_field TEXT NOT NULL,
	display_name    TEXT NOT NULL,
	aliases         JSONB NOT NULL DEFAULT '[]',
	is_required     BOOLEAN NOT NULL DEFAULT FALSE,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (organization_id, statement_type, canonical_field)
);
CREATE TABLE IF NOT EXISTS benchmark_overrides (
	organization_id UUID PRIMARY KEY,
	overrides       JSONB NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS statement_sets (
	organization_id UUID NOT NULL,
	period_label    TEXT NOT NULL,
	payload         JSONB NOT NULL,
	ingested_at     TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (organization_id, period_label)
);
CREATE TABLE IF NOT EXISTS ratio_bundles (
	organization_id UUID NOT NULL,
	period_label    TEXT NOT NULL,
	payload         JSONB NOT NULL,
	calculated_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (organization_id, period_label)
);
`

// PostgresStore is the shared-deployment backend, backed by a pgx pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPostgres creates the pgx pool from config and applies the schema.
func OpenPostgres(ctx context.Context, cfg common.DatabaseConfig, logger *slog.Logger) (*PostgresStore, error) {
	logger.Info("connecting to database")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, common.NewAppError("STORE_OPEN", "invalid postgres DSN", err)
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "ratio-engine"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = cfg.StatementTimeout.String()
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, common.NewAppError("STORE_OPEN", "failed to connect to postgres", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, common.NewAppError("STORE_MIGRATE", "failed to apply postgres schema", err)
	}

	logger.Info("successfully connected to database")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (s *PostgresStore) Close() error {
	s.logger.Info("closing database connections")
	s.pool.Close()
	return nil
}

// HealthCheck pings the pool, catching DSN and reachability issues early.
func (s *PostgresStore) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) ListMappings(ctx context.Context, orgID uuid.UUID) ([]entity.FieldMapping, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT organization_id, statement_type, canonical_field, display_name, aliases, is_required
		FROM field_mappings
		WHERE organization_id = ANY($1)
		ORDER BY CASE organization_id WHEN $2 THEN 0 ELSE 1 END, created_at`,
		[]uuid.UUID{orgID, uuid.Nil}, orgID)
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", "failed to list field mappings", err)
	}
	defer rows.Close()

	var mappings []entity.FieldMapping
	for rows.Next() {
		var m entity.FieldMapping
		var st string
		var aliases []byte
		if err := rows.Scan(&m.OrganizationID, &st, &m.CanonicalField, &m.DisplayName, &aliases, &m.IsRequired); err != nil {
			return nil, common.NewAppError("STORE_SCAN", "failed to scan field mapping", err)
		}
		m.StatementType = entity.StatementType(st)
		if err := json.Unmarshal(aliases, &m.Aliases); err != nil {
			return nil, common.NewAppError("STORE_SCAN", "corrupt aliases in field mapping", err)
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

func (s *PostgresStore) SaveMapping(ctx context.Context, m entity.FieldMapping) error {
	aliases, err := json.Marshal(m.Aliases)
	if err != nil {
		return common.NewAppError("STORE_ENCODE", "failed to encode aliases", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO field_mappings (organization_id, statement_type, canonical_field, display_name, aliases, is_required)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (organization_id, statement_type, canonical_field)
		DO UPDATE SET display_name = excluded.display_name,
		              aliases = excluded.aliases,
		              is_required = excluded.is_required`,
		m.OrganizationID, string(m.StatementType), m.CanonicalField,
		m.DisplayName, aliases, m.IsRequired)
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to save field mapping", err)
	}
	return nil
}

func (s *PostgresStore) DeleteMapping(ctx context.Context, orgID uuid.UUID, st entity.StatementType, canonicalField string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM field_mappings
		WHERE organization_id = $1 AND statement_type = $2 AND canonical_field = $3`,
		orgID, string(st), canonicalField)
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to delete field mapping", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NewAppError("STORE_NOT_FOUND",
			fmt.Sprintf("no mapping for %s/%s", st, canonicalField), common.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) GetOverrides(ctx context.Context, orgID uuid.UUID) (map[string]*float64, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT overrides FROM benchmark_overrides WHERE organization_id = $1`,
		orgID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return map[string]*float64{}, nil
	}
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", "failed to load benchmark overrides", err)
	}
	var overrides map[string]*float64
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, common.NewAppError("STORE_SCAN", "corrupt benchmark overrides", err)
	}
	return overrides, nil
}

func (s *PostgresStore) SaveOverrides(ctx context.Context, orgID uuid.UUID, overrides map[string]*float64) error {
	raw, err := json.Marshal(overrides)
	if err != nil {
		return common.NewAppError("STORE_ENCODE", "failed to encode benchmark overrides", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO benchmark_overrides (organization_id, overrides, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id)
		DO UPDATE SET overrides = excluded.overrides, updated_at = excluded.updated_at`,
		orgID, raw, time.Now().UTC())
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to save benchmark overrides", err)
	}
	return nil
}

func (s *PostgresStore) SaveStatementSet(ctx context.Context, set *entity.StatementSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return common.NewAppError("STORE_ENCODE", "failed to encode statement set", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO statement_sets (organization_id, period_label, payload, ingested_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (organization_id, period_label)
		DO UPDATE SET payload = excluded.payload, ingested_at = excluded.ingested_at`,
		set.OrganizationID, set.PeriodLabel, payload, set.IngestedAt.UTC())
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to save statement set", err)
	}
	s.logger.Info("statement set saved",
		"organization_id", set.OrganizationID, "period", set.PeriodLabel)
	return nil
}

func (s *PostgresStore) GetStatementSet(ctx context.Context, orgID uuid.UUID, periodLabel string) (*entity.StatementSet, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload FROM statement_sets
		WHERE organization_id = $1 AND period_label = $2`,
		orgID, periodLabel).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("STORE_NOT_FOUND",
			fmt.Sprintf("no statements for period %s", periodLabel), common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", "failed to load statement set", err)
	}
	var set entity.StatementSet
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, common.NewAppError("STORE_SCAN", "corrupt statement set", err)
	}
	return &set, nil
}

func (s *PostgresStore) SaveRatioBundle(ctx context.Context, orgID uuid.UUID, bundle *entity.RatioBundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return common.NewAppError("STORE_ENCODE", "failed to encode ratio bundle", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO ratio_bundles (organization_id, period_label, payload, calculated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (organization_id, period_label)
		DO UPDATE SET payload = excluded.payload, calculated_at = excluded.calculated_at`,
		orgID, bundle.PeriodLabel, payload, bundle.CalculatedAt.UTC())
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to save ratio bundle", err)
	}
	return nil
}

func (s *PostgresStore) GetRatioBundle(ctx context.Context, orgID uuid.UUID, periodLabel string) (*entity.RatioBundle, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload FROM ratio_bundles
		WHERE organization_id = $1 AND period_label = $2`,
		orgID, periodLabel).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewAppError("STORE_NOT_FOUND",
			fmt.Sprintf("no ratios for period %s", periodLabel), common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", "failed to load ratio bundle", err)
	}
	var bundle entity.RatioBundle
	if err := json.Unmarshal(payload, &bundle); err != nil {
		return nil, common.NewAppError("STORE_SCAN", "corrupt ratio bundle", err)
	}
	return &bundle, nil
}

func (s *PostgresStore) ListPeriods(ctx context.Context, orgID uuid.UUID) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT period_label FROM statement_sets
		WHERE organization_id = $1
		ORDER BY ingested_at DESC`,
		orgID)
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", "failed to list periods", err)
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, common.NewAppError("STORE_SCAN", "failed to scan period label", err)
		}
		periods = append(periods, label)
	}
	return periods, rows.Err()
}
