package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/coopstack/ratio-engine/internal/common"
	"github.com/coopstack/ratio-engine/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS field_mappings (
	organization_id TEXT NOT NULL,
	statement_type  TEXT NOT NULL,
	canonical_field TEXT NOT NULL,
	display_name    TEXT NOT NULL,
	aliases         TEXT NOT NULL DEFAULT '[]',
	is_required     INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (organization_id, statement_type, canonical_field)
);
CREATE TABLE IF NOT EXISTS benchmark_overrides (
	organization_id TEXT PRIMARY KEY,
	overrides       TEXT NOT NULL,
	updated_at      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS statement_sets (
	organization_id TEXT NOT NULL,
	period_label    TEXT NOT NULL,
	payload         TEXT NOT NULL,
	ingested_at     TEXT NOT NULL,
	PRIMARY KEY (organization_id, period_label)
);
CREATE TABLE IF NOT EXISTS ratio_bundles (
	organization_id TEXT NOT NULL,
	period_label    TEXT NOT NULL,
	payload         TEXT NOT NULL,
	calculated_at   TEXT NOT NULL,
	PRIMARY KEY (organization_id, period_label)
);
`

// SQLiteStore is the embedded backend. A single connection file serves the
// whole CLI session.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and if needed creates) the database file and applies the
// schema.
func OpenSQLite(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (*SQLiteStore, error) {
	logger.Info("opening sqlite store", "path", cfg.SQLitePath)
	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, common.NewAppError("STORE_OPEN", "failed to open sqlite database", err)
	}
	if cfg.BusyTimeoutMS > 0 {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeoutMS)); err != nil {
			db.Close()
			return nil, common.NewAppError("STORE_OPEN", "failed to set busy timeout", err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, common.NewAppError("STORE_MIGRATE", "failed to apply sqlite schema", err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Close() error {
	s.logger.Info("closing sqlite store")
	return s.db.Close()
}

func (s *SQLiteStore) ListMappings(ctx context.Context, orgID uuid.UUID) ([]entity.FieldMapping, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT organization_id, statement_type, canonical_field, display_name, aliases, is_required
		FROM field_mappings
		WHERE organization_id IN (?, ?)
		ORDER BY CASE organization_id WHEN ? THEN 0 ELSE 1 END, rowid`,
		orgID.String(), uuid.Nil.String(), orgID.String())
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", "failed to list field mappings", err)
	}
	defer rows.Close()

	var mappings []entity.FieldMapping
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, rows.Err()
}

func scanMapping(rows *sql.Rows) (entity.FieldMapping, error) {
	var m entity.FieldMapping
	var orgID, st, aliases string
	if err := rows.Scan(&orgID, &st, &m.CanonicalField, &m.DisplayName, &aliases, &m.IsRequired); err != nil {
		return m, common.NewAppError("STORE_SCAN", "failed to scan field mapping", err)
	}
	id, err := uuid.Parse(orgID)
	if err != nil {
		return m, common.NewAppError("STORE_SCAN", "corrupt organization id in field mapping", err)
	}
	m.OrganizationID = id
	m.StatementType = entity.StatementType(st)
	if err := json.Unmarshal([]byte(aliases), &m.Aliases); err != nil {
		return m, common.NewAppError("STORE_SCAN", "corrupt aliases in field mapping", err)
	}
	return m, nil
}

func (s *SQLiteStore) SaveMapping(ctx context.Context, m entity.FieldMapping) error {
	aliases, err := json.Marshal(m.Aliases)
	if err != nil {
		return common.NewAppError("STORE_ENCODE", "failed to encode aliases", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO field_mappings (organization_id, statement_type, canonical_field, display_name, aliases, is_required)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (organization_id, statement_type, canonical_field)
		DO UPDATE SET display_name = excluded.display_name,
		              aliases = excluded.aliases,
		              is_required = excluded.is_required`,
		m.OrganizationID.String(), string(m.StatementType), m.CanonicalField,
		m.DisplayName, string(aliases), m.IsRequired)
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to save field mapping", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteMapping(ctx context.Context, orgID uuid.UUID, st entity.StatementType, canonicalField string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM field_mappings
		WHERE organization_id = ? AND statement_type = ? AND canonical_field = ?`,
		orgID.String(), string(st), canonicalField)
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to delete field mapping", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.NewAppError("STORE_NOT_FOUND",
			fmt.Sprintf("no mapping for %s/%s", st, canonicalField), common.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) GetOverrides(ctx context.Context, orgID uuid.UUID) (map[string]*float64, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT overrides FROM benchmark_overrides WHERE organization_id = ?`,
		orgID.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]*float64{}, nil
	}
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", "failed to load benchmark overrides", err)
	}
	var overrides map[string]*float64
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, common.NewAppError("STORE_SCAN", "corrupt benchmark overrides", err)
	}
	return overrides, nil
}

func (s *SQLiteStore) SaveOverrides(ctx context.Context, orgID uuid.UUID, overrides map[string]*float64) error {
	raw, err := json.Marshal(overrides)
	if err != nil {
		return common.NewAppError("STORE_ENCODE", "failed to encode benchmark overrides", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO benchmark_overrides (organization_id, overrides, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (organization_id)
		DO UPDATE SET overrides = excluded.overrides, updated_at = excluded.updated_at`,
		orgID.String(), string(raw), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to save benchmark overrides", err)
	}
	return nil
}

func (s *SQLiteStore) SaveStatementSet(ctx context.Context, set *entity.StatementSet) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return common.NewAppError("STORE_ENCODE", "failed to encode statement set", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO statement_sets (organization_id, period_label, payload, ingested_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (organization_id, period_label)
		DO UPDATE SET payload = excluded.payload, ingested_at = excluded.ingested_at`,
		set.OrganizationID.String(), set.PeriodLabel, string(payload),
		set.IngestedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to save statement set", err)
	}
	s.logger.Info("statement set saved",
		"organization_id", set.OrganizationID, "period", set.PeriodLabel)
	return nil
}

func (s *SQLiteStore) GetStatementSet(ctx context.Context, orgID uuid.UUID, periodLabel string) (*entity.StatementSet, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM statement_sets
		WHERE organization_id = ? AND period_label = ?`,
		orgID.String(), periodLabel).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("STORE_NOT_FOUND",
			fmt.Sprintf("no statements for period %s", periodLabel), common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", "failed to load statement set", err)
	}
	var set entity.StatementSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		return nil, common.NewAppError("STORE_SCAN", "corrupt statement set", err)
	}
	return &set, nil
}

func (s *SQLiteStore) SaveRatioBundle(ctx context.Context, orgID uuid.UUID, bundle *entity.RatioBundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return common.NewAppError("STORE_ENCODE", "failed to encode ratio bundle", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ratio_bundles (organization_id, period_label, payload, calculated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (organization_id, period_label)
		DO UPDATE SET payload = excluded.payload, calculated_at = excluded.calculated_at`,
		orgID.String(), bundle.PeriodLabel, string(payload),
		bundle.CalculatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return common.NewAppError("STORE_WRITE", "failed to save ratio bundle", err)
	}
	return nil
}

func (s *SQLiteStore) GetRatioBundle(ctx context.Context, orgID uuid.UUID, periodLabel string) (*entity.RatioBundle, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM ratio_bundles
		WHERE organization_id = ? AND period_label = ?`,
		orgID.String(), periodLabel).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("STORE_NOT_FOUND",
			fmt.Sprintf("no ratios for period %s", periodLabel), common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("STORE_QUERY", "failed to load ratio bundle", err)
	}
	var bundle entity.RatioBundle
	if err := json.Unmarshal([]byte(payload), &bundle); err != nil {
		return nil, common.NewAppError("STORE_SCAN", "corrupt ratio bundle", err)
	}
	return &bundle, nil
}

func (s *SQLiteStore) ListPeriods(ctx context.Context, orgID uuid.UUID) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT period_label FROM statement_sets
		WHERE organization_id = ?
		ORDER BY ingested_at DESC`,
		orgID.String())
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
