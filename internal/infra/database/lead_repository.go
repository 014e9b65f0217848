package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/xavierca1/ghostreach/internal/entity"
)

var schemaStatements = map[string][]string{
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS leads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'new'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status)`,
	},
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS leads (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'new'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_status ON leads (status)`,
	},
}

// COALESCE keeps tables created by older tooling (nullable columns) readable.
const leadSelectColumns = `id, email, COALESCE(name, '') AS name, COALESCE(role, '') AS role,
	COALESCE(company, '') AS company, status`

type LeadRepository struct {
	DB *sqlx.DB
}

// NewLeadRepository wraps db and creates the leads table if it is missing.
func NewLeadRepository(ctx context.Context, db *sqlx.DB) (*LeadRepository, error) {
	r := &LeadRepository{DB: db}
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *LeadRepository) EnsureSchema(ctx context.Context) error {
	stmts, ok := schemaStatements[r.DB.DriverName()]
	if !ok {
		stmts = schemaStatements[DriverSQLite]
	}
	for _, stmt := range stmts {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create leads schema: %w", err)
		}
	}
	return nil
}

// Insert adds a lead with status new. An email that is already stored is left
// untouched and reported as InsertResultAlreadyPresent.
func (r *LeadRepository) Insert(ctx context.Context, email, name, role, company string) (entity.InsertResult, error) {
	if email == "" {
		return 0, entity.ErrEmailRequired
	}

	query := r.DB.Rebind(`
		INSERT INTO leads (email, name, role, company)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (email) DO NOTHING
	`)

	res, err := r.DB.ExecContext(ctx, query, email, name, role, company)
	if err != nil {
		return 0, fmt.Errorf("failed to insert lead %s: %w", email, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read insert result: %w", err)
	}
	if n == 0 {
		return entity.InsertResultAlreadyPresent, nil
	}
	return entity.InsertResultInserted, nil
}

func (r *LeadRepository) FetchByStatus(ctx context.Context, status entity.LeadStatus) ([]entity.Lead, error) {
	query := r.DB.Rebind(`SELECT ` + leadSelectColumns + ` FROM leads WHERE status = ? ORDER BY id`)

	leads := []entity.Lead{}
	if err := r.DB.SelectContext(ctx, &leads, query, string(status)); err != nil {
		return nil, fmt.Errorf("failed to fetch %s leads: %w", status, err)
	}
	return leads, nil
}

// UpdateStatus moves the given leads to status. Unknown ids are ignored and
// leads that already reached status are not touched.
func (r *LeadRepository) UpdateStatus(ctx context.Context, ids []int64, status entity.LeadStatus) error {
	if _, err := entity.ParseLeadStatus(string(status)); err != nil {
		return err
	}
	if status == entity.LeadStatusNew {
		return entity.ErrInvalidStatusTransition
	}
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(
		`UPDATE leads SET status = ? WHERE status = ? AND id IN (?)`,
		string(status), string(entity.LeadStatusNew), ids,
	)
	if err != nil {
		return fmt.Errorf("failed to build status update: %w", err)
	}

	if _, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to update lead status: %w", err)
	}
	return nil
}

func (r *LeadRepository) CountByStatus(ctx context.Context) (map[entity.LeadStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.DB.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS count FROM leads GROUP BY status`); err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	counts := map[entity.LeadStatus]int{
		entity.LeadStatusNew:       0,
		entity.LeadStatusContacted: 0,
	}
	for _, row := range rows {
		counts[entity.LeadStatus(row.Status)] = row.Count
	}
	return counts, nil
}
