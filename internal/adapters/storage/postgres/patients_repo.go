package postgres

import (
	"context"
	"database/sql"

	"mdr-twin-gateway/internal/domain/twin"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

var _ twin.Repository = (*PatientsRepo)(nil)

func (r *PatientsRepo) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
			AND table_type = 'BASE TABLE'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (r *PatientsRepo) ListPatients(ctx context.Context) ([]twin.Patient, error) {
	rows, err := r.db.QueryContext(ctx, twin.PatientsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]twin.Patient, 0)
	for rows.Next() {
		p, err := twin.ScanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PatientsRepo) CountPatients(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, twin.CountPatientsQuery).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
