package sqlite

import (
	"context"

	"mdr-twin-gateway/internal/domain/twin"

	"gorm.io/gorm"
)

type PatientsRepo struct {
	db *gorm.DB
}

func NewPatientsRepo(db *gorm.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

var _ twin.Repository = (*PatientsRepo)(nil)

// ListTables lista las tablas de usuario; las internas sqlite_% quedan fuera.
func (r *PatientsRepo) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
			AND name NOT LIKE 'sqlite\_%' ESCAPE '\'
	`).Rows()
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
	rows, err := r.db.WithContext(ctx).Raw(twin.PatientsQuery).Rows()
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
	if err := r.db.WithContext(ctx).Raw(twin.CountPatientsQuery).Scan(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
