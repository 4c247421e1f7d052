package twin

import "context"

// Repository es el acceso de solo lectura al almacenamiento del gemelo digital.
// Las implementaciones abren el handle en modo read-only: cualquier escritura
// la rechaza el motor, no la aplicación.
type Repository interface {
	// ListTables devuelve las tablas de usuario en el orden del catálogo.
	ListTables(ctx context.Context) ([]string, error)
	// ListPatients ejecuta la proyección fija de cinco columnas, sin ORDER BY.
	ListPatients(ctx context.Context) ([]Patient, error)
	CountPatients(ctx context.Context) (int64, error)
}

// PatientsQuery es la proyección que comparten los adapters SQL.
const PatientsQuery = `
		SELECT
			id,
			name,
			age,
			ward,
			is_mdr_known
		FROM patients
	`

const CountPatientsQuery = `SELECT COUNT(*) FROM patients`
