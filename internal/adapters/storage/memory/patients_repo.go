package memory

import (
	"context"
	"sync"

	"mdr-twin-gateway/internal/domain/twin"
)

// PatientsRepo es un doble en memoria del almacenamiento del gemelo.
// Solo lo alimentan los tests (Seed/FailWith); la API nunca escribe en él.
type PatientsRepo struct {
	mu       sync.RWMutex
	tables   []string
	patients []twin.Patient
	err      error
	calls    int
}

func NewPatientsRepo(patients ...twin.Patient) *PatientsRepo {
	r := &PatientsRepo{tables: []string{"patients"}}
	r.Seed(patients...)
	return r
}

var _ twin.Repository = (*PatientsRepo)(nil)

// Seed reemplaza el contenido de la tabla patients.
func (r *PatientsRepo) Seed(patients ...twin.Patient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients = append([]twin.Patient(nil), patients...)
}

// SetTables reemplaza el catálogo devuelto por ListTables.
func (r *PatientsRepo) SetTables(tables ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = append([]string(nil), tables...)
}

// FailWith hace que todas las consultas devuelvan err (nil lo desactiva).
func (r *PatientsRepo) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Calls cuenta las lecturas de ListPatients.
func (r *PatientsRepo) Calls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calls
}

func (r *PatientsRepo) ListTables(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return nil, r.err
	}
	return append([]string{}, r.tables...), nil
}

func (r *PatientsRepo) ListPatients(ctx context.Context) ([]twin.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return append([]twin.Patient{}, r.patients...), nil
}

func (r *PatientsRepo) CountPatients(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.err != nil {
		return 0, r.err
	}
	return int64(len(r.patients)), nil
}
