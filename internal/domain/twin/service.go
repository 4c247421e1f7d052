package twin

import (
	"context"
	"errors"
)

var (
	ErrNoRepository = errors.New("twin: repository not configured")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListPatients hace exactamente una lectura al repositorio por llamada.
// Nunca devuelve nil en éxito para que el JSON sea [] y no null.
func (s *Service) ListPatients(ctx context.Context) ([]Patient, error) {
	if s == nil || s.repo == nil {
		return nil, ErrNoRepository
	}
	items, err := s.repo.ListPatients(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Patient{}
	}
	return items, nil
}

// Diagnostics resume el estado del almacenamiento para el log de arranque.
type Diagnostics struct {
	Tables       []string
	PatientCount int64
}

// Diagnostics consulta catálogo y conteo. Si una de las dos falla, devuelve
// lo que obtuvo junto con el primer error.
func (s *Service) Diagnostics(ctx context.Context) (Diagnostics, error) {
	if s == nil || s.repo == nil {
		return Diagnostics{}, ErrNoRepository
	}

	var d Diagnostics
	n, countErr := s.repo.CountPatients(ctx)
	if countErr == nil {
		d.PatientCount = n
	}
	tables, tablesErr := s.repo.ListTables(ctx)
	if tablesErr == nil {
		d.Tables = tables
	}

	if countErr != nil {
		return d, countErr
	}
	return d, tablesErr
}
