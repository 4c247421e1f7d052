package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PatientsRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewPatientsRepo(db), mock
}

func TestPatientsRepo_ListPatients(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "name", "age", "ward", "is_mdr_known"}).
		AddRow(int64(1), "Ana", int64(41), "TB-1", true).
		AddRow("MDR-002", nil, nil, nil, nil).
		AddRow(int64(3), "Eva", "67.0", "ICU", "t")
	mock.ExpectQuery(regexp.QuoteMeta("FROM patients")).WillReturnRows(rows)

	items, err := repo.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("ListPatients: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 patients, got %d", len(items))
	}

	if p := items[0]; !p.ID.IsInt() || p.ID.String() != "1" || p.Name != "Ana" || p.Age != 41 || !p.IsMDRKnown {
		t.Fatalf("unexpected first patient %+v", p)
	}
	if p := items[1]; p.ID.IsInt() || p.ID.String() != "MDR-002" || p.Name != "" || p.Age != 0 || p.Ward != "" || p.IsMDRKnown {
		t.Fatalf("NULL columns must become zero values, got %+v", p)
	}
	if p := items[2]; p.Age != 67 || !p.IsMDRKnown {
		t.Fatalf("text numeric columns must be normalized, got %+v", p)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPatientsRepo_ListPatients_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM patients")).
		WillReturnError(errors.New(`relation "patients" does not exist`))

	items, err := repo.ListPatients(context.Background())
	if err == nil {
		t.Fatalf("expected query error, got %v", items)
	}
}

func TestPatientsRepo_ListTables(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("patients").AddRow("contacts"))

	tables, err := repo.ListTables(context.Background())
	if err != nil {
		t.Fatalf("ListTables: %v", err)
	}
	if len(tables) != 2 || tables[0] != "patients" || tables[1] != "contacts" {
		t.Fatalf("unexpected tables %v", tables)
	}
}

func TestPatientsRepo_CountPatients(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM patients")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.CountPatients(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("CountPatients: n=%d err=%v", n, err)
	}
}
