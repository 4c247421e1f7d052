package memory

import (
	"context"
	"errors"
	"testing"

	"mdr-twin-gateway/internal/domain/twin"
)

func TestPatientsRepo_ReturnsCopies(t *testing.T) {
	repo := NewPatientsRepo(twin.Patient{ID: twin.IntID(1), Name: "A"})

	items, err := repo.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("ListPatients: %v", err)
	}
	items[0].Name = "mutated"

	again, _ := repo.ListPatients(context.Background())
	if again[0].Name != "A" {
		t.Fatalf("callers must not be able to mutate the store, got %q", again[0].Name)
	}
	if repo.Calls() != 2 {
		t.Fatalf("expected 2 calls, got %d", repo.Calls())
	}
}

func TestPatientsRepo_FailWith(t *testing.T) {
	boom := errors.New("locked")
	repo := NewPatientsRepo()
	repo.FailWith(boom)

	if _, err := repo.ListTables(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("ListTables: expected %v, got %v", boom, err)
	}
	if _, err := repo.CountPatients(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("CountPatients: expected %v, got %v", boom, err)
	}

	repo.FailWith(nil)
	tables, err := repo.ListTables(context.Background())
	if err != nil || len(tables) != 1 || tables[0] != "patients" {
		t.Fatalf("expected default catalog, got %v err=%v", tables, err)
	}
}
