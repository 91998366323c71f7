package service

import (
	"context"
	"errors"
	"testing"

	"specfinder/internal/domain"
	"specfinder/internal/repository/sqlite"
)

func newTestService(t *testing.T) (*DirectoryService, chan Event) {
	t.Helper()

	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	bus := NewEventBus()
	events := make(chan Event, 16)
	bus.Subscribe(events)

	return NewDirectoryService(repo, bus), events
}

func TestDirectoryServiceValidateSpecialist(t *testing.T) {
	svc := &DirectoryService{}

	t.Run("valid specialist passes validation", func(t *testing.T) {
		spec := domain.NewSpecialist("Dr. Alice Nguyen", "Genetics")
		if err := svc.validateSpecialist(spec); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty ID fails validation", func(t *testing.T) {
		spec := &domain.Specialist{Name: "Dr. Alice Nguyen", Specialty: "Genetics"}
		if err := svc.validateSpecialist(spec); err == nil {
			t.Error("expected error for empty ID")
		}
	})

	t.Run("empty name fails validation", func(t *testing.T) {
		spec := &domain.Specialist{ID: "sp-1", Specialty: "Genetics"}
		if err := svc.validateSpecialist(spec); err == nil {
			t.Error("expected error for empty name")
		}
	})

	t.Run("decomposed name satisfies the name requirement", func(t *testing.T) {
		spec := &domain.Specialist{ID: "sp-1", FirstName: "Alice", LastName: "Nguyen", Specialty: "Genetics"}
		if err := svc.validateSpecialist(spec); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty specialty fails validation", func(t *testing.T) {
		spec := &domain.Specialist{ID: "sp-1", Name: "Dr. Alice Nguyen"}
		if err := svc.validateSpecialist(spec); err == nil {
			t.Error("expected error for empty specialty")
		}
	})
}

func TestSearch(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	spec := domain.NewSpecialist("Dr. Alice Nguyen", "Genetics")
	spec.Conditions = []string{"Fabry disease"}
	if err := svc.CreateSpecialist(ctx, spec); err != nil {
		t.Fatalf("failed to create specialist: %v", err)
	}
	<-events // drain the create event

	t.Run("empty query is rejected without a lookup", func(t *testing.T) {
		_, err := svc.Search(ctx, "   ", 0)
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("expected ErrEmptyQuery, got %v", err)
		}
		select {
		case ev := <-events:
			t.Errorf("expected no event, got %v", ev.Type)
		default:
		}
	})

	t.Run("query is trimmed before matching", func(t *testing.T) {
		results, err := svc.Search(ctx, "  fabry  ", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].ID != spec.ID {
			t.Fatalf("unexpected results: %+v", results)
		}
	})

	t.Run("search publishes an event", func(t *testing.T) {
		select {
		case ev := <-events:
			if ev.Type != EventSearchPerformed {
				t.Errorf("expected search event, got %v", ev.Type)
			}
		default:
			t.Error("expected a search event")
		}
	})

	t.Run("limit is capped", func(t *testing.T) {
		if _, err := svc.Search(ctx, "fabry", MaxSearchLimit+1000); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestCreateUpdateDelete(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	t.Run("create assigns an ID when absent", func(t *testing.T) {
		spec := &domain.Specialist{Name: "Dr. Ben Carter", Specialty: "Neurology"}
		if err := svc.CreateSpecialist(ctx, spec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if spec.ID == "" {
			t.Error("expected generated ID")
		}
		if ev := <-events; ev.Type != EventSpecialistCreated {
			t.Errorf("expected created event, got %v", ev.Type)
		}
	})

	t.Run("duplicate create is rejected", func(t *testing.T) {
		spec := &domain.Specialist{ID: "dup", Name: "Dr. X", Specialty: "Genetics"}
		if err := svc.CreateSpecialist(ctx, spec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		<-events
		if err := svc.CreateSpecialist(ctx, spec); err == nil {
			t.Error("expected error for duplicate ID")
		}
	})

	t.Run("update requires an existing record", func(t *testing.T) {
		spec := &domain.Specialist{ID: "ghost", Name: "Dr. Ghost", Specialty: "Genetics"}
		if err := svc.UpdateSpecialist(ctx, spec); err == nil {
			t.Error("expected error for missing record")
		}
	})

	t.Run("update overwrites and publishes", func(t *testing.T) {
		spec := &domain.Specialist{ID: "dup", Name: "Dr. X", Specialty: "Clinical Genetics"}
		if err := svc.UpdateSpecialist(ctx, spec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev := <-events; ev.Type != EventSpecialistUpdated {
			t.Errorf("expected updated event, got %v", ev.Type)
		}

		got, err := svc.GetSpecialist(ctx, "dup")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Specialty != "Clinical Genetics" {
			t.Errorf("expected updated specialty, got %q", got.Specialty)
		}
	})

	t.Run("delete removes and publishes", func(t *testing.T) {
		if err := svc.DeleteSpecialist(ctx, "dup"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ev := <-events; ev.Type != EventSpecialistDeleted {
			t.Errorf("expected deleted event, got %v", ev.Type)
		}
		if _, err := svc.GetSpecialist(ctx, "dup"); err == nil {
			t.Error("expected error for deleted record")
		}
	})
}

func TestImportYAML(t *testing.T) {
	svc, events := newTestService(t)
	ctx := context.Background()

	data := []byte(`
version: "1"
specialists:
  - id: sp-1
    name: Dr. Alice Nguyen
    specialty: Genetics
    conditions:
      - Fabry disease
  - id: sp-2
    name: Dr. Ben Carter
    specialty: Neurology
`)

	result, err := svc.ImportYAML(ctx, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", result.Imported)
	}
	if ev := <-events; ev.Type != EventDatasetReloaded {
		t.Errorf("expected reload event, got %v", ev.Type)
	}

	t.Run("invalid record aborts import", func(t *testing.T) {
		bad := []byte("version: \"1\"\nspecialists:\n  - id: sp-3\n    name: Nameless\n")
		if _, err := svc.ImportYAML(ctx, bad); err == nil {
			t.Error("expected error for record without specialty")
		}
	})
}
