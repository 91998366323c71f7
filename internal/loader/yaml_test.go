package loader

import "testing"

func TestParseYAML(t *testing.T) {
	data := []byte(`
version: "1"
metadata:
  description: Rare disease specialist registry
specialists:
  - id: sp-1
    name: Dr. Alice Nguyen
    specialty: Genetics
    institution: Central University Hospital
    conditions:
      - Fabry disease
      - Gaucher disease
    city: Sherbrooke
    state: Quebec
    country: Canada
    email: alice.nguyen@example.org
    relevance_score: 0.92
  - id: sp-2
    first_name: Ben
    last_name: Carter
    specialty: Neurology
`)

	specialists, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specialists) != 2 {
		t.Fatalf("expected 2 specialists, got %d", len(specialists))
	}

	a := specialists[0]
	if a.ID != "sp-1" || a.Specialty != "Genetics" {
		t.Errorf("unexpected record: %+v", a)
	}
	if len(a.Conditions) != 2 {
		t.Errorf("expected 2 conditions, got %v", a.Conditions)
	}
	if a.RelevanceScore == nil || *a.RelevanceScore != 0.92 {
		t.Errorf("expected relevance score, got %v", a.RelevanceScore)
	}
	if got := a.Location(); got != "Sherbrooke, Quebec, Canada" {
		t.Errorf("unexpected location %q", got)
	}

	b := specialists[1]
	if got := b.DisplayName(); got != "Ben Carter" {
		t.Errorf("expected decomposed name, got %q", got)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	t.Run("malformed YAML", func(t *testing.T) {
		if _, err := ParseYAML([]byte("specialists: [")); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		data := []byte("specialists:\n  - name: Dr. X\n    specialty: Genetics\n")
		if _, err := ParseYAML(data); err == nil {
			t.Error("expected error for missing id")
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		data := []byte(`
specialists:
  - id: sp-1
    name: Dr. X
    specialty: Genetics
  - id: sp-1
    name: Dr. Y
    specialty: Neurology
`)
		if _, err := ParseYAML(data); err == nil {
			t.Error("expected error for duplicate id")
		}
	})

	t.Run("empty dataset is allowed", func(t *testing.T) {
		specialists, err := ParseYAML([]byte("version: \"1\"\nspecialists: []\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(specialists) != 0 {
			t.Errorf("expected empty dataset, got %d records", len(specialists))
		}
	})
}
