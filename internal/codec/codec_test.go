package codec

import (
	"bytes"
	"strings"
	"testing"

	"specfinder/internal/domain"
)

func sampleSpecialists() []domain.Specialist {
	score := 0.85
	return []domain.Specialist{
		{
			ID:             "sp-1",
			Name:           "Dr. Alice Nguyen",
			Specialty:      "Genetics",
			Institution:    "Central University Hospital",
			Conditions:     []string{"Fabry disease", "Gaucher disease"},
			City:           "Sherbrooke",
			State:          "Quebec",
			Country:        "Canada",
			Email:          "alice.nguyen@example.org",
			RelevanceScore: &score,
		},
		{
			ID:        "sp-2",
			Name:      "Dr. Ben Carter",
			Specialty: "Neurology",
		},
	}
}

func TestJSONCodecRoundTrip(t *testing.T) {
	c := NewJSONCodec()
	if c.Format() != "json" {
		t.Errorf("unexpected format %q", c.Format())
	}

	var buf bytes.Buffer
	if err := c.Export(sampleSpecialists(), &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	parsed, err := c.Parse(&buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 records, got %d", len(parsed))
	}
	if parsed[0].ID != "sp-1" || len(parsed[0].Conditions) != 2 {
		t.Errorf("unexpected record: %+v", parsed[0])
	}
	if parsed[0].RelevanceScore == nil || *parsed[0].RelevanceScore != 0.85 {
		t.Errorf("score did not survive round trip: %v", parsed[0].RelevanceScore)
	}
}

func TestJSONCodecParseError(t *testing.T) {
	c := NewJSONCodec()
	if _, err := c.Parse(strings.NewReader("{not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestYAMLCodecRoundTrip(t *testing.T) {
	c := NewYAMLCodec()
	if c.Format() != "yaml" {
		t.Errorf("unexpected format %q", c.Format())
	}

	var buf bytes.Buffer
	if err := c.Export(sampleSpecialists(), &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "specialists:") {
		t.Errorf("expected dataset document shape, got:\n%s", out)
	}
	if !strings.Contains(out, "Fabry disease") {
		t.Errorf("expected conditions in output, got:\n%s", out)
	}

	parsed, err := c.Parse(&buf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(parsed) != 2 {
		t.Fatalf("expected 2 records, got %d", len(parsed))
	}
	if parsed[1].Specialty != "Neurology" {
		t.Errorf("unexpected record: %+v", parsed[1])
	}
}

func TestCSVCodec(t *testing.T) {
	c := NewCSVCodec()
	if c.Format() != "csv" {
		t.Errorf("unexpected format %q", c.Format())
	}

	var buf bytes.Buffer
	if err := c.Export(sampleSpecialists(), &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,name,specialty") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Fabry disease; Gaucher disease") {
		t.Errorf("expected joined conditions, got: %s", lines[1])
	}
	if !strings.Contains(lines[1], "0.85") {
		t.Errorf("expected score column, got: %s", lines[1])
	}

	t.Run("round trip", func(t *testing.T) {
		parsed, err := c.Parse(strings.NewReader(buf.String()))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if len(parsed) != 2 {
			t.Fatalf("expected 2 records, got %d", len(parsed))
		}
		if got := parsed[0].Conditions; len(got) != 2 || got[0] != "Fabry disease" {
			t.Errorf("unexpected conditions: %v", got)
		}
	})

	t.Run("header required", func(t *testing.T) {
		if _, err := c.Parse(strings.NewReader("")); err == nil {
			t.Error("expected error for empty input")
		}
	})
}
