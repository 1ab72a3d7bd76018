package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Attendance.CycleYear != time.Now().Year() {
		t.Errorf("CycleYear = %d, want current year", cfg.Attendance.CycleYear)
	}
	if len(cfg.Output.Fields) != 16 {
		t.Errorf("default output fields = %d, want 16", len(cfg.Output.Fields))
	}
	if cfg.Output.Fields[0].Key != "DATA_ADESAO" || cfg.Output.Fields[15].Key != "DATA_CONCLUSAO" {
		t.Error("default output field order does not match the fixed schema")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("exists = true for a missing file")
	}
	if cfg.Attendance.NameColumn != "ALUNOS" {
		t.Errorf("NameColumn = %q, want default", cfg.Attendance.NameColumn)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	doc := `
[attendance]
name_column = "STUDENTS"
day_window = 10
cycle_year = 2024

[matching]
batch_size = 100

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatal("expected the config file to be found")
	}
	if cfg.Attendance.NameColumn != "STUDENTS" {
		t.Errorf("NameColumn = %q, want STUDENTS", cfg.Attendance.NameColumn)
	}
	if cfg.Attendance.DayWindow != 10 || cfg.Attendance.CycleYear != 2024 {
		t.Errorf("attendance overrides not applied: %+v", cfg.Attendance)
	}
	if cfg.Matching.BatchSize != 100 {
		t.Errorf("BatchSize = %d, want 100", cfg.Matching.BatchSize)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Logging.Format)
	}
	// Untouched sections keep defaults.
	if cfg.Enrollment.NameLabel != "Nome completo" {
		t.Errorf("NameLabel = %q, want default", cfg.Enrollment.NameLabel)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero day window", "[attendance]\nday_window = -1\n"},
		{"bad log format", "[logging]\nformat = \"xml\"\n"},
		{"bad transform", "[[output.fields]]\nkey = \"X\"\ntransform = \"reverse\"\n"},
		{"duplicate field", "[[output.fields]]\nkey = \"X\"\n[[output.fields]]\nkey = \"X\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, _, _, err := Load(path); err == nil {
				t.Error("Load accepted an invalid config")
			}
		})
	}
}

func TestSampleConfigMentionsSections(t *testing.T) {
	sample := SampleConfig()
	for _, section := range []string{"[paths]", "[attendance]", "[enrollment]", "[categories]", "[matching]", "[output]", "[logging]"} {
		if !strings.Contains(sample, section) {
			t.Errorf("sample config missing %s", section)
		}
	}
}
