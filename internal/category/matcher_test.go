package category

import (
	"testing"

	"certlink/internal/config"
)

func newTestMatcher() *Matcher {
	return NewMatcher(config.Default().Categories)
}

func TestMatchNormalizedEquality(t *testing.T) {
	m := newTestMatcher()
	if !m.Match("Robótica", "robotica") {
		t.Error("accent/case variants of the same label should match")
	}
	if !m.Match("  Manutenção de Celulares ", "manutencao de celulares") {
		t.Error("whitespace variants should match")
	}
}

func TestMatchKeywordGroups(t *testing.T) {
	m := newTestMatcher()
	tests := []struct {
		name   string
		roster string
		enroll string
		want   bool
	}{
		{"pc gamer keyword inside parenthetical", "PC Gamer", "Montagem e Configuração de Computadores de Alto Desempenho (PC GAMER)", true},
		{"robotics variants", "Robótica, Programação", "Robótica", true},
		{"phone abbreviation", "M. Celular", "Manutenção de Celulares", true},
		{"games abbreviation", "Dev. Jogos", "Desenvolvimento de Jogos", true},
		{"unrelated offerings", "PC Gamer", "Robótica", false},
		{"empty roster label", "", "Robótica", false},
		{"empty enrollment label", "PC Gamer", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Match(tt.roster, tt.enroll); got != tt.want {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.roster, tt.enroll, got, tt.want)
			}
		})
	}
}

func TestMatchAliasFallback(t *testing.T) {
	// A table with no keyword groups exercises the alias path alone.
	m := NewMatcher(config.Categories{
		Aliases: map[string]string{
			"pc gamer": "Montagem e Configuração de Computadores de Alto Desempenho (PC GAMER)",
		},
	})
	if !m.Match("PC GAMER", "Montagem e Configuração de Computadores de Alto Desempenho (PC GAMER)") {
		t.Error("alias mapping to the canonical label should match")
	}
	if m.Match("PC GAMER", "Robótica") {
		t.Error("alias must not match a different offering")
	}
}

func TestCanonicalEnrollmentLabel(t *testing.T) {
	m := newTestMatcher()
	got := m.CanonicalEnrollmentLabel("M. Celular")
	if got != "Manutenção de Celulares" {
		t.Errorf("CanonicalEnrollmentLabel = %q", got)
	}
	if got := m.CanonicalEnrollmentLabel("Curso Inédito"); got != "Curso Inédito" {
		t.Errorf("unknown label should pass through, got %q", got)
	}
}

func TestCertificateName(t *testing.T) {
	m := newTestMatcher()
	tests := []struct {
		label string
		want  string
	}{
		{"PC Gamer", "Montagem e configuração de computadores de alto desempenho - PC Gamer"},
		{"pc gamer", "Montagem e configuração de computadores de alto desempenho - PC Gamer"},
		{"Robótica", "Robótica, Programação"},
		{"Dev. Jogos", "Desenvolvimento de Jogos"},
		{"Curso Inédito", "Curso Inédito"},
	}
	for _, tt := range tests {
		if got := m.CertificateName(tt.label); got != tt.want {
			t.Errorf("CertificateName(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}
