package enrollment

import (
	"testing"

	"certlink/internal/dataset"
)

func TestGetAbsentSemantics(t *testing.T) {
	rec := NewRecord(0, map[string]string{
		"Nome completo": "João da Silva",
		"CPF":           "",
		"Idade":         "nan",
		"Sexo":          "NULL",
	})

	if v, ok := rec.Get("Nome completo"); !ok || v != "João da Silva" {
		t.Errorf("Get(Nome completo) = %q, %v", v, ok)
	}
	for _, label := range []string{"CPF", "Idade", "Sexo", "Telefone"} {
		if _, ok := rec.Get(label); ok {
			t.Errorf("Get(%q) should be absent", label)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"17", "17"},
		{"17.0", "17"},
		{" 2008.0 ", "2008"},
		{"abc", "abc"},
		{"", ""},
		{"12/05", "12/05"},
	}
	for _, tt := range tests {
		if got := CoerceInt(tt.in); got != tt.want {
			t.Errorf("CoerceInt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromTablePreservesOrder(t *testing.T) {
	table := &dataset.Table{
		Headers: []string{"Nome completo"},
		Rows:    [][]string{{"Ana"}, {"Bruno"}},
	}
	records := FromTable(table)
	if len(records) != 2 {
		t.Fatalf("records = %d", len(records))
	}
	if records[0].Index != 0 || records[1].Index != 1 {
		t.Error("indices not preserved")
	}
	if v, _ := records[1].Get("Nome completo"); v != "Bruno" {
		t.Errorf("row 1 name = %q", v)
	}
}
