package attendance

import (
	"math"
	"testing"

	"certlink/internal/category"
	"certlink/internal/config"
	"certlink/internal/dataset"
	"certlink/internal/logging"
)

func newTestClassifier() *Classifier {
	return NewClassifier(category.NewMatcher(config.Default().Categories), 2025, logging.NewNop())
}

func record(name, course string, marks ...Mark) Record {
	headers := []string{"19/05", "20/05", "21/05", "22/05", "02/06"}
	return Record{
		RawName:     name,
		RawCategory: course,
		Marks:       marks,
		DayHeaders:  headers[:len(marks)],
	}
}

func TestClassifyApproved(t *testing.T) {
	c := newTestClassifier()
	// P, P, F, unrecorded, P: 4 valid days, 3 present.
	got := c.Classify(record("JOAO DA SILVA", "PC Gamer", Present, Present, Absent, Unrecorded, Present))
	if got.Verdict != Approved {
		t.Fatalf("Verdict = %v, want Approved", got.Verdict)
	}
	if got.ValidDays != 4 || got.Present != 3 {
		t.Errorf("ValidDays, Present = %d, %d, want 4, 3", got.ValidDays, got.Present)
	}
	if math.Abs(got.Ratio-0.75) > 1e-9 {
		t.Errorf("Ratio = %v, want 0.75", got.Ratio)
	}
	if got.DisplayName != "Joao da Silva" {
		t.Errorf("DisplayName = %q", got.DisplayName)
	}
	if got.CertificateCategory != "Montagem e configuração de computadores de alto desempenho - PC Gamer" {
		t.Errorf("CertificateCategory = %q", got.CertificateCategory)
	}
	if got.CompletionDate != "2 de junho de 2025" {
		t.Errorf("CompletionDate = %q", got.CompletionDate)
	}
}

func TestClassifyNoValidDays(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify(record("Ana", "Robótica", Unrecorded, Unrecorded, Unrecorded))
	if got.Verdict != Rejected || got.Reason != ReasonNoValidDays {
		t.Errorf("got verdict %v reason %v, want Rejected/NoValidDays", got.Verdict, got.Reason)
	}
	if got.Ratio != 0 {
		t.Errorf("Ratio = %v, want 0", got.Ratio)
	}
}

func TestClassifyInsufficientPresence(t *testing.T) {
	c := newTestClassifier()
	// 2 of 5 present.
	got := c.Classify(record("Ana", "Robótica", Present, Absent, Absent, Absent, ExcusedPresent))
	if got.Verdict != Rejected || got.Reason != ReasonInsufficientPresence {
		t.Errorf("got verdict %v reason %v, want Rejected/InsufficientPresence", got.Verdict, got.Reason)
	}
	if math.Abs(got.Ratio-0.4) > 1e-9 {
		t.Errorf("Ratio = %v, want 0.4", got.Ratio)
	}
}

func TestClassifyExcusedCountsAsPresent(t *testing.T) {
	c := newTestClassifier()
	// P, P, F, P, FJ: 5 valid, 4 present, 80%.
	got := c.Classify(record("JOAO DA SILVA", "PC Gamer", Present, Present, Absent, Present, ExcusedPresent))
	if got.Verdict != Approved {
		t.Fatalf("Verdict = %v, want Approved", got.Verdict)
	}
	if math.Abs(got.Ratio-0.8) > 1e-9 {
		t.Errorf("Ratio = %v, want 0.8", got.Ratio)
	}
}

func TestClassifyExactThreshold(t *testing.T) {
	c := newTestClassifier()
	// 3 of 5 = 60% exactly: approved.
	got := c.Classify(record("Ana", "Robótica", Present, Present, Present, Absent, Absent))
	if got.Verdict != Approved {
		t.Errorf("ratio of exactly 0.60 should be approved, got %v", got.Verdict)
	}
}

func TestClassifyAllDivertsAnomalies(t *testing.T) {
	c := newTestClassifier()
	records := []Record{
		record("", "PC Gamer", Present),
		record("Ana", "", Present),
		record("Ana", "Robótica", Present, Present),
	}
	approved, rejected, anomalies := c.ClassifyAll(records)
	if len(anomalies) != 2 {
		t.Fatalf("anomalies = %d, want 2", len(anomalies))
	}
	if anomalies[0].RowIndex != 0 || anomalies[1].RowIndex != 1 {
		t.Errorf("anomaly rows = %d, %d", anomalies[0].RowIndex, anomalies[1].RowIndex)
	}
	if len(approved) != 1 || len(rejected) != 0 {
		t.Errorf("approved, rejected = %d, %d, want 1, 0", len(approved), len(rejected))
	}
}

func TestParseMark(t *testing.T) {
	tests := []struct {
		raw  string
		want Mark
	}{
		{"P", Present},
		{" p ", Present},
		{"F", Absent},
		{"fj", ExcusedPresent},
		{"", Unrecorded},
		{"X", Unrecorded},
		{"presente", Unrecorded},
	}
	for _, tt := range tests {
		if got := ParseMark(tt.raw); got != tt.want {
			t.Errorf("ParseMark(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestParseTable(t *testing.T) {
	table := &dataset.Table{
		Headers: []string{"ALUNOS", "CURSO", "19/05", "20/05", "21/05", "22/05", "02/06"},
		Rows: [][]string{
			{"JOAO DA SILVA", "PC Gamer", "P", "P", "F", "P", "FJ"},
			{"Ana Souza", "Robótica", "", "", "P"},
		},
	}
	records, err := ParseTable(table, config.Default().Attendance)
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].RawName != "JOAO DA SILVA" || records[0].RawCategory != "PC Gamer" {
		t.Errorf("identity = %q, %q", records[0].RawName, records[0].RawCategory)
	}
	wantMarks := []Mark{Present, Present, Absent, Present, ExcusedPresent}
	for i, want := range wantMarks {
		if records[0].Marks[i] != want {
			t.Errorf("mark %d = %v, want %v", i, records[0].Marks[i], want)
		}
	}
	if records[0].CompletionHeader() != "02/06" {
		t.Errorf("CompletionHeader = %q", records[0].CompletionHeader())
	}
	// Short row: missing trailing cells read as unrecorded.
	if records[1].Marks[2] != Present || records[1].Marks[3] != Unrecorded || records[1].Marks[4] != Unrecorded {
		t.Errorf("short row marks = %v", records[1].Marks)
	}
}

func TestParseTableMissingColumns(t *testing.T) {
	table := &dataset.Table{Headers: []string{"X", "Y", "1", "2", "3", "4", "5"}}
	if _, err := ParseTable(table, config.Default().Attendance); err == nil {
		t.Error("expected an error for missing identity columns")
	}
}

func TestFormatCompletionDate(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"02/06", "2 de junho de 2025"},
		{"15/12", "15 de dezembro de 2025"},
		{"1/1", "1 de janeiro de 2025"},
		{"garbage", "garbage"},
		{"10/13", "10/13"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatCompletionDate(tt.header, 2025); got != tt.want {
			t.Errorf("FormatCompletionDate(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
