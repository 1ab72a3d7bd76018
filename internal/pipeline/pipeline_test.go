package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"certlink/internal/config"
	"certlink/internal/logging"
)

const (
	attendanceCSV = `ALUNOS,CURSO,02/06,03/06,04/06,05/06,06/06
JOAO DA SILVA,PC Gamer,P,P,F,P,FJ
MARIA OLIVEIRA,Robótica,F,F,F,P,F
,Robótica,P,P,P,P,P
CARLOS PEREIRA,Robótica,P,P,P,P,P
`
	enrollmentCSV = `Carimbo de data/hora,Nome completo,Para qual curso você quer se inscrever?,Estado,Idade
2025/05/01 10:00:00,João da Silva,Montagem e Configuração de Computadores de Alto Desempenho (PC GAMER),ce,17.0
`
)

func writeInputs(t *testing.T, dir string) (string, string) {
	t.Helper()
	attendancePath := filepath.Join(dir, "presenca.csv")
	enrollmentPath := filepath.Join(dir, "inscricoes.csv")
	if err := os.WriteFile(attendancePath, []byte(attendanceCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(enrollmentPath, []byte(enrollmentCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return attendancePath, enrollmentPath
}

func newTestPipeline(t *testing.T) (*Pipeline, string) {
	t.Helper()
	outputDir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = outputDir
	cfg.Attendance.CycleYear = 2025
	return New(&cfg, logging.NewNop()), outputDir
}

func TestRunEndToEnd(t *testing.T) {
	pipe, outputDir := newTestPipeline(t)
	attendancePath, enrollmentPath := writeInputs(t, t.TempDir())

	summary, err := pipe.Run(context.Background(), attendancePath, enrollmentPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if summary.RunID == "" {
		t.Error("missing run ID")
	}
	if summary.RosterRows != 4 {
		t.Errorf("RosterRows = %d, want 4", summary.RosterRows)
	}
	if summary.Approved != 2 || summary.Rejected != 1 || summary.Anomalies != 1 {
		t.Errorf("classification = %d/%d/%d, want 2 approved, 1 rejected, 1 anomaly",
			summary.Approved, summary.Rejected, summary.Anomalies)
	}
	if summary.Certificates != 1 {
		t.Errorf("Certificates = %d, want 1", summary.Certificates)
	}
	if summary.Unmatched != 1 {
		t.Errorf("Unmatched = %d, want 1", summary.Unmatched)
	}

	rows := readCSV(t, summary.Artifacts.Certificates)
	if len(rows) != 2 {
		t.Fatalf("certificate rows = %d, want header + 1", len(rows))
	}
	row := rows[1]
	headers := rows[0]
	get := func(key string) string {
		for i, h := range headers {
			if h == key {
				return row[i]
			}
		}
		t.Fatalf("column %q missing", key)
		return ""
	}
	if get("NOME") != "Joao da Silva" {
		t.Errorf("NOME = %q", get("NOME"))
	}
	if get("ESTADO") != "CE" {
		t.Errorf("ESTADO = %q", get("ESTADO"))
	}
	if get("IDADE") != "17" {
		t.Errorf("IDADE = %q", get("IDADE"))
	}
	if get("DATA_CONCLUSAO") != "6 de junho de 2025" {
		t.Errorf("DATA_CONCLUSAO = %q", get("DATA_CONCLUSAO"))
	}

	for _, path := range []string{
		summary.Artifacts.Rejected,
		summary.Artifacts.Unmatched,
		summary.Artifacts.Anomalies,
	} {
		if path == "" {
			t.Error("expected audit report to be written")
			continue
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("audit report missing: %v", err)
		}
	}
	if _, err := os.Stat(filepath.Join(outputDir, lockFileName)); err != nil {
		t.Errorf("lock file missing: %v", err)
	}
}

func TestRunDeterministicOutput(t *testing.T) {
	pipe, _ := newTestPipeline(t)
	attendancePath, enrollmentPath := writeInputs(t, t.TempDir())

	first, err := pipe.Run(context.Background(), attendancePath, enrollmentPath)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstBytes, err := os.ReadFile(first.Artifacts.Certificates)
	if err != nil {
		t.Fatal(err)
	}

	second, err := pipe.Run(context.Background(), attendancePath, enrollmentPath)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	secondBytes, err := os.ReadFile(second.Artifacts.Certificates)
	if err != nil {
		t.Fatal(err)
	}

	if string(firstBytes) != string(secondBytes) {
		t.Error("two runs over identical inputs produced different certificate files")
	}
}

func TestRunMissingInputIsFatal(t *testing.T) {
	pipe, _ := newTestPipeline(t)
	_, enrollmentPath := writeInputs(t, t.TempDir())

	_, err := pipe.Run(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), enrollmentPath)
	if err == nil {
		t.Fatal("expected an error for a missing attendance file")
	}
}

func TestRunRefusesLockedOutput(t *testing.T) {
	pipe, outputDir := newTestPipeline(t)
	attendancePath, enrollmentPath := writeInputs(t, t.TempDir())

	holder := flock.New(filepath.Join(outputDir, lockFileName))
	locked, err := holder.TryLock()
	if err != nil {
		t.Fatal(err)
	}
	if !locked {
		t.Fatal("could not take the lock for the test")
	}
	defer holder.Unlock()

	_, err = pipe.Run(context.Background(), attendancePath, enrollmentPath)
	if !errors.Is(err, ErrOutputLocked) {
		t.Errorf("err = %v, want ErrOutputLocked", err)
	}
}

func TestSummaryApprovalRate(t *testing.T) {
	s := &Summary{Approved: 3, Rejected: 1}
	if got := s.ApprovalRate(); got != 0.75 {
		t.Errorf("ApprovalRate = %v, want 0.75", got)
	}
	empty := &Summary{}
	if got := empty.ApprovalRate(); got != 0 {
		t.Errorf("ApprovalRate on empty summary = %v, want 0", got)
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}
