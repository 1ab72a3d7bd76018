package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFileUTF8(t *testing.T) {
	path := writeFile(t, "freq.csv", []byte("ALUNOS,CURSO,02/06\nJoão da Silva,PC Gamer,P\n"))
	table, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("Len = %d, want 1", table.Len())
	}
	if got, ok := table.Cell(0, "ALUNOS"); !ok || got != "João da Silva" {
		t.Errorf("Cell(ALUNOS) = %q, %v", got, ok)
	}
	if got, ok := table.Cell(0, "02/06"); !ok || got != "P" {
		t.Errorf("Cell(02/06) = %q, %v", got, ok)
	}
}

func TestReadFileLatin1Fallback(t *testing.T) {
	// "João,Robótica" encoded as Latin-1: ã = 0xE3, ó = 0xF3.
	raw := []byte("NOME,CURSO\nJo\xe3o,Rob\xf3tica\n")
	path := writeFile(t, "latin1.csv", raw)
	table, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got, _ := table.Cell(0, "NOME"); got != "João" {
		t.Errorf("Cell(NOME) = %q, want João", got)
	}
	if got, _ := table.Cell(0, "CURSO"); got != "Robótica" {
		t.Errorf("Cell(CURSO) = %q, want Robótica", got)
	}
}

func TestReadFileMissingIsFatal(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected an error for a missing input")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error %v should wrap fs.ErrNotExist", err)
	}
}

func TestRowMapShortRow(t *testing.T) {
	path := writeFile(t, "short.csv", []byte("A,B,C\n1,2\n"))
	table, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	row := table.RowMap(0)
	if row["A"] != "1" || row["B"] != "2" || row["C"] != "" {
		t.Errorf("RowMap = %v", row)
	}
}

func TestCellUnknownColumn(t *testing.T) {
	table := &Table{Headers: []string{"A"}, Rows: [][]string{{"1"}}}
	if _, ok := table.Cell(0, "Z"); ok {
		t.Error("unknown column should report ok=false")
	}
}
