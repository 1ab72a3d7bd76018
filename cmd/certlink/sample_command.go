package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/cobra"

	"certlink/internal/category"
	"certlink/internal/config"
)

// Roster labels the sample generator draws from. They exercise every path of
// the category matcher: exact labels, abbreviations, and keyword variants.
var sampleCategories = []string{
	"PC Gamer",
	"Robótica",
	"M. Celular",
	"Dev. Jogos",
}

// newSampleCommand generates a synthetic attendance/enrollment pair for
// trying the pipeline without real student data.
func newSampleCommand() *cobra.Command {
	var dir string
	var rows int
	var seed int64

	cmd := &cobra.Command{
		Use:         "sample",
		Short:       "Generate synthetic attendance and enrollment files",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(dir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create sample directory: %w", err)
			}

			attendancePath := filepath.Join(target, "presenca.csv")
			enrollmentPath := filepath.Join(target, "inscricoes.csv")
			if err := writeSampleFiles(attendancePath, enrollmentPath, rows, seed); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", attendancePath)
			fmt.Fprintf(out, "Wrote %s\n", enrollmentPath)
			fmt.Fprintf(out, "Try: certlink process %s %s\n", attendancePath, enrollmentPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory for the generated files")
	cmd.Flags().IntVarP(&rows, "rows", "n", 40, "Number of roster rows to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 for a random run)")
	return cmd
}

func writeSampleFiles(attendancePath, enrollmentPath string, rows int, seed int64) error {
	faker := gofakeit.New(seed)
	cfg := config.Default()
	matcher := category.NewMatcher(cfg.Categories)

	dayHeaders := []string{"02/06", "03/06", "04/06", "05/06", "06/06"}
	attendanceHeaders := append(
		[]string{cfg.Attendance.NameColumn, cfg.Attendance.CategoryColumn},
		dayHeaders...,
	)
	enrollmentHeaders := []string{
		cfg.Enrollment.TimestampLabel,
		cfg.Enrollment.NameLabel,
		cfg.Enrollment.CategoryLabel,
		"Estado",
		"Idade",
		"E-mail",
	}

	var attendanceRows, enrollmentRows [][]string
	for i := 0; i < rows; i++ {
		name := faker.Name()
		rosterCategory := sampleCategories[faker.Number(0, len(sampleCategories)-1)]

		marks := make([]string, len(dayHeaders))
		for d := range marks {
			switch faker.Number(0, 9) {
			case 0, 1:
				marks[d] = "F"
			case 2:
				marks[d] = "FJ"
			case 3:
				marks[d] = ""
			default:
				marks[d] = "P"
			}
		}
		attendanceRows = append(attendanceRows,
			append([]string{strings.ToUpper(name), rosterCategory}, marks...))

		// Most students have a matching enrollment; the rest exercise the
		// unmatched report. Some enrolled under a longer legal name to
		// exercise the subset rules.
		if faker.Number(0, 9) < 8 {
			enrollName := name
			if faker.Number(0, 3) == 0 {
				enrollName = name + " " + faker.LastName()
			}
			enrollCategory := matcher.CanonicalEnrollmentLabel(rosterCategory)
			enrollmentRows = append(enrollmentRows, []string{
				fmt.Sprintf("2025/05/%02d 10:%02d:00", faker.Number(1, 28), faker.Number(0, 59)),
				enrollName,
				enrollCategory,
				faker.RandomString([]string{"CE", "SP", "BA", "PE"}),
				fmt.Sprintf("%d", faker.Number(12, 19)),
				faker.Email(),
			})
		}
	}

	if err := writeSampleCSV(attendancePath, attendanceHeaders, attendanceRows); err != nil {
		return err
	}
	return writeSampleCSV(enrollmentPath, enrollmentHeaders, enrollmentRows)
}

func writeSampleCSV(path string, headers []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sample file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write sample header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write sample row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush sample file: %w", err)
	}
	return nil
}
