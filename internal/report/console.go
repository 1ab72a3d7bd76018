package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"certlink/internal/attendance"
	"certlink/internal/linkage"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// StatsTable renders the per-category match totals.
func StatsTable(stats []linkage.CategoryStats) string {
	rows := make([][]string, 0, len(stats))
	totalApproved, totalCerts := 0, 0
	for _, stat := range stats {
		rows = append(rows, []string{
			stat.Category,
			fmt.Sprintf("%d", stat.Approved),
			fmt.Sprintf("%d", stat.Certificates),
		})
		totalApproved += stat.Approved
		totalCerts += stat.Certificates
	}
	rows = append(rows, []string{"TOTAL", fmt.Sprintf("%d", totalApproved), fmt.Sprintf("%d", totalCerts)})
	return renderTable(
		[]string{"Curso", "Aprovados", "Certificados"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
}

// RejectedTable renders the rejected roster records with reason and ratio.
func RejectedTable(rejected []attendance.Classified) string {
	rows := make([][]string, 0, len(rejected))
	for _, rec := range rejected {
		rows = append(rows, []string{
			rec.Record.RawName,
			rec.Record.RawCategory,
			RejectionReason(rec),
			fmt.Sprintf("%d/%d", rec.Present, rec.ValidDays),
		})
	}
	return renderTable(
		[]string{"Nome", "Curso", "Motivo", "Presenças"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	)
}

// BorderlineTable renders pairings waiting on a manual decision.
func BorderlineTable(entries []linkage.Review) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.RosterName,
			entry.EnrollmentName,
			entry.Category,
			formatScore(entry.Score),
		})
	}
	return renderTable(
		[]string{"Nome (presença)", "Nome (inscrição)", "Curso", "Similaridade"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	)
}

// UnmatchedTable renders approved records that could not be linked.
func UnmatchedTable(entries []linkage.Unmatched) string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.RosterName,
			entry.Category,
			entry.BestName,
			formatScore(entry.BestScore),
		})
	}
	return renderTable(
		[]string{"Nome (presença)", "Curso", "Melhor candidato", "Similaridade"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
