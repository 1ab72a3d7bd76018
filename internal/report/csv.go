package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"certlink/internal/attendance"
	"certlink/internal/config"
	"certlink/internal/linkage"
	"certlink/internal/logging"
	"certlink/internal/textnorm"
)

// File names under the output directory. The per-category files go into
// their own subdirectory so a wildcard copy of the root grabs only the
// combined outputs.
const (
	certificatesFile   = "certificados.csv"
	perCategoryDir     = "certificados_por_curso"
	rejectedFile       = "reprovados.csv"
	borderlineFile     = "revisao_manual.csv"
	unmatchedFile      = "nao_incluidos.csv"
	anomaliesFile      = "anomalias.csv"
	workbookFile       = "certificados.xlsx"
	workbookStatsSheet = "Resumo"
)

// Artifacts lists the files one render produced. Empty fields mean the
// corresponding report had nothing to say and was skipped.
type Artifacts struct {
	Certificates string
	PerCategory  []string
	Rejected     string
	Borderline   string
	Unmatched    string
	Anomalies    string
	Workbook     string
}

// Renderer writes every run artifact into one output directory.
type Renderer struct {
	outputDir   string
	fields      []config.OutputField
	perCategory bool
	workbook    bool
	logger      *slog.Logger
}

func NewRenderer(cfg *config.Config, logger *slog.Logger) *Renderer {
	return &Renderer{
		outputDir:   cfg.Paths.OutputDir,
		fields:      cfg.Output.Fields,
		perCategory: cfg.Output.PerCategory,
		workbook:    cfg.Output.Workbook,
		logger:      logging.NewComponentLogger(logger, "report"),
	}
}

// Render writes all artifacts for one run. The certificate file is always
// written, even when empty, because downstream automation expects it; audit
// reports are only written when they have rows.
func (r *Renderer) Render(result linkage.Result, rejected []attendance.Classified, anomalies []attendance.Anomaly) (Artifacts, error) {
	var out Artifacts

	path, err := r.WriteCertificates(result.Certificates)
	if err != nil {
		return out, err
	}
	out.Certificates = path

	if r.perCategory {
		out.PerCategory, err = r.WritePerCategory(result.Certificates)
		if err != nil {
			return out, err
		}
	}

	if out.Rejected, err = r.WriteRejected(rejected); err != nil {
		return out, err
	}
	if out.Borderline, err = r.WriteBorderline(result.Borderline); err != nil {
		return out, err
	}
	if out.Unmatched, err = r.WriteUnmatched(result.Unmatched); err != nil {
		return out, err
	}
	if out.Anomalies, err = r.WriteAnomalies(anomalies); err != nil {
		return out, err
	}

	if r.workbook {
		if out.Workbook, err = r.WriteWorkbook(result); err != nil {
			return out, err
		}
	}
	return out, nil
}

// WriteCertificates writes the combined certificate file with the configured
// column order.
func (r *Renderer) WriteCertificates(certs []linkage.Certificate) (string, error) {
	rows := make([][]string, 0, len(certs))
	for _, cert := range certs {
		rows = append(rows, r.certificateRow(cert))
	}
	path := filepath.Join(r.outputDir, certificatesFile)
	if err := writeCSV(path, r.headers(), rows); err != nil {
		return "", err
	}
	r.logger.Info("certificate file written",
		logging.String("path", path),
		logging.Int("rows", len(rows)))
	return path, nil
}

// WritePerCategory writes one certificate file per category, named after the
// sanitized category label. Certificates arrive already sorted, so each
// file preserves the combined ordering.
func (r *Renderer) WritePerCategory(certs []linkage.Certificate) ([]string, error) {
	byCategory := make(map[string][][]string)
	var order []string
	for _, cert := range certs {
		if _, ok := byCategory[cert.Category]; !ok {
			order = append(order, cert.Category)
		}
		byCategory[cert.Category] = append(byCategory[cert.Category], r.certificateRow(cert))
	}

	paths := make([]string, 0, len(order))
	for _, cat := range order {
		name := fmt.Sprintf("certificados_%s.csv", textnorm.FileToken(cat))
		path := filepath.Join(r.outputDir, perCategoryDir, name)
		if err := writeCSV(path, r.headers(), byCategory[cat]); err != nil {
			return nil, err
		}
		r.logger.Info("per-category file written",
			logging.String("category", cat),
			logging.String("path", path),
			logging.Int("rows", len(byCategory[cat])))
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteRejected writes the rejected-students audit report with the reason
// and the per-day presence detail.
func (r *Renderer) WriteRejected(rejected []attendance.Classified) (string, error) {
	if len(rejected) == 0 {
		r.logger.Debug("no rejected records, report skipped")
		return "", nil
	}
	headers := []string{"NOME", "CURSO", "MOTIVO", "FREQUENCIA", "DIAS_VALIDOS", "PRESENCAS", "DETALHE"}
	rows := make([][]string, 0, len(rejected))
	for _, rec := range rejected {
		rows = append(rows, []string{
			rec.Record.RawName,
			rec.Record.RawCategory,
			RejectionReason(rec),
			formatPercent(rec.Ratio),
			fmt.Sprintf("%d", rec.ValidDays),
			fmt.Sprintf("%d", rec.Present),
			rec.Record.PresenceDetail(),
		})
	}
	path := filepath.Join(r.outputDir, rejectedFile)
	if err := writeCSV(path, headers, rows); err != nil {
		return "", err
	}
	r.logger.Info("rejected report written",
		logging.String("path", path),
		logging.Int("rows", len(rows)))
	return path, nil
}

// WriteBorderline writes the manual-review report for pairings that scored
// below the inclusion cut.
func (r *Renderer) WriteBorderline(entries []linkage.Review) (string, error) {
	if len(entries) == 0 {
		r.logger.Debug("no borderline pairings, report skipped")
		return "", nil
	}
	headers := []string{"NOME_PRESENCA", "NOME_INSCRICAO", "CURSO", "SIMILARIDADE"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.RosterName,
			entry.EnrollmentName,
			entry.Category,
			formatScore(entry.Score),
		})
	}
	path := filepath.Join(r.outputDir, borderlineFile)
	if err := writeCSV(path, headers, rows); err != nil {
		return "", err
	}
	r.logger.Info("borderline report written",
		logging.String("path", path),
		logging.Int("rows", len(rows)))
	return path, nil
}

// WriteUnmatched writes approved roster records no enrollment could be
// linked to, with the closest rejected candidate for auditing.
func (r *Renderer) WriteUnmatched(entries []linkage.Unmatched) (string, error) {
	if len(entries) == 0 {
		r.logger.Debug("no unmatched records, report skipped")
		return "", nil
	}
	headers := []string{"NOME_PRESENCA", "CURSO", "MELHOR_CANDIDATO", "MELHOR_SIMILARIDADE"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.RosterName,
			entry.Category,
			entry.BestName,
			formatScore(entry.BestScore),
		})
	}
	path := filepath.Join(r.outputDir, unmatchedFile)
	if err := writeCSV(path, headers, rows); err != nil {
		return "", err
	}
	r.logger.Info("unmatched report written",
		logging.String("path", path),
		logging.Int("rows", len(rows)))
	return path, nil
}

// WriteAnomalies writes roster rows diverted before classification.
func (r *Renderer) WriteAnomalies(anomalies []attendance.Anomaly) (string, error) {
	if len(anomalies) == 0 {
		r.logger.Debug("no anomalies, report skipped")
		return "", nil
	}
	headers := []string{"LINHA", "TIPO", "DETALHE"}
	rows := make([][]string, 0, len(anomalies))
	for _, anomaly := range anomalies {
		rows = append(rows, []string{
			fmt.Sprintf("%d", anomaly.RowIndex),
			anomaly.Kind,
			anomaly.Details,
		})
	}
	path := filepath.Join(r.outputDir, anomaliesFile)
	if err := writeCSV(path, headers, rows); err != nil {
		return "", err
	}
	r.logger.Info("anomaly report written",
		logging.String("path", path),
		logging.Int("rows", len(rows)))
	return path, nil
}

// RejectionReason renders the human-readable reason for a rejection.
func RejectionReason(rec attendance.Classified) string {
	switch rec.Reason {
	case attendance.ReasonNoValidDays:
		return "sem presença registrada"
	case attendance.ReasonInsufficientPresence:
		return fmt.Sprintf("frequência insuficiente (%s)", formatPercent(rec.Ratio))
	}
	return ""
}

func (r *Renderer) headers() []string {
	headers := make([]string, len(r.fields))
	for i, field := range r.fields {
		headers[i] = field.Key
	}
	return headers
}

func (r *Renderer) certificateRow(cert linkage.Certificate) []string {
	row := make([]string, len(r.fields))
	for i, field := range r.fields {
		row[i] = cert.Fields[field.Key]
	}
	return row
}

func formatPercent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}

func writeCSV(path string, headers []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write report row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}
