package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"certlink/internal/attendance"
	"certlink/internal/category"
	"certlink/internal/config"
	"certlink/internal/dataset"
	"certlink/internal/enrollment"
	"certlink/internal/linkage"
	"certlink/internal/logging"
	"certlink/internal/report"
)

const lockFileName = ".certlink.lock"

// ErrOutputLocked is returned when another run holds the output directory.
var ErrOutputLocked = errors.New("another run is writing to this output directory")

// Summary is everything one run produced, for the final console output.
type Summary struct {
	RunID string

	RosterRows  int
	Approved    int
	Rejected    int
	Anomalies   int
	Enrollments int

	Certificates int
	Borderline   int
	Unmatched    int

	// Result and RejectedRecords carry the full detail so commands can
	// render the audit tables without re-running anything.
	Result          linkage.Result
	RejectedRecords []attendance.Classified
	AnomalyRecords  []attendance.Anomaly

	Artifacts report.Artifacts
}

// ApprovalRate returns approved over classified rows (anomalies excluded).
func (s *Summary) ApprovalRate() float64 {
	classified := s.Approved + s.Rejected
	if classified == 0 {
		return 0
	}
	return float64(s.Approved) / float64(classified)
}

// Pipeline wires the stages together for one configuration.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logging.NewComponentLogger(logger, "pipeline")}
}

// Run executes the full reconciliation over the two input files. Per-record
// problems are reported, never fatal; only unreadable inputs and unwritable
// outputs abort the run.
func (p *Pipeline) Run(ctx context.Context, attendancePath, enrollmentPath string) (*Summary, error) {
	if err := os.MkdirAll(p.cfg.Paths.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.OutputDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, ErrOutputLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			p.logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	runID := uuid.NewString()
	logger := p.logger.With(logging.String(logging.FieldRun, runID))
	logger.Info("run started",
		logging.String("attendance", attendancePath),
		logging.String("enrollment", enrollmentPath))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rosterTable, err := dataset.ReadFile(attendancePath)
	if err != nil {
		return nil, fmt.Errorf("read attendance table: %w", err)
	}
	enrollTable, err := dataset.ReadFile(enrollmentPath)
	if err != nil {
		return nil, fmt.Errorf("read enrollment table: %w", err)
	}

	records, err := attendance.ParseTable(rosterTable, p.cfg.Attendance)
	if err != nil {
		return nil, fmt.Errorf("parse attendance table: %w", err)
	}

	matcher := category.NewMatcher(p.cfg.Categories)
	classifier := attendance.NewClassifier(matcher, p.cfg.Attendance.CycleYear, logger)
	approved, rejected, anomalies := classifier.ClassifyAll(records)

	enrollments := enrollment.FromTable(enrollTable)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	engine := linkage.NewEngine(p.cfg, matcher, logger)
	result := engine.Link(approved, enrollments)
	sortCertificates(result.Certificates)

	renderer := report.NewRenderer(p.cfg, logger)
	artifacts, err := renderer.Render(result, rejected, anomalies)
	if err != nil {
		return nil, fmt.Errorf("render reports: %w", err)
	}

	summary := &Summary{
		RunID:           runID,
		RosterRows:      len(records),
		Approved:        len(approved),
		Rejected:        len(rejected),
		Anomalies:       len(anomalies),
		Enrollments:     len(enrollments),
		Certificates:    len(result.Certificates),
		Borderline:      len(result.Borderline),
		Unmatched:       len(result.Unmatched),
		Result:          result,
		RejectedRecords: rejected,
		AnomalyRecords:  anomalies,
		Artifacts:       artifacts,
	}
	logger.Info("run finished",
		logging.Int("roster_rows", summary.RosterRows),
		logging.Int("approved", summary.Approved),
		logging.Int("rejected", summary.Rejected),
		logging.Int("certificates", summary.Certificates),
		logging.Int("borderline", summary.Borderline),
		logging.Int("unmatched", summary.Unmatched))
	return summary, nil
}

// sortCertificates orders the output by category then display name so two
// runs over the same inputs emit byte-identical files.
func sortCertificates(certs []linkage.Certificate) {
	sort.SliceStable(certs, func(i, j int) bool {
		if certs[i].Category != certs[j].Category {
			return certs[i].Category < certs[j].Category
		}
		return certs[i].Name < certs[j].Name
	})
}
