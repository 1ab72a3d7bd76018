package attendance

import (
	"log/slog"

	"certlink/internal/category"
	"certlink/internal/logging"
	"certlink/internal/textnorm"
)

// approvalThreshold is the minimum presence ratio for approval. Policy,
// not configuration.
const approvalThreshold = 0.60

// Verdict is the classification outcome for one roster record.
type Verdict int

const (
	Approved Verdict = iota
	Rejected
)

// Reason explains a rejection.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonNoValidDays: every mark in the window was unrecorded, so the
	// presence ratio is undefined.
	ReasonNoValidDays
	// ReasonInsufficientPresence: the ratio fell below the approval
	// threshold.
	ReasonInsufficientPresence
)

// Classified is a roster record plus its verdict. Approved records carry the
// display fields the linkage engine and reports need.
type Classified struct {
	Record  Record
	Verdict Verdict
	Reason  Reason
	// Ratio is presence over valid days; zero when no valid days exist.
	Ratio     float64
	ValidDays int
	Present   int

	// DisplayName is the capitalized form of the roster name.
	DisplayName string
	// CertificateCategory is the display name of the course for the
	// certificate.
	CertificateCategory string
	// CompletionDate is the formatted long-form completion date.
	CompletionDate string
}

// Anomaly is a roster row diverted before classification because identity
// fields are missing.
type Anomaly struct {
	RowIndex int
	Kind     string
	Details  string
}

// Classifier applies the presence policy to parsed roster records.
type Classifier struct {
	categories *category.Matcher
	cycleYear  int
	logger     *slog.Logger
}

// NewClassifier builds a classifier. The category matcher supplies the
// certificate display names; cycleYear anchors completion-date formatting.
func NewClassifier(categories *category.Matcher, cycleYear int, logger *slog.Logger) *Classifier {
	return &Classifier{
		categories: categories,
		cycleYear:  cycleYear,
		logger:     logging.NewComponentLogger(logger, "attendance"),
	}
}

// Classify applies the presence-ratio rule to one record. Callers are
// expected to have screened anomalies already; missing identity fields do
// not panic but classify on marks alone.
func (c *Classifier) Classify(rec Record) Classified {
	out := Classified{Record: rec}
	for _, mark := range rec.Marks {
		if !mark.Valid() {
			continue
		}
		out.ValidDays++
		if mark.CountsAsPresent() {
			out.Present++
		}
	}

	if out.ValidDays == 0 {
		out.Verdict = Rejected
		out.Reason = ReasonNoValidDays
		return out
	}

	out.Ratio = float64(out.Present) / float64(out.ValidDays)
	if out.Ratio < approvalThreshold {
		out.Verdict = Rejected
		out.Reason = ReasonInsufficientPresence
		return out
	}

	out.Verdict = Approved
	out.DisplayName = textnorm.CapitalizeName(rec.RawName)
	out.CertificateCategory = c.categories.CertificateName(rec.RawCategory)
	out.CompletionDate = FormatCompletionDate(rec.CompletionHeader(), c.cycleYear)
	return out
}

// ClassifyAll screens and classifies every record, splitting the results
// into approved, rejected, and anomalous rows. A row missing its name or
// category is an anomaly and is never classified; one bad row never stops
// the rest.
func (c *Classifier) ClassifyAll(records []Record) (approved, rejected []Classified, anomalies []Anomaly) {
	for i, rec := range records {
		if rec.RawName == "" || rec.RawCategory == "" {
			anomaly := Anomaly{
				RowIndex: i,
				Kind:     "missing identity fields",
				Details:  "name: " + quoteField(rec.RawName) + ", category: " + quoteField(rec.RawCategory),
			}
			anomalies = append(anomalies, anomaly)
			c.logger.Warn("roster row diverted to anomaly report",
				logging.Int("row", i),
				logging.String("kind", anomaly.Kind))
			continue
		}
		classified := c.Classify(rec)
		if classified.Verdict == Approved {
			approved = append(approved, classified)
		} else {
			rejected = append(rejected, classified)
		}
	}
	c.logger.Info("roster classified",
		logging.Int("total", len(records)),
		logging.Int("approved", len(approved)),
		logging.Int("rejected", len(rejected)),
		logging.Int("anomalies", len(anomalies)))
	return approved, rejected, anomalies
}

func quoteField(value string) string {
	return "'" + value + "'"
}
