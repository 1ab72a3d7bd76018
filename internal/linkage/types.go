package linkage

// Match tier thresholds. Policy constants, deliberately not configuration:
// downstream reviewers rely on the bands staying put between runs.
const (
	// includeThreshold: at or above, the pairing is trusted and a
	// certificate is produced.
	includeThreshold = 0.80
	// borderlineThreshold: at or above (but below include), the pairing is
	// reported for manual review and nothing is produced.
	borderlineThreshold = 0.70
	// earlyExitThreshold: a fallback scan stops at the first candidate
	// strictly above this score.
	earlyExitThreshold = 0.90
)

// Tier classifies an accepted pairing by confidence.
type Tier int

const (
	TierUnmatched Tier = iota
	TierBorderline
	TierIncluded
)

// ClassifyScore buckets a similarity score into its confidence tier.
func ClassifyScore(score float64) Tier {
	switch {
	case score >= includeThreshold:
		return TierIncluded
	case score >= borderlineThreshold:
		return TierBorderline
	}
	return TierUnmatched
}

// String names the tier for logs and reports.
func (t Tier) String() string {
	switch t {
	case TierIncluded:
		return "included"
	case TierBorderline:
		return "borderline"
	}
	return "unmatched"
}

// Output schema keys the engine overlays from the attendance side. The
// configured field schema is free-form, but when these keys are present
// their values always come from the roster, never from the enrollment form.
const (
	FieldName           = "NOME"
	FieldCategory       = "CURSO"
	FieldCompletionDate = "DATA_CONCLUSAO"
)

// Certificate is the terminal entity: one per linked attendance identity,
// created at Included confidence and never mutated afterward.
type Certificate struct {
	// Name and Category are the display values, kept alongside Fields for
	// sorting and grouping.
	Name     string
	Category string
	// Fields holds one value per configured output column, keyed by column
	// header. Absent enrollment values leave the schema default (empty).
	Fields map[string]string
}

// Review is a borderline pairing surfaced for a human decision.
type Review struct {
	RosterName     string
	EnrollmentName string
	Category       string
	Score          float64
}

// Unmatched is an approved attendance record no enrollment could be linked
// to. BestName/BestScore describe the closest rejected candidate so the
// decision can be audited; BestName is empty when nothing scored at all.
type Unmatched struct {
	RosterName string
	Category   string
	BestName   string
	BestScore  float64
}

// CategoryStats aggregates outcomes per raw roster category.
type CategoryStats struct {
	Category     string
	Approved     int
	Certificates int
}

// Result carries everything the engine produces for one run.
type Result struct {
	Certificates []Certificate
	Borderline   []Review
	Unmatched    []Unmatched
	// Stats is ordered by first appearance of each category in the input.
	Stats []CategoryStats
}
