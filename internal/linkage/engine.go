// Package linkage pairs approved attendance records with their best
// enrollment record when no stable shared identifier exists.
//
// Names are inconsistently spelled, abbreviated, and padded across the two
// sources, so the engine combines several similarity signals (direct ratio,
// token subset containment, token overlap) with category equivalence, then
// classifies the winning score into confidence tiers. The search is a plain
// O(n·m) scan: the stated scale is a few thousand rows and an index would
// buy nothing but complexity.
package linkage

import (
	"log/slog"
	"sort"
	"strings"

	"certlink/internal/attendance"
	"certlink/internal/category"
	"certlink/internal/config"
	"certlink/internal/enrollment"
	"certlink/internal/logging"
	"certlink/internal/similarity"
	"certlink/internal/textnorm"
)

// Engine links classified attendance to enrollment records.
type Engine struct {
	categories *category.Matcher
	stopwords  map[string]struct{}
	fields     []config.OutputField
	labels     config.Enrollment
	batchSize  int
	logger     *slog.Logger
}

// NewEngine builds an engine from configuration. The logger is the injected
// sink for per-record decisions; pass nil to discard them.
func NewEngine(cfg *config.Config, categories *category.Matcher, logger *slog.Logger) *Engine {
	batch := cfg.Matching.BatchSize
	if batch < 1 {
		batch = 1
	}
	return &Engine{
		categories: categories,
		stopwords:  textnorm.StopwordSet(cfg.Matching.Stopwords),
		fields:     cfg.Output.Fields,
		labels:     cfg.Enrollment,
		batchSize:  batch,
		logger:     logging.NewComponentLogger(logger, "linkage"),
	}
}

// candidate is an ephemeral pairing produced during search and discarded
// once a winner is picked.
type candidate struct {
	record    enrollment.Record
	name      string
	score     float64
	timestamp string
}

// Link searches the enrollment dataset for the best pairing of every
// approved attendance record and classifies each outcome.
//
// Results are deterministic for fixed inputs: iteration follows input order,
// sorting is stable, and ties beyond the submission timestamp keep input
// order. The dedup key (normalized name + raw category) guarantees at most
// one certificate per attendance identity and category; the key is only
// marked resolved when a certificate is actually produced, so borderline and
// unmatched records are reported, not silently dropped.
func (e *Engine) Link(approved []attendance.Classified, enrollments []enrollment.Record) Result {
	var result Result
	resolved := make(map[string]bool, len(approved))
	statIndex := make(map[string]int)

	for start := 0; start < len(approved); start += e.batchSize {
		end := start + e.batchSize
		if end > len(approved) {
			end = len(approved)
		}
		e.logger.Debug("linking batch",
			logging.Int("from", start),
			logging.Int("to", end),
			logging.Int("total", len(approved)))

		for _, rec := range approved[start:end] {
			e.linkOne(rec, enrollments, resolved, statIndex, &result)
		}
	}

	e.logger.Info("linkage finished",
		logging.Int("approved", len(approved)),
		logging.Int("certificates", len(result.Certificates)),
		logging.Int("borderline", len(result.Borderline)),
		logging.Int("unmatched", len(result.Unmatched)))
	return result
}

func (e *Engine) linkOne(
	rec attendance.Classified,
	enrollments []enrollment.Record,
	resolved map[string]bool,
	statIndex map[string]int,
	result *Result,
) {
	rawCategory := rec.Record.RawCategory
	idx, ok := statIndex[rawCategory]
	if !ok {
		idx = len(result.Stats)
		statIndex[rawCategory] = idx
		result.Stats = append(result.Stats, CategoryStats{Category: rawCategory})
	}
	result.Stats[idx].Approved++

	nameNorm := textnorm.Normalize(rec.Record.RawName)
	key := nameNorm + "|" + rawCategory
	if resolved[key] {
		e.logger.Debug("duplicate attendance identity skipped",
			logging.String("name", rec.Record.RawName),
			logging.String("category", rawCategory))
		return
	}

	winner, winnerOK, bestName, bestScore := e.search(nameNorm, rawCategory, enrollments)

	if !winnerOK {
		result.Unmatched = append(result.Unmatched, Unmatched{
			RosterName: rec.Record.RawName,
			Category:   rawCategory,
			BestName:   bestName,
			BestScore:  bestScore,
		})
		e.logger.Info("no enrollment link",
			logging.String("name", rec.Record.RawName),
			logging.String("category", rawCategory),
			logging.Float64("best_score", bestScore))
		return
	}

	tier := ClassifyScore(winner.score)
	e.logger.Info("enrollment link scored",
		logging.String("name", rec.Record.RawName),
		logging.String("enrollment_name", winner.name),
		logging.String("category", rawCategory),
		logging.Float64("score", winner.score),
		logging.String("tier", tier.String()))

	switch tier {
	case TierIncluded:
		resolved[key] = true
		result.Stats[idx].Certificates++
		result.Certificates = append(result.Certificates, e.materialize(rec, winner.record))
	case TierBorderline:
		result.Borderline = append(result.Borderline, Review{
			RosterName:     rec.Record.RawName,
			EnrollmentName: winner.name,
			Category:       rawCategory,
			Score:          winner.score,
		})
	default:
		result.Unmatched = append(result.Unmatched, Unmatched{
			RosterName: rec.Record.RawName,
			Category:   rawCategory,
			BestName:   winner.name,
			BestScore:  winner.score,
		})
	}
}

// search finds the winning enrollment for one attendance identity. It first
// collects every enrollment where both the name and the category agree and
// picks the highest score (ties: more recent submission, then input order).
// When that yields nothing it falls back to a category-blind name scan,
// accepting only a score at or above the borderline threshold; a candidate
// above the early-exit threshold wins immediately, a deliberate greedy
// shortcut that trades global optimality for speed.
func (e *Engine) search(nameNorm, rawCategory string, enrollments []enrollment.Record) (winner candidate, ok bool, bestName string, bestScore float64) {
	var candidates []candidate
	for _, enr := range enrollments {
		enrName, _ := enr.Get(e.labels.NameLabel)
		enrCategory, _ := enr.Get(e.labels.CategoryLabel)
		enrNorm := textnorm.Normalize(enrName)
		if enrNorm == "" {
			continue
		}
		if !similarity.NamesSimilar(nameNorm, enrNorm, e.stopwords) {
			continue
		}
		if !e.categories.Match(rawCategory, enrCategory) {
			continue
		}
		timestamp, _ := enr.Get(e.labels.TimestampLabel)
		candidates = append(candidates, candidate{
			record:    enr,
			name:      enrName,
			score:     similarity.BestScore(nameNorm, enrNorm, e.stopwords),
			timestamp: timestamp,
		})
	}

	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			return candidates[i].timestamp > candidates[j].timestamp
		})
		top := candidates[0]
		return top, true, top.name, top.score
	}

	// Category-blind fallback across all enrollments.
	bestIdx := -1
	for i, enr := range enrollments {
		enrName, _ := enr.Get(e.labels.NameLabel)
		enrNorm := textnorm.Normalize(enrName)
		if enrNorm == "" {
			continue
		}
		score := similarity.BestScore(nameNorm, enrNorm, e.stopwords)
		if score > bestScore {
			bestIdx, bestScore, bestName = i, score, enrName
		}
		if score > earlyExitThreshold {
			break
		}
	}
	if bestIdx >= 0 && bestScore >= borderlineThreshold {
		timestamp, _ := enrollments[bestIdx].Get(e.labels.TimestampLabel)
		return candidate{
			record:    enrollments[bestIdx],
			name:      bestName,
			score:     bestScore,
			timestamp: timestamp,
		}, true, bestName, bestScore
	}
	return candidate{}, false, bestName, bestScore
}

// materialize builds the certificate by overlaying enrollment fields onto
// the configured schema. Attendance-derived values always win for the name,
// category, and completion date columns.
func (e *Engine) materialize(rec attendance.Classified, enr enrollment.Record) Certificate {
	fields := make(map[string]string, len(e.fields))
	for _, field := range e.fields {
		fields[field.Key] = ""
		if field.Source == "" {
			continue
		}
		value, present := enr.Get(field.Source)
		if !present {
			continue
		}
		switch field.Transform {
		case "int":
			value = enrollment.CoerceInt(value)
		case "upper":
			value = strings.ToUpper(strings.TrimSpace(value))
		case "name":
			value = textnorm.CapitalizeName(value)
		}
		fields[field.Key] = value
	}

	if _, ok := fields[FieldName]; ok {
		fields[FieldName] = rec.DisplayName
	}
	if _, ok := fields[FieldCategory]; ok {
		fields[FieldCategory] = rec.CertificateCategory
	}
	if _, ok := fields[FieldCompletionDate]; ok {
		fields[FieldCompletionDate] = rec.CompletionDate
	}

	return Certificate{
		Name:     rec.DisplayName,
		Category: rec.CertificateCategory,
		Fields:   fields,
	}
}
