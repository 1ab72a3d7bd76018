// Package similarity scores the closeness of two normalized strings.
//
// Three signals are provided:
//   - Ratio: a sequence-alignment ratio with Gestalt pattern-matching
//     semantics (longest matching blocks, 2M/T), the metric the pipeline's
//     thresholds are tuned against
//   - SubsetMatch: a rule ladder that recognizes when one name's significant
//     tokens are contained in another, which plain Ratio under-scores
//   - TokenOverlap: Jaccard overlap of significant token sets
//
// Inputs are expected to be canonicalized with textnorm.Normalize first.
package similarity
