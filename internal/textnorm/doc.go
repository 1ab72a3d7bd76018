// Package textnorm provides the text canonicalization used throughout the
// matching pipeline.
//
// The primary use cases are:
//   - Normalizing raw names and category labels into a comparison-safe form
//   - Splitting normalized text into tokens and significant tokens
//   - Producing display-ready capitalized names and filesystem-safe tokens
//
// Normalization lowercases, trims, removes parenthesized annotations, strips
// the Portuguese diacritic set by direct substitution, and collapses
// whitespace runs. It is idempotent and never fails: malformed input degrades
// to the empty string.
package textnorm
