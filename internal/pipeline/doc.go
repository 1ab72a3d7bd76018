// Package pipeline runs a full reconciliation: read the roster and the
// enrollment form, classify attendance, link the approved records, and
// render every report. One run holds an advisory lock on the output
// directory so concurrent runs cannot interleave files.
package pipeline
