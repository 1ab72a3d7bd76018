// Package report renders the run's outputs: the certificate CSV (plus
// optional per-category files and an Excel workbook) and the audit reports
// for rejected, borderline, unmatched, and anomalous records. Console tables
// live here too so every command renders them the same way.
package report
