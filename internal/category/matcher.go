// Package category decides whether two course labels denote the same
// offering and resolves the display names used downstream.
//
// All matching knowledge is table data from configuration: keyword roots,
// abbreviation aliases, and certificate display names. The matcher itself
// only normalizes and looks things up.
package category

import (
	"strings"

	"certlink/internal/config"
	"certlink/internal/textnorm"
)

// Matcher answers label-equivalence queries against a loaded category table.
type Matcher struct {
	keywordGroups [][]string
	aliases       map[string]string
	certificates  map[string]string
}

// NewMatcher builds a Matcher from the configured tables. Alias and
// certificate-name keys are normalized once up front.
func NewMatcher(tables config.Categories) *Matcher {
	m := &Matcher{
		keywordGroups: make([][]string, 0, len(tables.KeywordGroups)),
		aliases:       make(map[string]string, len(tables.Aliases)),
		certificates:  make(map[string]string, len(tables.CertificateNames)),
	}
	for _, group := range tables.KeywordGroups {
		compact := make([]string, 0, len(group))
		for _, kw := range group {
			if kw = textnorm.CompactLabel(kw); kw != "" {
				compact = append(compact, kw)
			}
		}
		if len(compact) > 0 {
			m.keywordGroups = append(m.keywordGroups, compact)
		}
	}
	for label, canonical := range tables.Aliases {
		m.aliases[textnorm.Normalize(label)] = canonical
	}
	for label, display := range tables.CertificateNames {
		m.certificates[textnorm.Normalize(label)] = display
	}
	return m
}

// Match reports whether a roster category label and an enrollment category
// label denote the same offering. Checked in order: normalized equality,
// shared keyword root, alias mapping to the enrollment-side canonical form.
func (m *Matcher) Match(rosterLabel, enrollLabel string) bool {
	rosterNorm := textnorm.Normalize(rosterLabel)
	enrollNorm := textnorm.Normalize(enrollLabel)
	if rosterNorm == "" || enrollNorm == "" {
		return false
	}
	if rosterNorm == enrollNorm {
		return true
	}

	rosterCompact := textnorm.CompactLabel(rosterLabel)
	enrollCompact := textnorm.CompactLabel(enrollLabel)
	for _, group := range m.keywordGroups {
		if containsAny(rosterCompact, group) && containsAny(enrollCompact, group) {
			return true
		}
	}

	if canonical, ok := m.aliases[rosterNorm]; ok {
		if textnorm.Normalize(canonical) == enrollNorm {
			return true
		}
		if textnorm.CompactLabel(canonical) == enrollCompact {
			return true
		}
	}
	return false
}

// CanonicalEnrollmentLabel maps a roster label to the long-form label used on
// the enrollment side, or returns the input unchanged when no alias exists.
func (m *Matcher) CanonicalEnrollmentLabel(rosterLabel string) string {
	if canonical, ok := m.aliases[textnorm.Normalize(rosterLabel)]; ok {
		return canonical
	}
	return rosterLabel
}

// CertificateName returns the course name printed on the certificate for a
// roster label, falling back to the label itself.
func (m *Matcher) CertificateName(rosterLabel string) string {
	if display, ok := m.certificates[textnorm.Normalize(rosterLabel)]; ok {
		return display
	}
	return rosterLabel
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
