// Package config loads, validates, and provides defaults for certlink
// configuration.
//
// Configuration lives in a TOML file resolved from an explicit --config
// path, ~/.config/certlink/config.toml, or ./certlink.toml, in that order.
// Matching thresholds are deliberately not configuration: they are policy
// constants owned by the packages that apply them. What is configuration is
// everything table-shaped — category synonyms, keyword groups, stopwords,
// the enrollment field labels, and the ordered output field schema.
package config
