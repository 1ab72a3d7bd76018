package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// Attendance describes the shape of the attendance roster table.
type Attendance struct {
	// NameColumn and CategoryColumn are the roster's identity headers.
	NameColumn     string `toml:"name_column"`
	CategoryColumn string `toml:"category_column"`
	// DayWindow is the number of trailing columns holding per-day presence
	// marks. The header of the last one is the completion date (DD/MM).
	DayWindow int `toml:"day_window"`
	// CycleYear is the certification cycle year used when formatting the
	// completion date. Zero means the current year.
	CycleYear int `toml:"cycle_year"`
}

// Enrollment names the form-field labels the linkage engine reads from the
// enrollment table.
type Enrollment struct {
	NameLabel      string `toml:"name_label"`
	CategoryLabel  string `toml:"category_label"`
	TimestampLabel string `toml:"timestamp_label"`
}

// Categories carries the category-matching tables. These are data, not
// logic: course catalogs change without recompilation.
type Categories struct {
	// KeywordGroups lists keyword roots; two labels match when both contain
	// a root from the same group in their compact form.
	KeywordGroups [][]string `toml:"keyword_groups"`
	// Aliases maps short/abbreviated roster labels to the canonical
	// long-form label used on the enrollment side. Keys are compared after
	// normalization.
	Aliases map[string]string `toml:"aliases"`
	// CertificateNames maps roster labels to the course name printed on the
	// certificate. Keys are compared after normalization.
	CertificateNames map[string]string `toml:"certificate_names"`
}

// Matching contains linkage tuning that is table-shaped rather than policy.
// Score thresholds are fixed policy constants in the linkage package.
type Matching struct {
	// Stopwords are connector words excluded from significant tokens.
	Stopwords []string `toml:"stopwords"`
	// BatchSize chunks the outer linkage loop. Throughput only; must not
	// change match results.
	BatchSize int `toml:"batch_size"`
}

// OutputField describes one column of the final certificate file.
type OutputField struct {
	// Key is the output column header.
	Key string `toml:"key"`
	// Source is the enrollment form label the value is copied from. Empty
	// means the field is filled from the attendance side (or left blank).
	Source string `toml:"source"`
	// Transform is applied on copy: "int" coerces numeric-looking text to an
	// integer (failure passes the raw value through), "upper" uppercases,
	// "name" applies display-name capitalization.
	Transform string `toml:"transform"`
}

// Output configures the rendered reports.
type Output struct {
	// Fields is the ordered output schema of the certificate file.
	Fields []OutputField `toml:"fields"`
	// PerCategory generates one certificate file per category.
	PerCategory bool `toml:"per_category"`
	// Workbook additionally writes an .xlsx workbook with one sheet per
	// category plus a summary sheet.
	Workbook bool `toml:"workbook"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for certlink.
//
// Configuration sections by subsystem:
//   - Paths: output and log directories
//   - Attendance: roster table shape and certification cycle
//   - Enrollment: form-field labels consumed by the linkage engine
//   - Categories: synonym/keyword/display-name tables
//   - Matching: stopword list and batch size
//   - Output: ordered output field schema and report toggles
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Attendance Attendance `toml:"attendance"`
	Enrollment Enrollment `toml:"enrollment"`
	Categories Categories `toml:"categories"`
	Matching   Matching   `toml:"matching"`
	Output     Output     `toml:"output"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/certlink/config.toml")
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. When no file exists the
// defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("certlink.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}
