package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAttendance(); err != nil {
		return err
	}
	if err := c.validateEnrollment(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAttendance() error {
	if c.Attendance.NameColumn == "" {
		return errors.New("attendance.name_column must be set")
	}
	if c.Attendance.CategoryColumn == "" {
		return errors.New("attendance.category_column must be set")
	}
	if c.Attendance.DayWindow < 1 {
		return errors.New("attendance.day_window must be at least 1")
	}
	return nil
}

func (c *Config) validateEnrollment() error {
	if c.Enrollment.NameLabel == "" {
		return errors.New("enrollment.name_label must be set")
	}
	if c.Enrollment.CategoryLabel == "" {
		return errors.New("enrollment.category_label must be set")
	}
	if c.Enrollment.TimestampLabel == "" {
		return errors.New("enrollment.timestamp_label must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.BatchSize < 1 {
		return errors.New("matching.batch_size must be at least 1")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if len(c.Output.Fields) == 0 {
		return errors.New("output.fields must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Output.Fields))
	for _, field := range c.Output.Fields {
		if field.Key == "" {
			return errors.New("output.fields entries require a key")
		}
		if _, dup := seen[field.Key]; dup {
			return fmt.Errorf("output.fields key %q is duplicated", field.Key)
		}
		seen[field.Key] = struct{}{}
		switch field.Transform {
		case "", "int", "upper", "name":
		default:
			return fmt.Errorf("output.fields transform %q is not supported", field.Transform)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
