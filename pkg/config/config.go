// Package config holds envprobe's configuration. Defaults reproduce the
// zero-argument behaviour: a full text report, ten million Monte-Carlo
// iterations and a one second CPU sample. A YAML file, ENVPROBE_*
// environment variables and command-line flags override them, in that
// order of increasing precedence.
//
// Example usage:
//
//	cfg, err := config.Load("envprobe.yaml", cmd.Flags())
//	if err != nil {
//	    return err
//	}
package config

import (
	"fmt"
	"time"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Report sections, in the order they run.
const (
	SectionSystem = "system"
	SectionStack  = "stack"
	SectionPi     = "pi"
)

// Color modes for the text report.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the complete envprobe configuration.
type Config struct {
	// Report controls what runs and how it is printed
	Report ReportConfig `yaml:"report" json:"report" mapstructure:"report"`

	// Logging controls diagnostic logging on stderr
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`

	// Metrics controls the optional Prometheus textfile
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" mapstructure:"metrics"`

	// Tracing controls optional span export
	Tracing TracingConfig `yaml:"tracing" json:"tracing" mapstructure:"tracing"`
}

// ReportConfig selects sections, output format and workload sizes.
type ReportConfig struct {
	// Format is text, json or yaml
	Format string `yaml:"format" json:"format" mapstructure:"format"`
	// Sections lists the sections to run (system, stack, pi)
	Sections []string `yaml:"sections" json:"sections" mapstructure:"sections"`
	// Iterations is the number of Monte-Carlo draws
	Iterations int `yaml:"iterations" json:"iterations" mapstructure:"iterations"`
	// CPUInterval is the per-core utilization sampling window
	CPUInterval time.Duration `yaml:"cpu_interval" json:"cpu_interval" mapstructure:"cpu_interval"`
	// Color is auto, always or never
	Color string `yaml:"color" json:"color" mapstructure:"color"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level" mapstructure:"level"`
	Encoding    string `yaml:"encoding" json:"encoding" mapstructure:"encoding"`
	Development bool   `yaml:"development" json:"development" mapstructure:"development"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	// Textfile is written after the run when non-empty
	Textfile  string `yaml:"textfile" json:"textfile" mapstructure:"textfile"`
	Namespace string `yaml:"namespace" json:"namespace" mapstructure:"namespace"`
}

// TracingConfig configures span export to stderr.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	ServiceName string `yaml:"service_name" json:"service_name" mapstructure:"service_name"`
}

// Default returns the configuration of a zero-argument run.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Format:      FormatText,
			Sections:    []string{SectionSystem, SectionStack, SectionPi},
			Iterations:  10_000_000,
			CPUInterval: time.Second,
			Color:       ColorAuto,
		},
		Logging: LoggingConfig{
			Level:    "error",
			Encoding: "console",
		},
		Metrics: MetricsConfig{
			Namespace: "envprobe",
		},
		Tracing: TracingConfig{
			ServiceName: "envprobe",
		},
	}
}

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("report.format must be one of text, json, yaml; got %q", c.Report.Format)
	}
	if len(c.Report.Sections) == 0 {
		return fmt.Errorf("report.sections must not be empty")
	}
	for _, s := range c.Report.Sections {
		switch s {
		case SectionSystem, SectionStack, SectionPi:
		default:
			return fmt.Errorf("unknown report section %q", s)
		}
	}
	if c.Report.Iterations <= 0 {
		return fmt.Errorf("report.iterations must be positive")
	}
	if c.Report.CPUInterval < 0 {
		return fmt.Errorf("report.cpu_interval cannot be negative")
	}
	switch c.Report.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("report.color must be one of auto, always, never; got %q", c.Report.Color)
	}
	if c.Metrics.Textfile != "" && c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace is required when metrics.textfile is set")
	}
	return nil
}

// HasSection reports whether name is among the configured sections.
func (r *ReportConfig) HasSection(name string) bool {
	for _, s := range r.Sections {
		if s == name {
			return true
		}
	}
	return false
}
