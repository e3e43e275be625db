// Package report renders the results of a probe run: a streaming text
// report for people, or a single JSON or YAML document for machines.
package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/envprobe/pkg/errors"
	"github.com/ajitpratap0/envprobe/pkg/montecarlo"
	"github.com/ajitpratap0/envprobe/pkg/stack"
	"github.com/ajitpratap0/envprobe/pkg/sysinfo"
)

// Report aggregates every section of a run. Sections that did not run are
// nil and left out of structured output.
type Report struct {
	System *sysinfo.Report    `json:"system,omitempty" yaml:"system,omitempty"`
	Stack  *stack.Report      `json:"stack,omitempty" yaml:"stack,omitempty"`
	Pi     *montecarlo.Result `json:"pi,omitempty" yaml:"pi,omitempty"`
}

// WriteJSON writes r as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeOutput, "failed to encode report as JSON")
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return errors.Wrap(err, errors.ErrorTypeOutput, "failed to write report")
	}
	return nil
}

// WriteYAML writes r as a YAML document.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, errors.ErrorTypeOutput, "failed to encode report as YAML")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeOutput, "failed to write report")
	}
	return nil
}
