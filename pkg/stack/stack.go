// Package stack smoke-tests the numeric stack linked into the binary: it
// reports library versions, then drives the tabular and array layers over
// fixed samples so a broken build fails here instead of in real work.
package stack

import (
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/envprobe/pkg/errors"
	"github.com/ajitpratap0/envprobe/pkg/frame"
	"github.com/ajitpratap0/envprobe/pkg/numeric"
)

// Report is the outcome of the stack smoke test.
type Report struct {
	Versions Versions       `json:"versions" yaml:"versions"`
	Table    TableReport    `json:"table" yaml:"table"`
	Arrays   numeric.Report `json:"arrays" yaml:"arrays"`
}

// TableReport is what the tabular smoke test printed, kept both as text
// for the human report and as data for structured output.
type TableReport struct {
	Rows     []map[string]any `json:"rows" yaml:"rows"`
	Describe *frame.Summary   `json:"describe" yaml:"describe"`
	GroupBy  []map[string]any `json:"group_by" yaml:"group_by"`

	Text        string `json:"-" yaml:"-"`
	Info        string `json:"-" yaml:"-"`
	GroupByText string `json:"-" yaml:"-"`
}

// Run executes the version report and both smoke tests. mem backs the
// Arrow buffers; nil means the Go allocator.
func Run(mem memory.Allocator) (*Report, error) {
	table, err := RunTable(mem)
	if err != nil {
		return nil, err
	}
	return &Report{
		Versions: ReadVersions(),
		Table:    *table,
		Arrays:   numeric.Run(),
	}, nil
}

// RunTable builds the sample frame, summarizes it and groups it by its
// categorical column.
func RunTable(mem memory.Allocator) (*TableReport, error) {
	f := frame.Sample(mem)
	defer f.Release()

	grouped, err := f.GroupBySum("C")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeCompute, "group by failed")
	}
	defer grouped.Release()

	return &TableReport{
		Rows:        f.Rows(),
		Describe:    f.Describe(),
		GroupBy:     grouped.Rows(),
		Text:        f.String(),
		Info:        f.Info(),
		GroupByText: grouped.String(),
	}, nil
}
