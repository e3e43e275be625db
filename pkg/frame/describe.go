package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ajitpratap0/envprobe/pkg/numeric"
)

// Statistic names in the order Describe reports them.
var summaryStats = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Summary holds descriptive statistics for the numeric columns of a frame.
// Values is indexed [statistic][column].
type Summary struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Stats   []string    `json:"stats" yaml:"stats"`
	Values  [][]float64 `json:"values" yaml:"values"`
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max of every numeric column, ignoring nulls.
func (f *Frame) Describe() *Summary {
	s := &Summary{
		Stats:  append([]string(nil), summaryStats...),
		Values: make([][]float64, len(summaryStats)),
	}

	for i, field := range f.rec.Schema().Fields() {
		x, ok := numericValues(f.rec.Column(i))
		if !ok {
			continue
		}
		s.Columns = append(s.Columns, field.Name)

		if len(x) == 0 {
			nan := math.NaN()
			for j := range s.Values {
				s.Values[j] = append(s.Values[j], nan)
			}
			s.Values[0][len(s.Values[0])-1] = 0
			continue
		}

		mean, std := stat.MeanStdDev(x, nil)
		col := []float64{
			float64(len(x)),
			mean,
			std,
			floats.Min(x),
			numeric.Quantile(x, 0.25),
			numeric.Quantile(x, 0.5),
			numeric.Quantile(x, 0.75),
			floats.Max(x),
		}
		for j, v := range col {
			s.Values[j] = append(s.Values[j], v)
		}
	}
	return s
}

// Get returns one statistic of one column.
func (s *Summary) Get(statistic, column string) (float64, bool) {
	si, ci := -1, -1
	for i, name := range s.Stats {
		if name == statistic {
			si = i
		}
	}
	for i, name := range s.Columns {
		if name == column {
			ci = i
		}
	}
	if si < 0 || ci < 0 {
		return 0, false
	}
	return s.Values[si][ci], true
}

// String renders the summary as a table, one statistic per row.
func (s *Summary) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "\t%s\t\n", strings.Join(s.Columns, "\t"))
	for i, name := range s.Stats {
		fmt.Fprintf(w, "%s\t", name)
		for _, v := range s.Values[i] {
			fmt.Fprintf(w, "%s\t", strconv.FormatFloat(v, 'f', 6, 64))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return sb.String()
}
