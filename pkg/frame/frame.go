// Package frame is a small tabular layer over Apache Arrow records: enough
// of a data frame to print a table, summarize its numeric columns and
// aggregate by a categorical key.
package frame

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Frame wraps an Arrow record. Frames own one reference to their record;
// call Release when done.
type Frame struct {
	rec arrow.Record
	mem memory.Allocator
}

// New wraps rec, taking an additional reference to it. mem is used for
// frames derived from this one; nil means the Go allocator.
func New(rec arrow.Record, mem memory.Allocator) *Frame {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	rec.Retain()
	return &Frame{rec: rec, mem: mem}
}

// Sample builds the fixed smoke-test table
//
//	A: [1 2 3]  B: [4 5 6]  C: [a b c]
func Sample(mem memory.Allocator) *Frame {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "A", Type: arrow.PrimitiveTypes.Int64},
		{Name: "B", Type: arrow.PrimitiveTypes.Int64},
		{Name: "C", Type: arrow.BinaryTypes.String},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	b.Field(1).(*array.Int64Builder).AppendValues([]int64{4, 5, 6}, nil)
	b.Field(2).(*array.StringBuilder).AppendValues([]string{"a", "b", "c"}, nil)

	return &Frame{rec: b.NewRecord(), mem: mem}
}

// Release drops the frame's reference to its record.
func (f *Frame) Release() {
	if f.rec != nil {
		f.rec.Release()
		f.rec = nil
	}
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	return int(f.rec.NumRows())
}

// Columns returns the column names in schema order.
func (f *Frame) Columns() []string {
	fields := f.rec.Schema().Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}
	return names
}

// Rows returns the table as one map per row, nulls as nil.
func (f *Frame) Rows() []map[string]any {
	cols := f.Columns()
	rows := make([]map[string]any, f.NumRows())
	for i := range rows {
		row := make(map[string]any, len(cols))
		for j, name := range cols {
			row[name] = valueAt(f.rec.Column(j), i)
		}
		rows[i] = row
	}
	return rows
}

// String renders the table with a row index, right aligned.
func (f *Frame) String() string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(w, "\t%s\t\n", strings.Join(f.Columns(), "\t"))
	for i := 0; i < f.NumRows(); i++ {
		fmt.Fprintf(w, "%d\t", i)
		for j := 0; j < int(f.rec.NumCols()); j++ {
			fmt.Fprintf(w, "%s\t", formatValue(valueAt(f.rec.Column(j), i)))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return sb.String()
}

// Info describes the frame's shape, per-column non-null counts and types,
// and the bytes held by its Arrow buffers.
func (f *Frame) Info() string {
	var sb strings.Builder
	n := f.NumRows()

	sb.WriteString("<frame.Frame>\n")
	if n == 0 {
		sb.WriteString("RangeIndex: 0 entries\n")
	} else {
		fmt.Fprintf(&sb, "RangeIndex: %d entries, 0 to %d\n", n, n-1)
	}
	fmt.Fprintf(&sb, "Data columns (total %d columns):\n", f.rec.NumCols())

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, " #\tColumn\tNon-Null Count\tDtype")
	fmt.Fprintln(w, "---\t------\t--------------\t-----")

	var dtypeOrder []string
	dtypeCount := make(map[string]int)
	for i, field := range f.rec.Schema().Fields() {
		col := f.rec.Column(i)
		dtype := field.Type.String()
		fmt.Fprintf(w, " %d\t%s\t%d non-null\t%s\n", i, field.Name, col.Len()-col.NullN(), dtype)

		if dtypeCount[dtype] == 0 {
			dtypeOrder = append(dtypeOrder, dtype)
		}
		dtypeCount[dtype]++
	}
	w.Flush()

	parts := make([]string, len(dtypeOrder))
	for i, dtype := range dtypeOrder {
		parts[i] = fmt.Sprintf("%s(%d)", dtype, dtypeCount[dtype])
	}
	fmt.Fprintf(&sb, "dtypes: %s\n", strings.Join(parts, ", "))
	fmt.Fprintf(&sb, "memory usage: %d bytes\n", f.MemoryUsage())
	return sb.String()
}

// MemoryUsage sums the lengths of every column buffer.
func (f *Frame) MemoryUsage() int {
	total := 0
	for i := 0; i < int(f.rec.NumCols()); i++ {
		for _, buf := range f.rec.Column(i).Data().Buffers() {
			if buf != nil {
				total += buf.Len()
			}
		}
	}
	return total
}

func valueAt(col arrow.Array, i int) any {
	if col.IsNull(i) {
		return nil
	}
	switch c := col.(type) {
	case *array.Int64:
		return c.Value(i)
	case *array.Float64:
		return c.Value(i)
	case *array.String:
		return c.Value(i)
	default:
		return c.ValueStr(i)
	}
}

func formatValue(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}

// numericValues returns the non-null values of an int64 or float64 column.
func numericValues(col arrow.Array) ([]float64, bool) {
	switch c := col.(type) {
	case *array.Int64:
		out := make([]float64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if c.IsValid(i) {
				out = append(out, float64(c.Value(i)))
			}
		}
		return out, true
	case *array.Float64:
		out := make([]float64, 0, c.Len())
		for i := 0; i < c.Len(); i++ {
			if c.IsValid(i) {
				out = append(out, c.Value(i))
			}
		}
		return out, true
	default:
		return nil, false
	}
}
