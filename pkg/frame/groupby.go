package frame

import (
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/ajitpratap0/envprobe/pkg/errors"
)

// GroupBySum groups rows by the string column key and sums every numeric
// column within each group. The result has the key column first, then the
// numeric columns in their original order; groups are sorted by key. Rows
// with a null key are dropped and null values are skipped in sums.
// Non-numeric columns other than the key are left out.
func (f *Frame) GroupBySum(key string) (*Frame, error) {
	schema := f.rec.Schema()
	indices := schema.FieldIndices(key)
	if len(indices) == 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation, "no column named %q", key)
	}
	keyCol, ok := f.rec.Column(indices[0]).(*array.String)
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeValidation, "group key %q must be a string column", key).
			WithDetail("type", schema.Field(indices[0]).Type.String())
	}

	groups := make(map[string][]int)
	for i := 0; i < keyCol.Len(); i++ {
		if keyCol.IsNull(i) {
			continue
		}
		k := keyCol.Value(i)
		groups[k] = append(groups[k], i)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := []arrow.Field{{Name: key, Type: arrow.BinaryTypes.String}}
	var valueCols []int
	for i, field := range schema.Fields() {
		if i == indices[0] {
			continue
		}
		switch field.Type.ID() {
		case arrow.INT64, arrow.FLOAT64:
			fields = append(fields, arrow.Field{Name: field.Name, Type: field.Type})
			valueCols = append(valueCols, i)
		}
	}

	b := array.NewRecordBuilder(f.mem, arrow.NewSchema(fields, nil))
	defer b.Release()

	b.Field(0).(*array.StringBuilder).AppendValues(keys, nil)
	for out, in := range valueCols {
		switch col := f.rec.Column(in).(type) {
		case *array.Int64:
			fb := b.Field(out + 1).(*array.Int64Builder)
			for _, k := range keys {
				var sum int64
				for _, row := range groups[k] {
					if col.IsValid(row) {
						sum += col.Value(row)
					}
				}
				fb.Append(sum)
			}
		case *array.Float64:
			fb := b.Field(out + 1).(*array.Float64Builder)
			for _, k := range keys {
				var sum float64
				for _, row := range groups[k] {
					if col.IsValid(row) {
						sum += col.Value(row)
					}
				}
				fb.Append(sum)
			}
		}
	}

	return &Frame{rec: b.NewRecord(), mem: f.mem}, nil
}
