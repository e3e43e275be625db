// Package numeric exercises the dense-array stack (gonum) with fixed
// samples: reductions of a vector, axis sums and a matrix product.
package numeric

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Report holds the results of the array smoke test.
type Report struct {
	Vector VectorStats `json:"vector" yaml:"vector"`
	Matrix MatrixStats `json:"matrix" yaml:"matrix"`
}

// VectorStats are reductions of a one-dimensional sample.
type VectorStats struct {
	Values []float64 `json:"values" yaml:"values"`
	Sum    float64   `json:"sum" yaml:"sum"`
	Mean   float64   `json:"mean" yaml:"mean"`
	// Std is the population standard deviation.
	Std float64 `json:"std" yaml:"std"`
}

// MatrixStats are reductions of a two-dimensional sample and its product
// with itself.
type MatrixStats struct {
	Rows    int         `json:"rows" yaml:"rows"`
	Cols    int         `json:"cols" yaml:"cols"`
	Values  [][]float64 `json:"values" yaml:"values"`
	Total   float64     `json:"total" yaml:"total"`
	RowSums []float64   `json:"row_sums" yaml:"row_sums"`
	ColSums []float64   `json:"col_sums" yaml:"col_sums"`
	Product [][]float64 `json:"product" yaml:"product"`
}

// Run builds the sample vector [1..5] and the 3x3 grid [[1..9]] and
// reduces both.
func Run() Report {
	vector := []float64{1, 2, 3, 4, 5}
	grid := mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})

	return Report{
		Vector: DescribeVector(vector),
		Matrix: DescribeMatrix(grid),
	}
}

// DescribeVector reduces x to its sum, mean and population standard
// deviation.
func DescribeVector(x []float64) VectorStats {
	mean, std := stat.PopMeanStdDev(x, nil)
	return VectorStats{
		Values: append([]float64(nil), x...),
		Sum:    floats.Sum(x),
		Mean:   mean,
		Std:    std,
	}
}

// DescribeMatrix reduces m along both axes and multiplies it by itself.
// m must be square for the product; a non-square m panics in mat.
func DescribeMatrix(m mat.Matrix) MatrixStats {
	r, c := m.Dims()
	return MatrixStats{
		Rows:    r,
		Cols:    c,
		Values:  Rows(m),
		Total:   mat.Sum(m),
		RowSums: RowSums(m),
		ColSums: ColSums(m),
		Product: Rows(Product(m, m)),
	}
}

// RowSums sums m along each row.
func RowSums(m mat.Matrix) []float64 {
	r, _ := m.Dims()
	sums := make([]float64, r)
	for i := range sums {
		sums[i] = floats.Sum(mat.Row(nil, i, m))
	}
	return sums
}

// ColSums sums m along each column.
func ColSums(m mat.Matrix) []float64 {
	_, c := m.Dims()
	sums := make([]float64, c)
	for j := range sums {
		sums[j] = floats.Sum(mat.Col(nil, j, m))
	}
	return sums
}

// Product returns the matrix product a·b.
func Product(a, b mat.Matrix) *mat.Dense {
	var p mat.Dense
	p.Mul(a, b)
	return &p
}

// Rows copies m into a slice of rows.
func Rows(m mat.Matrix) [][]float64 {
	r, _ := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, m)
	}
	return rows
}

// Quantile returns the p-quantile (0 <= p <= 1) of x by linear
// interpolation between closest ranks, the convention tabular libraries
// use for quartiles. x need not be sorted. NaN for empty x.
func Quantile(x []float64, p float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	hi := math.Ceil(h)
	return sorted[int(lo)] + (h-lo)*(sorted[int(hi)]-sorted[int(lo)])
}
