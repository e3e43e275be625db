package stack

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	r, err := Run(mem)
	require.NoError(t, err)

	assert.Len(t, r.Table.Rows, 3)
	assert.Len(t, r.Table.GroupBy, 3)
	for i, g := range r.Table.GroupBy {
		row := r.Table.Rows[i]
		assert.Equal(t, row["C"], g["C"])
		assert.Equal(t, row["A"], g["A"])
		assert.Equal(t, row["B"], g["B"])
	}
	assert.Equal(t, []string{"A", "B"}, r.Table.Describe.Columns)
	assert.True(t, strings.HasPrefix(r.Table.Info, "<frame.Frame>"))
	assert.NotEmpty(t, r.Table.Text)
	assert.NotEmpty(t, r.Table.GroupByText)

	assert.Equal(t, []float64{6, 15, 24}, r.Arrays.Matrix.RowSums)
	assert.Equal(t, []float64{12, 15, 18}, r.Arrays.Matrix.ColSums)
}

func TestReadVersions(t *testing.T) {
	v := ReadVersions()

	assert.Equal(t, runtime.Version(), v.Go)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, v.Platform)
	for _, s := range []string{v.Gonum, v.Arrow, v.Gopsutil} {
		assert.NotEmpty(t, s)
	}
}

func TestVersionsFromReplacedModules(t *testing.T) {
	info := &debug.BuildInfo{Deps: []*debug.Module{
		{Path: GonumModule, Version: "v0.15.1", Replace: &debug.Module{Path: "../gonum"}},
		{Path: ArrowModule, Version: "v18.0.0", Replace: &debug.Module{Path: "github.com/fork/arrow-go/v18", Version: "v18.0.1"}},
		{Path: GopsutilModule, Version: "v3.24.5"},
	}}

	v := versionsFrom(info)
	assert.Equal(t, "(devel)", v.Gonum)
	assert.Equal(t, "v18.0.1", v.Arrow)
	assert.Equal(t, "v3.24.5", v.Gopsutil)
}

func TestVersionsFromNoBuildInfo(t *testing.T) {
	v := versionsFrom(nil)
	assert.Equal(t, "unknown", v.Gonum)
	assert.Equal(t, "unknown", v.Arrow)
	assert.Equal(t, runtime.Version(), v.Go)
}
