package sysinfo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/envprobe/pkg/sysinfo"
)

func TestHostSourceCollect(t *testing.T) {
	if testing.Short() {
		t.Skip("samples the real host")
	}
	c := sysinfo.NewCollector(sysinfo.NewHostSource(), sysinfo.WithInterval(100*time.Millisecond))

	report, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, report.Host.System)
	assert.NotEmpty(t, report.Host.Release)
	assert.NotEmpty(t, report.Host.Machine)
	assert.Positive(t, report.CPU.LogicalCores)
	assert.GreaterOrEqual(t, report.CPU.LogicalCores, report.CPU.PhysicalCores)
	assert.Positive(t, report.CPU.Frequency.Max)
	assert.NotEmpty(t, report.CPU.PerCore)
	assert.Positive(t, report.Memory.Total)
	assert.LessOrEqual(t, report.Memory.Available, report.Memory.Total)
	assert.NotEmpty(t, report.Disks)
	for _, d := range report.Disks {
		assert.NotEmpty(t, d.Mountpoint)
		assert.LessOrEqual(t, d.Used, d.Total)
	}
}
