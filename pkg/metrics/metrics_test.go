package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/envprobe/pkg/montecarlo"
	"github.com/ajitpratap0/envprobe/pkg/sysinfo"
)

func sampleReport() *sysinfo.Report {
	return &sysinfo.Report{
		CPU: sysinfo.CPUInfo{
			PhysicalCores: 2,
			LogicalCores:  4,
			Frequency:     sysinfo.Frequency{Max: 3500, Min: 800, Current: 2400},
			PerCore:       []float64{10, 20, 30, 40},
			Total:         25,
		},
		Memory: sysinfo.MemoryInfo{Total: 1 << 34, Available: 1 << 33, Used: 1 << 32, Percent: 25},
		Disks: []sysinfo.DiskInfo{
			{Device: "/dev/sda1", Mountpoint: "/", FSType: "ext4", Total: 1000, Used: 400, Free: 600, Percent: 40},
		},
	}
}

func TestObserveSystem(t *testing.T) {
	r := NewRecorder("envprobe")
	r.ObserveSystem(sampleReport())
	r.ObserveSystem(nil)

	assert.Equal(t, 30.0, testutil.ToFloat64(r.cpuUsage.WithLabelValues("2")))
	assert.Equal(t, 25.0, testutil.ToFloat64(r.cpuUsage.WithLabelValues("total")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.cpuCores.WithLabelValues("logical")))
	assert.Equal(t, 800.0, testutil.ToFloat64(r.cpuFrequency.WithLabelValues("min")))
	assert.Equal(t, float64(1<<33), testutil.ToFloat64(r.memoryBytes.WithLabelValues("available")))
	assert.Equal(t, 400.0, testutil.ToFloat64(r.diskBytes.WithLabelValues("/dev/sda1", "/", "ext4", "used")))
}

func TestObserveStage(t *testing.T) {
	r := NewRecorder("envprobe")
	r.ObserveStage("system", 1500*time.Millisecond, nil)
	r.ObserveStage("stack", time.Millisecond, errors.New("arrow missing"))

	assert.Equal(t, 1.5, testutil.ToFloat64(r.stageDuration.WithLabelValues("system")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stageSuccess.WithLabelValues("system")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.stageSuccess.WithLabelValues("stack")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder("envprobe")
	r.ObservePi(&montecarlo.Result{Estimate: 3.1416, Difference: 0.0000073, Elapsed: 2 * time.Second})

	path := filepath.Join(t.TempDir(), "envprobe.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "envprobe_pi_estimate 3.1416")
	assert.Contains(t, string(data), "envprobe_pi_duration_seconds 2")
}

func TestWriteTextfileBadPath(t *testing.T) {
	r := NewRecorder("envprobe")
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	assert.ErrorContains(t, err, "failed to write metrics textfile")
}

func TestTimer(t *testing.T) {
	timer := NewTimer("pi")
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, "pi", timer.Name())
	assert.GreaterOrEqual(t, timer.Stop(), 5*time.Millisecond)
}
