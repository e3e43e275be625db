// Package metrics records what a probe run measured as Prometheus gauges
// and can write them out in the textfile format understood by the node
// exporter's textfile collector, so a scheduled envprobe run can feed a
// dashboard.
//
// # Basic Usage
//
//	rec := metrics.NewRecorder("envprobe")
//	timer := metrics.NewTimer("system")
//	report, err := collector.Collect(ctx)
//	rec.ObserveStage("system", timer.Stop(), err)
//	rec.ObserveSystem(report)
//	err = rec.WriteTextfile("/var/lib/node_exporter/envprobe.prom")
//
// Every Recorder owns its own registry, so recorders never collide on
// metric names.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ajitpratap0/envprobe/pkg/montecarlo"
	"github.com/ajitpratap0/envprobe/pkg/sysinfo"
)

// Recorder holds the gauges for one probe run.
type Recorder struct {
	registry *prometheus.Registry

	stageDuration *prometheus.GaugeVec // seconds per stage
	stageSuccess  *prometheus.GaugeVec // 1 if the stage succeeded
	cpuUsage      *prometheus.GaugeVec // percent per core, "total" for aggregate
	cpuFrequency  *prometheus.GaugeVec // MHz by bound
	cpuCores      *prometheus.GaugeVec // count by kind
	memoryBytes   *prometheus.GaugeVec // bytes by state
	diskBytes     *prometheus.GaugeVec // bytes by mountpoint and state
	piEstimate    prometheus.Gauge
	piError       prometheus.Gauge
	piSeconds     prometheus.Gauge
}

// NewRecorder creates a recorder whose metric names start with namespace.
func NewRecorder(namespace string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		stageDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall-clock duration of each probe stage",
		}, []string{"stage"}),
		stageSuccess: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage_success",
			Help:      "1 if the probe stage completed, 0 if it failed",
		}, []string{"stage"}),
		cpuUsage: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_usage_percent",
			Help:      "CPU utilization sampled during the run",
		}, []string{"core"}),
		cpuFrequency: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_frequency_mhz",
			Help:      "CPU clock in MHz",
		}, []string{"bound"}),
		cpuCores: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_cores",
			Help:      "Number of CPU cores",
		}, []string{"kind"}),
		memoryBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_bytes",
			Help:      "Virtual memory in bytes",
		}, []string{"state"}),
		diskBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "disk_bytes",
			Help:      "Filesystem space in bytes",
		}, []string{"device", "mountpoint", "fstype", "state"}),
		piEstimate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pi_estimate",
			Help:      "Monte-Carlo estimate of pi",
		}),
		piError: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pi_absolute_error",
			Help:      "Absolute difference between the estimate and pi",
		}),
		piSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pi_duration_seconds",
			Help:      "Time taken by the Monte-Carlo estimate",
		}),
	}
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveStage records how long a stage took and whether it succeeded.
func (r *Recorder) ObserveStage(stage string, d time.Duration, err error) {
	r.stageDuration.WithLabelValues(stage).Set(d.Seconds())
	if err != nil {
		r.stageSuccess.WithLabelValues(stage).Set(0)
		return
	}
	r.stageSuccess.WithLabelValues(stage).Set(1)
}

// ObserveSystem records the host facts of a sysinfo report.
func (r *Recorder) ObserveSystem(rep *sysinfo.Report) {
	if rep == nil {
		return
	}
	for i, pct := range rep.CPU.PerCore {
		r.cpuUsage.WithLabelValues(strconv.Itoa(i)).Set(pct)
	}
	r.cpuUsage.WithLabelValues("total").Set(rep.CPU.Total)

	r.cpuFrequency.WithLabelValues("max").Set(rep.CPU.Frequency.Max)
	r.cpuFrequency.WithLabelValues("min").Set(rep.CPU.Frequency.Min)
	r.cpuFrequency.WithLabelValues("current").Set(rep.CPU.Frequency.Current)

	r.cpuCores.WithLabelValues("physical").Set(float64(rep.CPU.PhysicalCores))
	r.cpuCores.WithLabelValues("logical").Set(float64(rep.CPU.LogicalCores))

	r.memoryBytes.WithLabelValues("total").Set(float64(rep.Memory.Total))
	r.memoryBytes.WithLabelValues("available").Set(float64(rep.Memory.Available))
	r.memoryBytes.WithLabelValues("used").Set(float64(rep.Memory.Used))

	for _, d := range rep.Disks {
		r.diskBytes.WithLabelValues(d.Device, d.Mountpoint, d.FSType, "total").Set(float64(d.Total))
		r.diskBytes.WithLabelValues(d.Device, d.Mountpoint, d.FSType, "used").Set(float64(d.Used))
		r.diskBytes.WithLabelValues(d.Device, d.Mountpoint, d.FSType, "free").Set(float64(d.Free))
	}
}

// ObservePi records a Monte-Carlo result.
func (r *Recorder) ObservePi(res *montecarlo.Result) {
	if res == nil {
		return
	}
	r.piEstimate.Set(res.Estimate)
	r.piError.Set(res.Difference)
	r.piSeconds.Set(res.Elapsed.Seconds())
}

// WriteTextfile atomically writes every metric to path in the Prometheus
// text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the name the timer was created with.
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. It can be called more
// than once.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
