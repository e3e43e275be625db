package runner

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/envprobe/pkg/config"
	perrors "github.com/ajitpratap0/envprobe/pkg/errors"
	"github.com/ajitpratap0/envprobe/pkg/observability"
	"github.com/ajitpratap0/envprobe/pkg/report"
	"github.com/ajitpratap0/envprobe/pkg/sysinfo/sysinfotest"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Report.Iterations = 20_000
	cfg.Report.CPUInterval = 0
	cfg.Report.Color = config.ColorNever
	return cfg
}

func newRunner(t *testing.T, cfg *config.Config, out *bytes.Buffer, src *sysinfotest.Source, opts ...Option) *Runner {
	t.Helper()
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	t.Cleanup(func() { mem.AssertSize(t, 0) })

	opts = append([]Option{
		WithSource(src),
		WithLogger(zaptest.NewLogger(t)),
		WithAllocator(mem),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	}, opts...)
	r, err := New(cfg, out, opts...)
	require.NoError(t, err)
	return r
}

func TestRunText(t *testing.T) {
	var out bytes.Buffer
	r := newRunner(t, testConfig(), &out, sysinfotest.New())

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rep.System)
	require.NotNil(t, rep.Stack)
	require.NotNil(t, rep.Pi)

	text := out.String()
	assert.Contains(t, text, "Hello, World!")
	assert.Equal(t, 2, strings.Count(text, "=== Device: "))

	// system first, then the banner, then the pi estimate
	sys := strings.Index(text, "System Information")
	banner := strings.Index(text, "Hello, World!")
	pi := strings.Index(text, "Pi Estimation Test:")
	assert.True(t, sys < banner && banner < pi, "sections out of order")

	assert.InDelta(t, 3.14, rep.Pi.Estimate, 0.1)
	count, err := testutil.GatherAndCount(r.Metrics().Registry(), "envprobe_stage_success")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRunSkipsUnreadablePartition(t *testing.T) {
	src := sysinfotest.New()
	src.UsageErrs["/boot/efi"] = &os.PathError{Op: "statfs", Path: "/boot/efi", Err: syscall.EACCES}

	var out bytes.Buffer
	cfg := testConfig()
	cfg.Report.Sections = []string{config.SectionSystem}
	r := newRunner(t, cfg, &out, src)

	rep, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, rep.System.Disks, 1)
	assert.Equal(t, 1, strings.Count(out.String(), "=== Device: "))
	assert.NotContains(t, out.String(), "Hello, World!")
}

func TestRunJSON(t *testing.T) {
	var out bytes.Buffer
	cfg := testConfig()
	cfg.Report.Format = config.FormatJSON
	r := newRunner(t, cfg, &out, sysinfotest.New())

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	var decoded report.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.NotNil(t, decoded.System)
	assert.Equal(t, "buildbox", decoded.System.Host.Node)
	assert.Len(t, decoded.System.Disks, 2)
	require.NotNil(t, decoded.Pi)
	assert.Equal(t, 20_000, decoded.Pi.Iterations)
	assert.NotContains(t, out.String(), "Hello, World!")
}

func TestRunStopsOnProbeFailure(t *testing.T) {
	src := sysinfotest.New()
	src.MemoryErr = errors.New("sensor unavailable")

	var out bytes.Buffer
	metricsPath := filepath.Join(t.TempDir(), "envprobe.prom")
	cfg := testConfig()
	cfg.Metrics.Textfile = metricsPath
	r := newRunner(t, cfg, &out, src)

	_, err := r.Run(context.Background())
	require.Error(t, err)
	assert.True(t, perrors.IsType(err, perrors.ErrorTypeProbe))
	assert.NotContains(t, out.String(), "Hello, World!", "later sections must not run")

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `envprobe_stage_success{stage="system"} 0`)
}

func TestRunWritesMetrics(t *testing.T) {
	var out bytes.Buffer
	metricsPath := filepath.Join(t.TempDir(), "envprobe.prom")
	cfg := testConfig()
	cfg.Report.Sections = []string{config.SectionPi}
	cfg.Metrics.Textfile = metricsPath
	r := newRunner(t, cfg, &out, sysinfotest.New())

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "envprobe_pi_estimate")
	assert.Contains(t, string(data), `envprobe_stage_success{stage="pi"} 1`)
}

func TestRunTracesStages(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tr, err := observability.NewTracing(observability.TracingConfig{Enabled: true, ServiceName: "envprobe"},
		observability.WithExporter(exp))
	require.NoError(t, err)

	var out bytes.Buffer
	r := newRunner(t, testConfig(), &out, sysinfotest.New(), WithTracing(tr))
	_, err = r.Run(context.Background())
	require.NoError(t, err)

	// the in-memory exporter drops its spans on shutdown
	spans := exp.GetSpans()
	require.NoError(t, tr.Shutdown(context.Background()))

	var names []string
	for _, s := range spans {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"envprobe.system", "envprobe.stack", "envprobe.pi"}, names)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := newRunner(t, testConfig(), &out, sysinfotest.New())
	_, err := r.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Report.Iterations = 0

	_, err := New(cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, perrors.IsType(err, perrors.ErrorTypeConfig))
}
