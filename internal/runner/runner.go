// Package runner sequences the sections of a probe run. Sections run one
// after another in a fixed order: system, stack, pi. The first failure
// stops the run. In text mode each section is printed as soon as it
// finishes; structured formats are written once at the end.
package runner

import (
	"context"
	"io"
	"math/rand/v2"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	"github.com/ajitpratap0/envprobe/pkg/config"
	"github.com/ajitpratap0/envprobe/pkg/errors"
	"github.com/ajitpratap0/envprobe/pkg/metrics"
	"github.com/ajitpratap0/envprobe/pkg/montecarlo"
	"github.com/ajitpratap0/envprobe/pkg/observability"
	"github.com/ajitpratap0/envprobe/pkg/report"
	"github.com/ajitpratap0/envprobe/pkg/stack"
	"github.com/ajitpratap0/envprobe/pkg/sysinfo"
)

// Runner executes the configured sections and renders their results.
type Runner struct {
	cfg     *config.Config
	out     io.Writer
	source  sysinfo.Source
	logger  *zap.Logger
	tracing *observability.Tracing
	metrics *metrics.Recorder
	mem     memory.Allocator
	rng     *rand.Rand
}

// Option configures a Runner.
type Option func(*Runner)

// WithSource replaces the host source, e.g. with a fake.
func WithSource(s sysinfo.Source) Option {
	return func(r *Runner) {
		r.source = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracing sets the tracer used for stage spans.
func WithTracing(t *observability.Tracing) Option {
	return func(r *Runner) {
		r.tracing = t
	}
}

// WithAllocator sets the allocator behind the tabular smoke test.
func WithAllocator(mem memory.Allocator) Option {
	return func(r *Runner) {
		r.mem = mem
	}
}

// WithRand makes the pi estimate draw from rng instead of the global
// source.
func WithRand(rng *rand.Rand) Option {
	return func(r *Runner) {
		r.rng = rng
	}
}

// New creates a runner writing to out.
func New(cfg *config.Config, out io.Writer, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid configuration")
	}

	r := &Runner{
		cfg:     cfg,
		out:     out,
		logger:  zap.NewNop(),
		metrics: metrics.NewRecorder(cfg.Metrics.Namespace),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.source == nil {
		r.source = sysinfo.NewHostSource()
	}
	if r.tracing == nil {
		t, err := observability.NewTracing(observability.TracingConfig{})
		if err != nil {
			return nil, err
		}
		r.tracing = t
	}
	return r, nil
}

// Metrics returns the recorder filled in by Run.
func (r *Runner) Metrics() *metrics.Recorder {
	return r.metrics
}

// Run executes every configured section and returns what was gathered.
// The metrics textfile, when configured, is written even if a section
// failed, so the failure shows up as a zero stage_success.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	rep, err := r.run(ctx)

	if path := r.cfg.Metrics.Textfile; path != "" {
		if werr := r.metrics.WriteTextfile(path); werr != nil {
			if err != nil {
				r.logger.Error("failed to write metrics", zap.String("path", path), zap.Error(werr))
				return nil, err
			}
			return nil, errors.Wrap(werr, errors.ErrorTypeOutput, "metrics export failed")
		}
		r.logger.Debug("metrics written", zap.String("path", path))
	}
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *Runner) run(ctx context.Context) (*report.Report, error) {
	format := r.cfg.Report.Format

	var text *report.Text
	if format == config.FormatText {
		text = report.NewText(r.out, report.UseColor(r.cfg.Report.Color, r.out))
	}

	rep := &report.Report{}

	if r.cfg.Report.HasSection(config.SectionSystem) {
		err := r.stage(ctx, config.SectionSystem, func(ctx context.Context) error {
			collector := sysinfo.NewCollector(r.source,
				sysinfo.WithInterval(r.cfg.Report.CPUInterval),
				sysinfo.WithLogger(r.logger.Named("sysinfo")))
			sys, err := collector.Collect(ctx)
			if err != nil {
				return err
			}
			observability.SetAttribute(ctx, "disks", len(sys.Disks))
			r.metrics.ObserveSystem(sys)
			rep.System = sys
			if text != nil {
				text.System(sys)
				return text.Err()
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if r.cfg.Report.HasSection(config.SectionStack) {
		err := r.stage(ctx, config.SectionStack, func(ctx context.Context) error {
			if text != nil {
				text.Banner()
			}
			st, err := stack.Run(r.mem)
			if err != nil {
				return err
			}
			rep.Stack = st
			if text != nil {
				text.Stack(st)
				return text.Err()
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if r.cfg.Report.HasSection(config.SectionPi) {
		err := r.stage(ctx, config.SectionPi, func(ctx context.Context) error {
			observability.SetAttribute(ctx, "iterations", r.cfg.Report.Iterations)
			res, err := montecarlo.NewEstimator(r.rng).Run(r.cfg.Report.Iterations)
			if err != nil {
				return err
			}
			r.metrics.ObservePi(res)
			rep.Pi = res
			if text != nil {
				text.Pi(res)
				return text.Err()
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	switch format {
	case config.FormatJSON:
		if err := report.WriteJSON(r.out, rep); err != nil {
			return nil, err
		}
	case config.FormatYAML:
		if err := report.WriteYAML(r.out, rep); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// stage runs fn as one named, traced and timed section.
func (r *Runner) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "run cancelled before "+name)
	}

	r.logger.Debug("stage started", zap.String("stage", name))
	timer := metrics.NewTimer(name)
	err := r.tracing.TraceStage(ctx, name, fn)
	elapsed := timer.Stop()
	r.metrics.ObserveStage(timer.Name(), elapsed, err)

	if err != nil {
		r.logger.Debug("stage failed", zap.String("stage", name), zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}
	r.logger.Debug("stage finished", zap.String("stage", name), zap.Duration("elapsed", elapsed))
	return nil
}
