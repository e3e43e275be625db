// Package envprobe verifies that a development host is correctly installed
// and performant. A single run reports host system information and
// smoke-tests the numeric libraries linked into the binary.
//
// # What a run does
//
// Sections run strictly in order and the first failure aborts the run:
//
//  1. system: OS identity, CPU core counts, clock bounds and utilization,
//     virtual memory and every mounted partition (gopsutil). A partition
//     whose usage cannot be read for lack of permission is skipped; every
//     other probe failure is fatal.
//  2. stack: a greeting banner, Go and library versions from build info,
//     a tabular smoke test over Apache Arrow (print, info, describe,
//     group-by sum) and an array smoke test over gonum (reductions, axis
//     sums, matrix product).
//  3. pi: a timed Monte-Carlo estimate of pi, ten million draws by default.
//
// # Quick Start
//
//	go build -o bin/envprobe ./cmd/envprobe
//	./bin/envprobe                      # full text report
//	./bin/envprobe system               # one section
//	./bin/envprobe --format json        # machine-readable report
//	./bin/envprobe pi --iterations 100000 # smaller estimate
//
// # Configuration
//
// Defaults reproduce the zero-argument run. They can be overridden by a
// YAML file (--config), ENVPROBE_* environment variables (for example
// ENVPROBE_REPORT_FORMAT=yaml) and flags, in increasing order of
// precedence. A .env file in the working directory is loaded first.
//
//	report:
//	  format: text
//	  sections: [system, stack, pi]
//	  iterations: 10000000
//	  cpu_interval: 1s
//	  color: auto
//	logging:
//	  level: error
//	metrics:
//	  textfile: /var/lib/node_exporter/envprobe.prom
//	tracing:
//	  enabled: false
//
// # Observability
//
// The report goes to stdout; logs (zap) and spans (OpenTelemetry stdout
// exporter, --trace) go to stderr. With metrics.textfile set, stage
// durations and the measured values are written in the Prometheus text
// format for the node exporter's textfile collector.
//
// # Package Organization
//
//   - cmd/envprobe: cobra command line
//   - internal/runner: section sequencing and rendering
//   - pkg/sysinfo: host probes behind a testable Source
//   - pkg/frame: tabular layer over Arrow records
//   - pkg/numeric: gonum array smoke test
//   - pkg/montecarlo: pi estimator
//   - pkg/stack: version report and smoke test driver
//   - pkg/report: text, JSON and YAML rendering
//   - pkg/bytesize: human-readable byte sizes
//   - pkg/config, pkg/logger, pkg/errors, pkg/metrics, pkg/observability:
//     shared infrastructure
package envprobe
