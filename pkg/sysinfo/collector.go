package sysinfo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ajitpratap0/envprobe/pkg/errors"
)

// DefaultSampleInterval is how long per-core utilization is measured.
const DefaultSampleInterval = time.Second

// Collector queries a Source and assembles a Report.
type Collector struct {
	source   Source
	interval time.Duration
	logger   *zap.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithInterval sets the per-core utilization sampling interval.
func WithInterval(d time.Duration) Option {
	return func(c *Collector) {
		c.interval = d
	}
}

// WithLogger sets the logger used for skipped partitions and probe tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCollector creates a collector over source.
func NewCollector(source Source, opts ...Option) *Collector {
	c := &Collector{
		source:   source,
		interval: DefaultSampleInterval,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs every probe in order: host, CPU, memory, disks.
func (c *Collector) Collect(ctx context.Context) (*Report, error) {
	hostInfo, err := c.Host(ctx)
	if err != nil {
		return nil, err
	}
	cpuInfo, err := c.CPU(ctx)
	if err != nil {
		return nil, err
	}
	memInfo, err := c.Memory(ctx)
	if err != nil {
		return nil, err
	}
	disks, err := c.Disks(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		Host:   hostInfo,
		CPU:    cpuInfo,
		Memory: memInfo,
		Disks:  disks,
	}, nil
}

// Host returns OS identity. Processor is the CPU model name.
func (c *Collector) Host(ctx context.Context) (HostInfo, error) {
	u, err := c.source.Uname(ctx)
	if err != nil {
		return HostInfo{}, errors.Wrap(err, errors.ErrorTypeProbe, "failed to read os identity")
	}
	model, err := c.source.CPUModel(ctx)
	if err != nil {
		return HostInfo{}, errors.Wrap(err, errors.ErrorTypeProbe, "failed to read cpu model")
	}

	c.logger.Debug("host identity probed",
		zap.String("system", u.Sysname),
		zap.String("release", u.Release))

	return HostInfo{
		System:    u.Sysname,
		Node:      u.Nodename,
		Release:   u.Release,
		Version:   u.Version,
		Machine:   u.Machine,
		Processor: model,
	}, nil
}

// CPU returns core counts, clocks and utilization. Per-core utilization
// blocks for the sampling interval.
func (c *Collector) CPU(ctx context.Context) (CPUInfo, error) {
	var info CPUInfo
	var err error

	if info.PhysicalCores, err = c.source.Counts(ctx, false); err != nil {
		return CPUInfo{}, errors.Wrap(err, errors.ErrorTypeProbe, "failed to count physical cores")
	}
	if info.LogicalCores, err = c.source.Counts(ctx, true); err != nil {
		return CPUInfo{}, errors.Wrap(err, errors.ErrorTypeProbe, "failed to count logical cores")
	}
	if info.Frequency, err = c.source.Frequency(ctx); err != nil {
		return CPUInfo{}, errors.Wrap(err, errors.ErrorTypeProbe, "failed to read cpu frequency")
	}

	c.logger.Debug("sampling cpu utilization", zap.Duration("interval", c.interval))
	if info.PerCore, err = c.source.Percent(ctx, c.interval, true); err != nil {
		return CPUInfo{}, errors.Wrap(err, errors.ErrorTypeProbe, "failed to sample per-core utilization")
	}

	total, err := c.source.Percent(ctx, 0, false)
	if err != nil {
		return CPUInfo{}, errors.Wrap(err, errors.ErrorTypeProbe, "failed to read total utilization")
	}
	if len(total) == 0 {
		return CPUInfo{}, errors.New(errors.ErrorTypeProbe, "total utilization not reported")
	}
	info.Total = total[0]

	return info, nil
}

// Memory returns virtual memory totals.
func (c *Collector) Memory(ctx context.Context) (MemoryInfo, error) {
	m, err := c.source.VirtualMemory(ctx)
	if err != nil {
		return MemoryInfo{}, errors.Wrap(err, errors.ErrorTypeProbe, "failed to read virtual memory")
	}
	return m, nil
}

// Disks returns one entry per mounted partition, in the order the OS lists
// them. Partitions whose usage read fails with a permission error are left
// out; any other failure aborts enumeration.
func (c *Collector) Disks(ctx context.Context) ([]DiskInfo, error) {
	parts, err := c.source.Partitions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeProbe, "failed to list partitions")
	}

	disks := make([]DiskInfo, 0, len(parts))
	for _, p := range parts {
		u, err := c.source.Usage(ctx, p.Mountpoint)
		if err != nil {
			if errors.IsPermission(err) {
				c.logger.Debug("skipping unreadable partition",
					zap.String("device", p.Device),
					zap.String("mountpoint", p.Mountpoint),
					zap.Error(err))
				continue
			}
			return nil, errors.Wrap(err, errors.ErrorTypeProbe, "failed to read partition usage").
				WithDetail("mountpoint", p.Mountpoint)
		}

		disks = append(disks, DiskInfo{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			FSType:     p.FSType,
			Total:      u.Total,
			Used:       u.Used,
			Free:       u.Free,
			Percent:    u.Percent,
		})
	}

	return disks, nil
}
