package sysinfo

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Source answers the OS queries a Collector needs.
type Source interface {
	Uname(ctx context.Context) (Uname, error)
	CPUModel(ctx context.Context) (string, error)
	Counts(ctx context.Context, logical bool) (int, error)
	Frequency(ctx context.Context) (Frequency, error)
	// Percent returns utilization per logical core when perCPU is set,
	// otherwise a single aggregate value. A zero interval compares
	// against the previous call.
	Percent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error)
	VirtualMemory(ctx context.Context) (MemoryInfo, error)
	Partitions(ctx context.Context) ([]Partition, error)
	Usage(ctx context.Context, mountpoint string) (Usage, error)
}

var errNoFrequency = errors.New("no cpu frequency source available")

// hostSource queries the running machine through gopsutil.
type hostSource struct{}

// NewHostSource returns the Source for the machine the process runs on.
func NewHostSource() Source {
	return hostSource{}
}

func (hostSource) CPUModel(ctx context.Context) (string, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", nil
	}
	return infos[0].ModelName, nil
}

func (hostSource) Counts(ctx context.Context, logical bool) (int, error) {
	return cpu.CountsWithContext(ctx, logical)
}

func (hostSource) Percent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error) {
	return cpu.PercentWithContext(ctx, interval, perCPU)
}

func (hostSource) VirtualMemory(ctx context.Context) (MemoryInfo, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryInfo{}, err
	}
	return MemoryInfo{
		Total:     vm.Total,
		Available: vm.Available,
		Used:      vm.Used,
		Percent:   vm.UsedPercent,
	}, nil
}

func (hostSource) Partitions(ctx context.Context) ([]Partition, error) {
	stats, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	parts := make([]Partition, 0, len(stats))
	for _, p := range stats {
		parts = append(parts, Partition{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			FSType:     p.Fstype,
		})
	}
	return parts, nil
}

func (hostSource) Usage(ctx context.Context, mountpoint string) (Usage, error) {
	u, err := disk.UsageWithContext(ctx, mountpoint)
	if err != nil {
		return Usage{}, err
	}
	return Usage{
		Total:   u.Total,
		Used:    u.Used,
		Free:    u.Free,
		Percent: u.UsedPercent,
	}, nil
}

// cpuInfoFrequency falls back to the single clock gopsutil derives from
// cpuinfo. It has no notion of a minimum.
func cpuInfoFrequency(ctx context.Context) (Frequency, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return Frequency{}, err
	}
	if len(infos) == 0 || infos[0].Mhz == 0 {
		return Frequency{}, errNoFrequency
	}
	return Frequency{Max: infos[0].Mhz, Current: infos[0].Mhz}, nil
}
