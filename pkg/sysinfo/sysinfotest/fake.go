// Package sysinfotest provides an in-memory sysinfo.Source for tests.
package sysinfotest

import (
	"context"
	"time"

	"github.com/ajitpratap0/envprobe/pkg/sysinfo"
)

// Source is a canned sysinfo.Source. Any *Err field set makes the matching
// query fail; UsageErrs fails Usage for individual mountpoints.
type Source struct {
	UnameValue sysinfo.Uname
	Model      string
	Physical   int
	Logical    int
	Freq       sysinfo.Frequency
	PerCore    []float64
	Total      float64
	Memory     sysinfo.MemoryInfo
	Parts      []sysinfo.Partition
	Usages     map[string]sysinfo.Usage
	UsageErrs  map[string]error

	UnameErr     error
	FrequencyErr error
	PercentErr   error
	MemoryErr    error
	PartitionErr error

	// Intervals records every interval passed to Percent.
	Intervals []time.Duration
}

// New returns a Source describing a small four-core Linux box with two
// readable partitions.
func New() *Source {
	return &Source{
		UnameValue: sysinfo.Uname{
			Sysname:  "Linux",
			Nodename: "buildbox",
			Release:  "6.8.0-45-generic",
			Version:  "#45-Ubuntu SMP PREEMPT_DYNAMIC",
			Machine:  "x86_64",
		},
		Model:    "AMD EPYC 7B13",
		Physical: 2,
		Logical:  4,
		Freq:     sysinfo.Frequency{Max: 3500, Min: 1500, Current: 2450.5},
		PerCore:  []float64{12.5, 3.0, 0, 50.25},
		Total:    16.4,
		Memory: sysinfo.MemoryInfo{
			Total:     16 << 30,
			Available: 10 << 30,
			Used:      6 << 30,
			Percent:   37.5,
		},
		Parts: []sysinfo.Partition{
			{Device: "/dev/nvme0n1p2", Mountpoint: "/", FSType: "ext4"},
			{Device: "/dev/nvme0n1p1", Mountpoint: "/boot/efi", FSType: "vfat"},
		},
		Usages: map[string]sysinfo.Usage{
			"/":         {Total: 500 << 30, Used: 200 << 30, Free: 300 << 30, Percent: 40},
			"/boot/efi": {Total: 512 << 20, Used: 6 << 20, Free: 506 << 20, Percent: 1.2},
		},
		UsageErrs: map[string]error{},
	}
}

func (s *Source) Uname(context.Context) (sysinfo.Uname, error) {
	return s.UnameValue, s.UnameErr
}

func (s *Source) CPUModel(context.Context) (string, error) {
	return s.Model, nil
}

func (s *Source) Counts(_ context.Context, logical bool) (int, error) {
	if logical {
		return s.Logical, nil
	}
	return s.Physical, nil
}

func (s *Source) Frequency(context.Context) (sysinfo.Frequency, error) {
	return s.Freq, s.FrequencyErr
}

func (s *Source) Percent(ctx context.Context, interval time.Duration, perCPU bool) ([]float64, error) {
	s.Intervals = append(s.Intervals, interval)
	if s.PercentErr != nil {
		return nil, s.PercentErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if perCPU {
		return append([]float64(nil), s.PerCore...), nil
	}
	return []float64{s.Total}, nil
}

func (s *Source) VirtualMemory(context.Context) (sysinfo.MemoryInfo, error) {
	return s.Memory, s.MemoryErr
}

func (s *Source) Partitions(context.Context) ([]sysinfo.Partition, error) {
	if s.PartitionErr != nil {
		return nil, s.PartitionErr
	}
	return append([]sysinfo.Partition(nil), s.Parts...), nil
}

func (s *Source) Usage(_ context.Context, mountpoint string) (sysinfo.Usage, error) {
	if err, ok := s.UsageErrs[mountpoint]; ok {
		return sysinfo.Usage{}, err
	}
	return s.Usages[mountpoint], nil
}
