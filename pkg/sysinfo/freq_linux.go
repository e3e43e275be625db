//go:build linux

package sysinfo

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const cpufreqDir = "/sys/devices/system/cpu/cpu0/cpufreq"

// Frequency reads the clock bounds of cpu0 from sysfs cpufreq, which is
// where the kernel publishes min, max and current clocks. Machines without
// cpufreq (most VMs and containers) fall back to the cpuinfo clock.
func (hostSource) Frequency(ctx context.Context) (Frequency, error) {
	if f, ok := readCPUFreq(cpufreqDir); ok {
		return f, nil
	}
	return cpuInfoFrequency(ctx)
}

func readCPUFreq(dir string) (Frequency, bool) {
	maxKHz, okMax := readKHz(filepath.Join(dir, "cpuinfo_max_freq"))
	minKHz, okMin := readKHz(filepath.Join(dir, "cpuinfo_min_freq"))
	curKHz, okCur := readKHz(filepath.Join(dir, "scaling_cur_freq"))
	if !okMax && !okCur {
		return Frequency{}, false
	}
	if !okCur {
		curKHz = maxKHz
	}
	if !okMax {
		maxKHz = curKHz
	}
	if !okMin {
		minKHz = 0
	}
	return Frequency{
		Max:     maxKHz / 1000,
		Min:     minKHz / 1000,
		Current: curKHz / 1000,
	}, true
}

func readKHz(path string) (float64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
