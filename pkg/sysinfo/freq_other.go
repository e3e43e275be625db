//go:build !linux

package sysinfo

import "context"

func (hostSource) Frequency(ctx context.Context) (Frequency, error) {
	return cpuInfoFrequency(ctx)
}
