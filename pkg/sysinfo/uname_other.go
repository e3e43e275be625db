//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package sysinfo

import (
	"context"

	"github.com/shirou/gopsutil/v3/host"
)

// Uname assembles the uname fields from gopsutil's host info on platforms
// without uname(2).
func (hostSource) Uname(ctx context.Context) (Uname, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Uname{}, err
	}
	return Uname{
		Sysname:  capitalize(info.OS),
		Nodename: info.Hostname,
		Release:  info.KernelVersion,
		Version:  info.PlatformVersion,
		Machine:  info.KernelArch,
	}, nil
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
