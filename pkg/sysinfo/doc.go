// Package sysinfo gathers the host facts envprobe reports: OS identity,
// CPU topology, frequency and utilization, virtual memory, and usage of
// every mounted partition.
//
// # Sources
//
// All OS queries go through the Source interface. NewHostSource returns the
// production implementation backed by github.com/shirou/gopsutil/v3, with
// uname(2) via golang.org/x/sys/unix for the identity fields and sysfs
// cpufreq on Linux for the frequency bounds. Tests substitute the fake in
// sysinfo/sysinfotest.
//
// # Failure handling
//
// A Collector returns the first error it meets, wrapped as a probe error,
// with a single exception: a partition whose usage cannot be read because
// of a permission failure is left out of the report and enumeration moves
// on to the next partition.
//
//	c := sysinfo.NewCollector(sysinfo.NewHostSource(),
//	    sysinfo.WithInterval(time.Second))
//	report, err := c.Collect(ctx)
package sysinfo
