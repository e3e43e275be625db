package sysinfo

// Report is everything the collector learned about the host in one pass.
type Report struct {
	Host   HostInfo   `json:"host" yaml:"host"`
	CPU    CPUInfo    `json:"cpu" yaml:"cpu"`
	Memory MemoryInfo `json:"memory" yaml:"memory"`
	Disks  []DiskInfo `json:"disks" yaml:"disks"`
}

// HostInfo identifies the operating system and machine.
type HostInfo struct {
	System    string `json:"system" yaml:"system"`
	Node      string `json:"node" yaml:"node"`
	Release   string `json:"release" yaml:"release"`
	Version   string `json:"version" yaml:"version"`
	Machine   string `json:"machine" yaml:"machine"`
	Processor string `json:"processor" yaml:"processor"`
}

// Uname mirrors the fields of uname(2).
type Uname struct {
	Sysname  string
	Nodename string
	Release  string
	Version  string
	Machine  string
}

// Frequency holds CPU clock bounds and the current clock, in MHz.
type Frequency struct {
	Max     float64 `json:"max_mhz" yaml:"max_mhz"`
	Min     float64 `json:"min_mhz" yaml:"min_mhz"`
	Current float64 `json:"current_mhz" yaml:"current_mhz"`
}

// CPUInfo describes core counts, clocks and utilization.
type CPUInfo struct {
	PhysicalCores int       `json:"physical_cores" yaml:"physical_cores"`
	LogicalCores  int       `json:"logical_cores" yaml:"logical_cores"`
	Frequency     Frequency `json:"frequency" yaml:"frequency"`
	// PerCore is utilization in percent per logical core, sampled over
	// the collector interval.
	PerCore []float64 `json:"per_core_percent" yaml:"per_core_percent"`
	Total   float64   `json:"total_percent" yaml:"total_percent"`
}

// MemoryInfo is virtual memory usage in bytes.
type MemoryInfo struct {
	Total     uint64  `json:"total" yaml:"total"`
	Available uint64  `json:"available" yaml:"available"`
	Used      uint64  `json:"used" yaml:"used"`
	Percent   float64 `json:"percent" yaml:"percent"`
}

// Partition is a mounted filesystem as reported by the OS.
type Partition struct {
	Device     string
	Mountpoint string
	FSType     string
}

// Usage is the space accounting of one filesystem, in bytes.
type Usage struct {
	Total   uint64
	Used    uint64
	Free    uint64
	Percent float64
}

// DiskInfo is one partition together with its usage.
type DiskInfo struct {
	Device     string  `json:"device" yaml:"device"`
	Mountpoint string  `json:"mountpoint" yaml:"mountpoint"`
	FSType     string  `json:"fstype" yaml:"fstype"`
	Total      uint64  `json:"total" yaml:"total"`
	Used       uint64  `json:"used" yaml:"used"`
	Free       uint64  `json:"free" yaml:"free"`
	Percent    float64 `json:"percent" yaml:"percent"`
}
