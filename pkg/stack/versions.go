package stack

import (
	"runtime"
	"runtime/debug"
)

// Module paths whose versions are reported.
const (
	GonumModule    = "gonum.org/v1/gonum"
	ArrowModule    = "github.com/apache/arrow-go/v18"
	GopsutilModule = "github.com/shirou/gopsutil/v3"
)

// Versions identifies the toolchain and the libraries under test.
type Versions struct {
	Go       string `json:"go" yaml:"go"`
	Platform string `json:"platform" yaml:"platform"`
	Gonum    string `json:"gonum" yaml:"gonum"`
	Arrow    string `json:"arrow" yaml:"arrow"`
	Gopsutil string `json:"gopsutil" yaml:"gopsutil"`
}

// ReadVersions reads module versions from the binary's build info. Modules
// absent from the build report "unknown".
func ReadVersions() Versions {
	info, _ := debug.ReadBuildInfo()
	return versionsFrom(info)
}

// versionsFrom extracts the tracked module versions from info, which may be
// nil. A replaced module is matched by its required path and reports the
// replacement's version.
func versionsFrom(info *debug.BuildInfo) Versions {
	v := Versions{
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Gonum:    "unknown",
		Arrow:    "unknown",
		Gopsutil: "unknown",
	}
	if info == nil {
		return v
	}

	for _, dep := range info.Deps {
		version := dep.Version
		if dep.Replace != nil {
			version = dep.Replace.Version
		}
		if version == "" {
			version = "(devel)"
		}
		switch dep.Path {
		case GonumModule:
			v.Gonum = version
		case ArrowModule:
			v.Arrow = version
		case GopsutilModule:
			v.Gopsutil = version
		}
	}
	return v
}
