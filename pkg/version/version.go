// Package version reports the build version recorded by the Go toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the module version stamped at build time, or "(dev)" when
// built from a working tree without module info.
var Version = "(dev)"

var revision string

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if bi.Main.Version != "" {
		Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			revision = s.Value
		}
	}
}

// GetMore returns a one-line version summary. With mod set it appends the
// VCS revision when the binary carries one.
func GetMore(mod bool) string {
	line := fmt.Sprintf("version %s %s %s/%s", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if mod && revision != "" {
		line += fmt.Sprintf(" (%s)", revision)
	}
	return line
}
