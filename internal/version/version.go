package version

import (
	"runtime/debug"
	"strconv"
)

const Int = 1

// String is Int with the VCS revision the binary was built from, if the
// go tool recorded one.
func String() string {
	s := "nn2go version " + strconv.Itoa(Int)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return s
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 12 {
			return s + " (" + setting.Value[:12] + ")"
		}
	}
	return s
}
