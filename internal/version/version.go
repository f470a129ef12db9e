// Package version reports the build version of the tosemver binary.
package version

import "runtime/debug"

// version is set at build time with
// -ldflags "-X github.com/indaco/tosemver/internal/version.version=1.2.3".
var version = ""

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the linked version, the module version from build info,
// or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return trimV(info.Main.Version)
	}
	return "dev"
}

func trimV(s string) string {
	if len(s) > 0 && s[0] == 'v' {
		return s[1:]
	}
	return s
}
