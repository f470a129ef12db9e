package version

import (
	"runtime/debug"
	"testing"
)

func TestGetVersion(t *testing.T) {
	origVersion, origRead := version, readBuildInfo
	t.Cleanup(func() {
		version, readBuildInfo = origVersion, origRead
	})

	tests := []struct {
		name   string
		linked string
		info   *debug.BuildInfo
		ok     bool
		want   string
	}{
		{"ldflags", "1.2.3", nil, false, "1.2.3"},
		{"build info", "", &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, true, "0.4.0"},
		{"devel", "", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true, "dev"},
		{"no info", "", nil, false, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version = tt.linked
			readBuildInfo = func() (*debug.BuildInfo, bool) { return tt.info, tt.ok }
			if got := GetVersion(); got != tt.want {
				t.Errorf("GetVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}
