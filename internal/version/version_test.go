package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.Equal(t, Date, info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want []string
		not  []string
	}{
		{
			name: "release build",
			info: Info{
				Version:   "1.0.0",
				Commit:    "abc123def456789",
				Date:      "2024-03-01T12:00:00Z",
				GoVersion: "go1.24.6",
				Platform:  "linux/amd64",
			},
			want: []string{"specflow", "1.0.0", "abc123de", "2024-03-01T12:00:00Z", "go1.24.6", "linux/amd64"},
			not:  []string{"abc123def456789"},
		},
		{
			name: "short commit is kept",
			info: Info{Version: "1.0.0", Commit: "abc123"},
			want: []string{"(abc123)"},
		},
		{
			name: "dev build",
			info: Info{Version: "dev", Commit: "unknown", Date: "unknown"},
			want: []string{"specflow dev", "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.String()
			for _, substr := range tt.want {
				assert.Contains(t, got, substr)
			}
			for _, substr := range tt.not {
				assert.NotContains(t, got, substr)
			}
		})
	}
}

func TestInfoShort(t *testing.T) {
	tests := []struct {
		version string
	}{
		{"1.0.0"},
		{"dev"},
		{"1.0.0-rc1"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.version, Info{Version: tt.version}.Short())
		})
	}
}

func TestInfoVerbose(t *testing.T) {
	out := Info{Version: "1.0.0", Commit: "abc", Date: "today", GoVersion: "go1.24.6", Platform: "linux/amd64"}.Verbose()

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, "Version:    1.0.0", lines[0])
	assert.Equal(t, "Platform:   linux/amd64", lines[4])
}
