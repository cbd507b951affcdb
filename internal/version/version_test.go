package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withVars(t *testing.T, v, commit, tag, built, dirty string) {
	t.Helper()
	saved := []string{Version, GitCommit, GitTag, BuildTime, GitDirty}
	savedRead := readBuildInfo
	Version, GitCommit, GitTag, BuildTime, GitDirty = v, commit, tag, built, dirty
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	t.Cleanup(func() {
		Version, GitCommit, GitTag, BuildTime, GitDirty = saved[0], saved[1], saved[2], saved[3], saved[4]
		readBuildInfo = savedRead
	})
}

func TestGetVersion(t *testing.T) {
	t.Run("ldflags version", func(t *testing.T) {
		withVars(t, "v1.2.3", "unknown", "unknown", "unknown", "")
		assert.Equal(t, "v1.2.3", GetVersion())
	})

	t.Run("module version", func(t *testing.T) {
		withVars(t, "dev", "unknown", "unknown", "unknown", "")
		readBuildInfo = func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: "v0.4.0"}}, true
		}
		assert.Equal(t, "v0.4.0", GetVersion())
	})

	t.Run("git tag and commit", func(t *testing.T) {
		withVars(t, "dev", "abcdef1234567", "v0.1.0", "unknown", "dirty")
		assert.Equal(t, "v0.1.0-abcdef1-dirty", GetVersion())
	})

	t.Run("tag already carries commit", func(t *testing.T) {
		withVars(t, "dev", "abcdef1234567", "v0.1.0-abcdef1", "unknown", "")
		assert.Equal(t, "v0.1.0-abcdef1", GetVersion())
	})

	t.Run("nothing known", func(t *testing.T) {
		withVars(t, "dev", "unknown", "unknown", "unknown", "")
		assert.Equal(t, "dev", GetVersion())
	})
}

func TestString(t *testing.T) {
	withVars(t, "v1.0.0", "0123456789ab", "v1.0.0", "2026-01-01T00:00:00Z", "")

	s := String()
	assert.True(t, strings.HasPrefix(s, "vars2css v1.0.0 (commit: 0123456, built: 2026-01-01T00:00:00Z)"), s)

	info := GetBuildInfo()
	assert.Equal(t, "v1.0.0", info["version"])
	assert.NotEmpty(t, info["platform"])
}
