package buildinfo

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSettings(t *testing.T) {
	commit, date := fromSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		{Key: "vcs.modified", Value: "true"},
	}, "unknown", "unknown")
	assert.Equal(t, "0123456789ab-dirty", commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", date)

	commit, date = fromSettings(nil, "unknown", "unknown")
	assert.Equal(t, "unknown", commit)
	assert.Equal(t, "unknown", date)
}

func TestShort(t *testing.T) {
	v, c := Version, Commit
	t.Cleanup(func() { Version, Commit = v, c })

	Version, Commit = "dev", "unknown"
	assert.Equal(t, "dev", Short())

	Commit = "abc123"
	assert.Equal(t, "abc123", Short())

	Version = "v1.0.0"
	assert.Equal(t, "v1.0.0", Short())
	assert.Contains(t, String(), "v1.0.0 (commit abc123")
}
