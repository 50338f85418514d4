package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/glorpus-work/cachectl/pkg/errors"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		outcome Outcome
		name    string
		marker  string
	}{
		{Active, "active", "✅"},
		{Inactive, "inactive", "⚠️ "},
		{Unavailable, "unavailable", "❌"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.outcome.String())
			assert.Equal(t, tt.marker, tt.outcome.Marker())
			text, err := tt.outcome.MarshalText()
			assert.NoError(t, err)
			assert.Equal(t, tt.name, string(text))
		})
	}
}

func TestPurgeResultLine(t *testing.T) {
	ok := PurgeResult{Success: true, Message: "Redis cleared successfully"}
	assert.Equal(t, "✅ Redis cleared successfully", ok.Line())
	assert.False(t, ok.Failed())

	advisory := PurgeResult{Message: "LiteSpeed cache: No programmatic purge available"}
	assert.Equal(t, "⚠️  LiteSpeed cache: No programmatic purge available", advisory.Line())
	assert.True(t, advisory.Advisory())
	assert.False(t, advisory.Failed())

	failed := PurgeResult{Message: "Failed to clear OPcache", Err: errors.ErrPurgeAction}
	assert.Equal(t, "❌ Failed to clear OPcache", failed.Line())
	assert.True(t, failed.Failed())
}

func TestMegabytes(t *testing.T) {
	assert.Equal(t, "0", megabytes(0))
	assert.Equal(t, "1", megabytes(1024*1024))
	assert.Equal(t, "1.5", megabytes(1024*1024*3/2))
	assert.Equal(t, "0.01", megabytes(12345))
	assert.Equal(t, "98.77", round2(98.7654))
}

func TestDetailAndLine(t *testing.T) {
	assert.Equal(t, "   - Hit rate: 12%", detail("Hit rate: %d%%", 12))
	assert.Equal(t, "⚠️  APCu: broken", line(Inactive, "APCu: %s", "broken"))
}

func TestParseInfoField(t *testing.T) {
	info := "# Memory\r\nused_memory:1048576\r\nused_memory_human:1.00M\r\n"
	v, ok := parseInfoField(info, "used_memory")
	assert.True(t, ok)
	assert.Equal(t, "1048576", v)

	_, ok = parseInfoField(info, "redis_version")
	assert.False(t, ok)
}
