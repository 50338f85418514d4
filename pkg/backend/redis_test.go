package backend

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/cachectl/pkg/errors"
)

func newRedisProbe(addr string) redisProbe {
	return redisProbe{addr: addr, timeout: time.Second, enabled: true}
}

func TestRedisDetect_Connected(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("page:/", "<html>"))
	require.NoError(t, mr.Set("page:/about", "<html>"))

	det := newRedisProbe(mr.Addr()).detect(context.Background())

	assert.Equal(t, Active, det.Result.Outcome)
	assert.Equal(t, "✅ Redis: Client available", det.Result.Lines[0])
	assert.Equal(t, "   - Connected to server successfully", det.Result.Lines[1])
	assert.Contains(t, det.Result.Lines, "   - Database keys: 2")
	require.Len(t, det.Targets, 1)
	assert.Equal(t, NameRedis, det.Targets[0].Key)
}

func TestRedisDetect_WrongPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	p := newRedisProbe(mr.Addr())
	p.password = "wrong"
	det := p.detect(context.Background())

	assert.Equal(t, Inactive, det.Result.Outcome)
	assert.Empty(t, det.Targets)
}

func TestRedisDetect_Unreachable(t *testing.T) {
	addr := closedAddr(t)

	det := newRedisProbe(addr).detect(context.Background())

	assert.Equal(t, Inactive, det.Result.Outcome)
	require.Len(t, det.Result.Lines, 2)
	assert.Equal(t, "⚠️  Redis: Client available", det.Result.Lines[0])
	assert.Contains(t, det.Result.Lines[1], "Cannot connect to Redis server at "+addr)
	assert.Empty(t, det.Targets)
}

func TestRedisDetect_Disabled(t *testing.T) {
	p := newRedisProbe(closedAddr(t))
	p.enabled = false

	det := p.detect(context.Background())

	assert.Equal(t, Unavailable, det.Result.Outcome)
	assert.Equal(t, []string{"❌ Redis: Check disabled in configuration"}, det.Result.Lines)
}

func TestRedisPurge(t *testing.T) {
	for _, async := range []bool{false, true} {
		t.Run(map[bool]string{false: "sync", true: "async"}[async], func(t *testing.T) {
			mr := miniredis.RunT(t)
			require.NoError(t, mr.Set("a", "1"))
			require.NoError(t, mr.Set("b", "2"))

			p := newRedisProbe(mr.Addr())
			p.asyncFlush = async
			res := p.purge(context.Background(), Target{Key: NameRedis, Backend: NameRedis})

			assert.True(t, res.Success)
			assert.Equal(t, "✅ Redis cleared successfully", res.Line())
			assert.Empty(t, mr.Keys())
		})
	}
}

func TestRedisPurge_Unreachable(t *testing.T) {
	res := newRedisProbe(closedAddr(t)).purge(context.Background(), Target{Key: NameRedis, Backend: NameRedis})

	assert.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err, errors.ErrPurgeAction))
	assert.Contains(t, res.Line(), "❌ Redis clear error:")
}
