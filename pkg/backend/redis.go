package backend

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/redis/go-redis/v9"

	"github.com/glorpus-work/cachectl/internal/logger"
	"github.com/glorpus-work/cachectl/pkg/errors"
)

// minAsyncFlushVersion is the first server release that accepts FLUSHALL ASYNC.
var minAsyncFlushVersion = version.Must(version.NewVersion("4.0.0"))

type redisProbe struct {
	addr       string
	password   string
	db         int
	timeout    time.Duration
	enabled    bool
	asyncFlush bool
}

func (p redisProbe) client() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         p.addr,
		Password:     p.password,
		DB:           p.db,
		DialTimeout:  p.timeout,
		ReadTimeout:  p.timeout,
		WriteTimeout: p.timeout,
		MaxRetries:   -1,
	})
}

func (p redisProbe) descriptor() Descriptor {
	return Descriptor{
		Name:     NameRedis,
		Label:    "Redis",
		Category: CategoryNetwork,
		Linked:   true,
		Detect:   p.detect,
		Purge:    p.purge,
	}
}

func (p redisProbe) detect(ctx context.Context) Detection {
	res := DetectionResult{Backend: NameRedis}
	if !p.enabled {
		logger.Debug("skipping backend", logger.Fields{"backend": res.Backend, "reason": errors.ErrCheckDisabled.Error()})
		res.Lines = []string{line(Unavailable, "Redis: Check disabled in configuration")}
		return Detection{Result: res}
	}

	client := p.client()
	defer func() { _ = client.Close() }()

	if err := client.Ping(ctx).Err(); err != nil {
		res.Outcome = Inactive
		res.Lines = []string{
			line(Inactive, "Redis: Client available"),
			detail("Cannot connect to Redis server at %s: %v", p.addr, errors.Mark(err, errors.ErrConnectivity)),
		}
		return Detection{Result: res}
	}

	res.Outcome = Active
	res.Lines = []string{
		line(Active, "Redis: Client available"),
		detail("Connected to server successfully"),
	}

	if used, err := redisInfoField(ctx, client, "memory", "used_memory"); err != nil {
		res.Lines = append(res.Lines, detail("Memory usage: unavailable (%v)", err))
	} else if b, err := strconv.ParseUint(used, 10, 64); err == nil {
		res.Lines = append(res.Lines, detail("Memory usage: %s MB", megabytes(b)))
	}

	if keys, err := client.DBSize(ctx).Result(); err != nil {
		res.Lines = append(res.Lines, detail("Database keys: unavailable (%v)", err))
	} else {
		res.Lines = append(res.Lines, detail("Database keys: %d", keys))
	}
	return Detection{Result: res, Targets: []Target{{Key: NameRedis, Backend: NameRedis}}}
}

// purge opens a fresh client; the detection connection is not reused.
func (p redisProbe) purge(ctx context.Context, t Target) PurgeResult {
	res := PurgeResult{Backend: NameRedis, Target: t.Key}

	client := p.client()
	defer func() { _ = client.Close() }()

	var cmd *redis.StatusCmd
	if p.asyncFlush && supportsAsyncFlush(ctx, client) {
		cmd = client.FlushAllAsync(ctx)
	} else {
		cmd = client.FlushAll(ctx)
	}
	if err := cmd.Err(); err != nil {
		res.Message = "Redis clear error: " + err.Error()
		res.Err = errors.Mark(err, errors.ErrPurgeAction)
		return res
	}
	res.Success = true
	res.Message = "Redis cleared successfully"
	return res
}

func supportsAsyncFlush(ctx context.Context, client *redis.Client) bool {
	raw, err := redisInfoField(ctx, client, "server", "redis_version")
	if err != nil {
		return false
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		return false
	}
	return v.GreaterThanOrEqual(minAsyncFlushVersion)
}

// redisInfoField reads one "key:value" field from an INFO section.
func redisInfoField(ctx context.Context, client *redis.Client, section, key string) (string, error) {
	info, err := client.Info(ctx, section).Result()
	if err != nil {
		return "", err
	}
	if v, ok := parseInfoField(info, key); ok {
		return v, nil
	}
	return "", errors.Wrapf(errors.ErrConnectivity, "INFO %s has no %s", section, key)
}

func parseInfoField(info, key string) (string, bool) {
	for _, l := range strings.Split(info, "\n") {
		l = strings.TrimSpace(l)
		if k, v, ok := strings.Cut(l, ":"); ok && k == key {
			return v, true
		}
	}
	return "", false
}
