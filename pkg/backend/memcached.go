package backend

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/hashicorp/go-version"

	"github.com/glorpus-work/cachectl/internal/logger"
	"github.com/glorpus-work/cachectl/pkg/errors"
)

type memcachedProbe struct {
	addr    string
	timeout time.Duration
	enabled bool
}

func (p memcachedProbe) client() *memcache.Client {
	c := memcache.New(p.addr)
	c.Timeout = p.timeout
	return c
}

func (p memcachedProbe) descriptor() Descriptor {
	return Descriptor{
		Name:     NameMemcached,
		Label:    "Memcached",
		Category: CategoryNetwork,
		Linked:   true,
		Detect:   p.detect,
		Purge:    p.purge,
	}
}

func (p memcachedProbe) detect(ctx context.Context) Detection {
	res := DetectionResult{Backend: NameMemcached}
	if !p.enabled {
		logger.Debug("skipping backend", logger.Fields{"backend": res.Backend, "reason": errors.ErrCheckDisabled.Error()})
		res.Lines = []string{line(Unavailable, "Memcached: Check disabled in configuration")}
		return Detection{Result: res}
	}

	if err := p.ping(ctx); err != nil {
		res.Outcome = Inactive
		res.Lines = []string{
			line(Inactive, "Memcached: Client available"),
			detail("Cannot connect to Memcached server at %s: %v", p.addr, errors.Mark(err, errors.ErrConnectivity)),
		}
		return Detection{Result: res}
	}

	res.Outcome = Active
	res.Lines = []string{
		line(Active, "Memcached: Client available"),
		detail("Connected to server successfully"),
	}
	if stats, err := memcachedStats(ctx, p.addr, p.timeout); err == nil {
		if v, err := version.NewVersion(stats["version"]); err == nil {
			res.Lines = append(res.Lines, detail("Server version: %s", v))
		}
		if b, err := strconv.ParseUint(stats["bytes"], 10, 64); err == nil {
			res.Lines = append(res.Lines, detail("Memory usage: %s MB", megabytes(b)))
		}
	}
	return Detection{Result: res, Targets: []Target{{Key: NameMemcached, Backend: NameMemcached}}}
}

func (p memcachedProbe) ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.client().Ping()
}

// purge opens a fresh client; the detection connection is not reused.
func (p memcachedProbe) purge(ctx context.Context, t Target) PurgeResult {
	res := PurgeResult{Backend: NameMemcached, Target: t.Key}
	err := ctx.Err()
	if err == nil {
		err = p.client().FlushAll()
	}
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) || ctx.Err() != nil {
			res.Message = "Memcached clear error: " + err.Error()
			res.Err = errors.Mark(err, errors.ErrConnectivity)
		} else {
			res.Message = "Failed to clear Memcached: " + err.Error()
			res.Err = errors.Mark(err, errors.ErrPurgeAction)
		}
		return res
	}
	res.Success = true
	res.Message = "Memcached cleared successfully"
	return res
}

// memcachedStats issues the text-protocol "stats" command and returns the
// STAT name/value pairs.
func memcachedStats(ctx context.Context, addr string, timeout time.Duration) (map[string]string, error) {
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}

	if _, err := conn.Write([]byte("stats\r\n")); err != nil {
		return nil, err
	}

	stats := make(map[string]string)
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "END":
			return stats, nil
		case strings.HasPrefix(text, "STAT "):
			fields := strings.SplitN(text, " ", 3)
			if len(fields) == 3 {
				stats[fields[1]] = fields[2]
			}
		default:
			return nil, errors.Wrapf(errors.ErrConnectivity, "unexpected stats reply %q", text)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return nil, errors.Wrap(errors.ErrConnectivity, "stats reply truncated")
}
