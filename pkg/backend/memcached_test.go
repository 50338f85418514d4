package backend

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/cachectl/pkg/errors"
)

// fakeMemcached speaks just enough of the text protocol for the probe.
type fakeMemcached struct {
	ln       net.Listener
	mu       sync.Mutex
	flushes  int
	flushErr bool
}

func startFakeMemcached(t *testing.T) *fakeMemcached {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	f := &fakeMemcached{ln: ln}
	t.Cleanup(func() { _ = ln.Close() })
	go f.serve()
	return f
}

func (f *fakeMemcached) addr() string { return f.ln.Addr().String() }

func (f *fakeMemcached) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func (f *fakeMemcached) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	r := bufio.NewReader(conn)
	for {
		cmd, err := r.ReadString('\n')
		if err != nil {
			return
		}
		var reply string
		switch strings.TrimSpace(cmd) {
		case "version":
			reply = "VERSION 1.6.21\r\n"
		case "stats":
			reply = "STAT pid 42\r\nSTAT version 1.6.21\r\nSTAT bytes 3145728\r\nEND\r\n"
		case "flush_all":
			f.mu.Lock()
			f.flushes++
			fail := f.flushErr
			f.mu.Unlock()
			reply = "OK\r\n"
			if fail {
				reply = "SERVER_ERROR out of memory\r\n"
			}
		default:
			reply = "ERROR\r\n"
		}
		if _, err := conn.Write([]byte(reply)); err != nil {
			return
		}
	}
}

func (f *fakeMemcached) flushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flushes
}

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestMemcachedDetect_Connected(t *testing.T) {
	srv := startFakeMemcached(t)
	p := memcachedProbe{addr: srv.addr(), timeout: time.Second, enabled: true}

	det := p.detect(context.Background())

	assert.Equal(t, Active, det.Result.Outcome)
	assert.Equal(t, []string{
		"✅ Memcached: Client available",
		"   - Connected to server successfully",
		"   - Server version: 1.6.21",
		"   - Memory usage: 3 MB",
	}, det.Result.Lines)
	require.Len(t, det.Targets, 1)
	assert.Equal(t, NameMemcached, det.Targets[0].Key)
}

func TestMemcachedDetect_Unreachable(t *testing.T) {
	addr := closedAddr(t)
	p := memcachedProbe{addr: addr, timeout: 500 * time.Millisecond, enabled: true}

	det := p.detect(context.Background())

	assert.Equal(t, Inactive, det.Result.Outcome)
	require.Len(t, det.Result.Lines, 2)
	assert.Equal(t, "⚠️  Memcached: Client available", det.Result.Lines[0])
	assert.Contains(t, det.Result.Lines[1], "Cannot connect to Memcached server at "+addr)
	assert.Empty(t, det.Targets)
}

func TestMemcachedDetect_Disabled(t *testing.T) {
	p := memcachedProbe{addr: closedAddr(t), timeout: time.Second}

	det := p.detect(context.Background())

	assert.Equal(t, Unavailable, det.Result.Outcome)
	assert.Equal(t, []string{"❌ Memcached: Check disabled in configuration"}, det.Result.Lines)
	assert.Empty(t, det.Targets)
}

func TestMemcachedPurge(t *testing.T) {
	srv := startFakeMemcached(t)
	p := memcachedProbe{addr: srv.addr(), timeout: time.Second, enabled: true}

	res := p.purge(context.Background(), Target{Key: NameMemcached, Backend: NameMemcached})

	assert.True(t, res.Success)
	assert.Equal(t, "✅ Memcached cleared successfully", res.Line())
	assert.Equal(t, 1, srv.flushCount())
}

func TestMemcachedPurge_ServerRejects(t *testing.T) {
	srv := startFakeMemcached(t)
	srv.mu.Lock()
	srv.flushErr = true
	srv.mu.Unlock()
	p := memcachedProbe{addr: srv.addr(), timeout: time.Second, enabled: true}

	res := p.purge(context.Background(), Target{Key: NameMemcached, Backend: NameMemcached})

	assert.False(t, res.Success)
	assert.True(t, errors.Is(res.Err, errors.ErrPurgeAction))
	assert.Contains(t, res.Line(), "❌ Failed to clear Memcached")
}

func TestMemcachedPurge_Unreachable(t *testing.T) {
	p := memcachedProbe{addr: closedAddr(t), timeout: 500 * time.Millisecond, enabled: true}

	res := p.purge(context.Background(), Target{Key: NameMemcached, Backend: NameMemcached})

	assert.True(t, res.Failed())
	assert.True(t, errors.Is(res.Err, errors.ErrConnectivity))
	assert.Contains(t, res.Line(), "❌ Memcached clear error:")
}

func TestMemcachedStats(t *testing.T) {
	srv := startFakeMemcached(t)

	stats, err := memcachedStats(context.Background(), srv.addr(), time.Second)

	require.NoError(t, err)
	assert.Equal(t, "3145728", stats["bytes"])
	assert.Equal(t, "1.6.21", stats["version"])
}
