//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/cachectl/pkg/config"
)

// writeTestConfig writes a configuration with the network backends disabled
// and one file cache directory holding files. It returns the config path and
// the cache directory.
func writeTestConfig(t *testing.T, files ...string) (string, string) {
	t.Helper()
	root := t.TempDir()
	cacheDir := filepath.Join(root, "cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0o755))
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(cacheDir, name), []byte("cached"), 0o644))
	}

	cfg := config.DefaultConfig()
	cfg.CacheDirectories = []string{cacheDir}
	cfg.PageCacheDirectories = []string{filepath.Join(root, "missing")}
	cfg.CacheSettings.CheckMemcached = false
	cfg.CacheSettings.CheckRedis = false
	cfg.LogFile = filepath.Join(root, "actions.log")

	path := filepath.Join(root, "config.yaml")
	require.NoError(t, cfg.SaveConfig(path))
	return path, cacheDir
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
