package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotAndRestore(t *testing.T) {
	tempDir := t.TempDir()
	files := map[string]string{
		"index.html":        "<html>home</html>",
		"blog/post-1.html":  "<html>post</html>",
		"blog/assets/a.css": "body{}",
		"objects/abc.cache": "serialized",
	}

	sourceDir := filepath.Join(tempDir, "cache")
	for path, content := range files {
		full := filepath.Join(sourceDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	s := NewSnapshotter(filepath.Join(tempDir, "snapshots"))
	s.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	archivePath, err := s.Snapshot(context.Background(), sourceDir)
	require.NoError(t, err)
	assert.Equal(t, "-20260304-050607.tar.gz", archivePath[len(archivePath)-len("-20260304-050607.tar.gz"):])
	assert.FileExists(t, archivePath)

	listed, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{archivePath}, listed)

	restoreDir := filepath.Join(tempDir, "restored")
	require.NoError(t, s.Restore(context.Background(), archivePath, restoreDir))
	for path, want := range files {
		got, err := os.ReadFile(filepath.Join(restoreDir, path))
		require.NoError(t, err, path)
		assert.Equal(t, want, string(got))
	}
}

func TestSnapshot_SameSecondGetsSequenceSuffix(t *testing.T) {
	tempDir := t.TempDir()
	sourceDir := filepath.Join(tempDir, "cache")
	require.NoError(t, os.MkdirAll(sourceDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "a"), []byte("a"), 0o644))

	s := NewSnapshotter(filepath.Join(tempDir, "snapshots"))
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first, err := s.Snapshot(context.Background(), sourceDir)
	require.NoError(t, err)
	second, err := s.Snapshot(context.Background(), sourceDir)
	require.NoError(t, err, "a double purge within one second must not lose its snapshot")

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(second, "-20260101-000000-1.tar.gz"), second)

	listed, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, listed)
}

func TestList_OldestFirstAcrossDirectories(t *testing.T) {
	tempDir := t.TempDir()
	zeta := filepath.Join(tempDir, "zeta")
	alpha := filepath.Join(tempDir, "alpha")
	for _, dir := range []string{zeta, alpha} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("a"), 0o644))
	}

	s := NewSnapshotter(filepath.Join(tempDir, "snapshots"))
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return at }

	zetaOld, err := s.Snapshot(context.Background(), zeta)
	require.NoError(t, err)
	at = at.Add(time.Hour)
	alphaNew, err := s.Snapshot(context.Background(), alpha)
	require.NoError(t, err)
	at = at.Add(time.Hour)
	zetaNewest, err := s.Snapshot(context.Background(), zeta)
	require.NoError(t, err)

	listed, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{zetaOld, alphaNew, zetaNewest}, listed)
}

func TestSnapshot_MissingSource(t *testing.T) {
	s := NewSnapshotter(filepath.Join(t.TempDir(), "snapshots"))
	_, err := s.Snapshot(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestSnapshotName(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)
	assert.Equal(t, "var_www_cache-20261019-083000.tar.gz", snapshotName("/var/www/cache", at, 0))
	assert.Equal(t, "var_www_cache-20261019-083000-2.tar.gz", snapshotName("/var/www/cache", at, 2))
	assert.Equal(t, "root-20261019-083000.tar.gz", snapshotName("/", at, 0))
}

func TestRestore_MissingArchive(t *testing.T) {
	s := NewSnapshotter(t.TempDir())
	err := s.Restore(context.Background(), filepath.Join(t.TempDir(), "nope.tar.gz"), t.TempDir())
	assert.Error(t, err)
}
