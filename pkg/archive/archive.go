// Package archive writes tar.gz snapshots of cache directories before they are
// purged and restores them on request.
package archive

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mholt/archives"

	"github.com/glorpus-work/cachectl/pkg/errors"
	"github.com/glorpus-work/cachectl/pkg/fsutil"
)

const (
	snapshotExt    = ".tar.gz"
	snapshotLayout = "20060102-150405"

	// maxSnapshotsPerSecond bounds the sequence suffix added when a directory
	// is snapshotted more than once within the same second.
	maxSnapshotsPerSecond = 100
)

var snapshotStamp = regexp.MustCompile(`-(\d{8}-\d{6})(?:-(\d+))?\.tar\.gz$`)

// Snapshotter stores directory snapshots under a single output directory.
type Snapshotter struct {
	dir string
	now func() time.Time
}

// NewSnapshotter returns a Snapshotter writing into dir.
func NewSnapshotter(dir string) *Snapshotter {
	return &Snapshotter{dir: dir, now: time.Now}
}

// Snapshot archives the contents of sourceDir and returns the archive path.
func (s *Snapshotter) Snapshot(ctx context.Context, sourceDir string) (string, error) {
	absolutePath, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", errors.Wrapf(err, "failed to get absolute path for %s", sourceDir)
	}
	if err := os.MkdirAll(s.dir, fsutil.DirModeSecure); err != nil {
		return "", errors.Wrapf(err, "failed to create snapshot directory %s", s.dir)
	}

	files, err := archives.FilesFromDisk(ctx, nil, map[string]string{
		absolutePath + string(os.PathSeparator): "",
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to read files from %s", sourceDir)
	}

	archivePath, file, err := s.create(absolutePath)
	if err != nil {
		return "", err
	}

	format := archives.CompressedArchive{
		Compression: archives.Gz{},
		Archival:    archives.Tar{},
	}
	archiveErr := format.Archive(ctx, file, files)
	syncErr := file.Sync()
	closeErr := file.Close()
	if err := firstErr(archiveErr, syncErr, closeErr); err != nil {
		_ = os.Remove(archivePath)
		return "", errors.Wrapf(err, "failed to write archive %s", archivePath)
	}
	return archivePath, nil
}

// create opens a new archive file for absDir, adding a sequence suffix when
// a snapshot with the same timestamp already exists.
func (s *Snapshotter) create(absDir string) (string, *os.File, error) {
	at := s.now()
	for seq := 0; seq < maxSnapshotsPerSecond; seq++ {
		archivePath := filepath.Join(s.dir, snapshotName(absDir, at, seq))
		file, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fsutil.FileModeSecure)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", nil, errors.Wrapf(err, "failed to create archive %s", archivePath)
		}
		return archivePath, file, nil
	}
	return "", nil, errors.Wrapf(fs.ErrExist, "too many snapshots of %s at %s", absDir, at.Format(snapshotLayout))
}

// Restore extracts a snapshot into destDir, overwriting files that exist.
func (s *Snapshotter) Restore(ctx context.Context, archivePath, destDir string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to open archive %s", archivePath)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	if err := fsutil.EnsureDir(destDir); err != nil {
		return errors.Wrapf(err, "failed to create destination directory %s", destDir)
	}

	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return extractEntry(fsys, path, destDir, d)
	})
}

// List returns the snapshots in the output directory, oldest first. Snapshots
// taken in the same second keep the order they were written in.
func (s *Snapshotter) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+snapshotExt))
	if err != nil {
		return nil, err
	}

	type entry struct {
		path  string
		stamp string
		seq   int
	}
	entries := make([]entry, 0, len(matches))
	for _, m := range matches {
		e := entry{path: m}
		if sub := snapshotStamp.FindStringSubmatch(filepath.Base(m)); sub != nil {
			e.stamp = sub[1]
			e.seq, _ = strconv.Atoi(sub[2])
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].stamp != entries[j].stamp {
			return entries[i].stamp < entries[j].stamp
		}
		return entries[i].seq < entries[j].seq
	})

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.path
	}
	return paths, nil
}

func snapshotName(absDir string, at time.Time, seq int) string {
	slug := strings.Trim(strings.NewReplacer("/", "_", "\\", "_", ":", "").Replace(absDir), "_")
	if slug == "" {
		slug = "root"
	}
	name := slug + "-" + at.Format(snapshotLayout)
	if seq > 0 {
		name += "-" + strconv.Itoa(seq)
	}
	return name + snapshotExt
}

func extractEntry(fsys fs.FS, path, destDir string, d fs.DirEntry) error {
	if path == "." {
		return nil
	}

	targetPath := filepath.Join(destDir, path)
	if d.IsDir() {
		return fsutil.EnsureDir(targetPath)
	}

	info, err := d.Info()
	if err != nil {
		return errors.Wrapf(err, "failed to get file info for %s", path)
	}
	// symlinks inside cache directories are not restored
	if !info.Mode().IsRegular() {
		return nil
	}
	return writeRegularFile(fsys, path, targetPath, info)
}

func writeRegularFile(fsys fs.FS, path, targetPath string, info fs.FileInfo) error {
	srcFile, err := fsys.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s in archive", path)
	}
	defer func() { _ = srcFile.Close() }()

	if err := fsutil.EnsureDir(filepath.Dir(targetPath)); err != nil {
		return errors.Wrapf(err, "failed to create parent directory for %s", path)
	}

	dstFile, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", targetPath)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return errors.Wrapf(err, "failed to copy %s", path)
	}
	return os.Chtimes(targetPath, info.ModTime(), info.ModTime())
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
