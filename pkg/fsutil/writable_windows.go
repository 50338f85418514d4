//go:build windows

package fsutil

import "os"

// Writable reports whether the current process may write to path.
// Windows has no access(2); the owner write bit is the closest signal.
func Writable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}
