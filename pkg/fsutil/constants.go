package fsutil

// File and directory permission constants.
// These follow standard Unix permission conventions.
const (
	// Default file modes.
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files
	FileModeSecure  = 0o600 // -rw-------: Config files holding the admin password

	// Directory modes.
	DirModeDefault  = 0o755 // drwxr-xr-x: Default for directories
	DirModeSecure   = 0o750 // drwxr-x---: Snapshot directories
	DirModeReadOnly = 0o555 // dr-xr-xr-x: Used by tests for read-only cache dirs
)
