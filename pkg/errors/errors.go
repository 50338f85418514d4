// Package errors defines the sentinel errors shared by cachectl packages and
// small helpers for wrapping them with context.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Failure taxonomy used by probes and purge actions.
var (
	// ErrCapabilityAbsent is returned when a backend's client or runtime hook is not linked in.
	ErrCapabilityAbsent = fmt.Errorf("capability not available")
	// ErrConnectivity is returned when a backend is present but cannot be reached.
	ErrConnectivity = fmt.Errorf("cannot connect")
	// ErrFilesystem is returned for permission or I/O errors while scanning or deleting.
	ErrFilesystem = fmt.Errorf("filesystem error")
	// ErrPurgeAction is returned when a clear/flush/reset call fails.
	ErrPurgeAction = fmt.Errorf("purge action failed")
	// ErrCheckDisabled is returned when a network check is switched off in the configuration.
	ErrCheckDisabled = fmt.Errorf("check disabled by configuration")
)

// Config errors.
var (
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")
	ErrConfigFileRename  = fmt.Errorf("failed to rename temporary config file")

	// ErrConfigFileExists is returned by config init when the target already exists.
	ErrConfigFileExists = fmt.Errorf("configuration file already exists (use --force to overwrite)")
)

// Hook and snapshot errors.
var (
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
	ErrSnapshot      = fmt.Errorf("failed to snapshot directory")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Mark tags err with a taxonomy sentinel so that errors.Is matches both.
func Mark(err, kind error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
