package fsutil

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the name of the application used in paths
	AppName = "cachectl"
)

// GetConfigDir returns the platform-specific configuration directory for the application
// On Linux: ~/.config/cachectl/
// On macOS: ~/Library/Application Support/cachectl/
// On Windows: %AppData%\cachectl\
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}
