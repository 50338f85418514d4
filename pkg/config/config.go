// Package config provides configuration management for cachectl.
// It loads the YAML configuration once at start, fills every missing key with
// its documented default and exposes convenience accessors for the probes.
package config

import (
	"bytes"
	"io"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/glorpus-work/cachectl/pkg/errors"
	"github.com/glorpus-work/cachectl/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Request gate
	AdminPassword string   `yaml:"admin_password"`
	AllowedIPs    []string `yaml:"allowed_ips"`

	// Directories scanned by the file cache and page cache probes.
	CacheDirectories     []string `yaml:"cache_directories"`
	PageCacheDirectories []string `yaml:"page_cache_directories"`

	CacheSettings CacheSettings `yaml:"cache_settings"`

	// Logging
	LogActions  bool              `yaml:"log_actions"`
	LogFile     string            `yaml:"log_file"`
	LogLevel    string            `yaml:"log_level"`  // debug, info, warn, error
	LogFormat   string            `yaml:"log_format"` // text, json
	LogRotation LogRotationConfig `yaml:"log_rotation"`

	// SnapshotDir, when set, receives a tar.gz of every directory before it is purged.
	SnapshotDir string `yaml:"snapshot_dir,omitempty"`

	Hooks  HooksConfig  `yaml:"hooks"`
	Server ServerConfig `yaml:"server"`
}

// CacheSettings holds the network service and directory purge settings.
type CacheSettings struct {
	CheckMemcached bool   `yaml:"check_memcached"`
	MemcachedHost  string `yaml:"memcached_host"`
	MemcachedPort  int    `yaml:"memcached_port"`

	CheckRedis      bool   `yaml:"check_redis"`
	RedisHost       string `yaml:"redis_host"`
	RedisPort       int    `yaml:"redis_port"`
	RedisPassword   string `yaml:"redis_password,omitempty"`
	RedisDB         int    `yaml:"redis_db"`
	RedisAsyncFlush bool   `yaml:"redis_async_flush"`

	// ConnectTimeout bounds each connection attempt to a network service.
	ConnectTimeout time.Duration `yaml:"connect_timeout"`

	RecursiveClear bool          `yaml:"recursive_clear"`
	MaxFileAge     time.Duration `yaml:"max_file_age"` // 0 = all files
}

// LogRotationConfig defines action log rotation settings (powered by lumberjack).
type LogRotationConfig struct {
	MaxSize    int  `yaml:"max_size"`    // megabytes before rotation
	MaxBackups int  `yaml:"max_backups"` // rotated files to keep
	MaxAge     int  `yaml:"max_age"`     // days to retain rotated files
	Compress   bool `yaml:"compress"`
}

// HooksConfig names optional scripts run around a purge pass.
type HooksConfig struct {
	PostPurge string `yaml:"post_purge,omitempty"`
}

// ServerConfig configures the request-driven mode.
type ServerConfig struct {
	Listen string `yaml:"listen"`
	// ServerSoftware overrides the SERVER_SOFTWARE environment variable
	// consulted by the edge cache probe.
	ServerSoftware string `yaml:"server_software,omitempty"`
	// HistorySize is how many purge summaries serve keeps in memory.
	// 0 disables the history.
	HistorySize int `yaml:"history_size"`
}

// Default configuration values.
const (
	DefaultAdminPassword  = "change_this_password_immediately"
	DefaultMemcachedHost  = "localhost"
	DefaultMemcachedPort  = 11211
	DefaultRedisHost      = "localhost"
	DefaultRedisPort      = 6379
	DefaultConnectTimeout = 2 * time.Second
	DefaultLogFile        = "./cache-manager.log"
	DefaultListen         = "127.0.0.1:8080"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultCacheDirectories are the candidate file cache locations.
func DefaultCacheDirectories() []string {
	return []string{"./cache", "./tmp", "./temp", "./var/cache", "../cache", "../tmp"}
}

// DefaultPageCacheDirectories are the candidate page cache locations.
func DefaultPageCacheDirectories() []string {
	return []string{"./wp-content/cache", "./wp-content/cache/page_enhanced", "./cache/page", "../public_html/cache"}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		AdminPassword:        DefaultAdminPassword,
		AllowedIPs:           []string{"127.0.0.1", "::1"},
		CacheDirectories:     DefaultCacheDirectories(),
		PageCacheDirectories: DefaultPageCacheDirectories(),
		CacheSettings: CacheSettings{
			CheckMemcached: true,
			MemcachedHost:  DefaultMemcachedHost,
			MemcachedPort:  DefaultMemcachedPort,
			CheckRedis:     true,
			RedisHost:      DefaultRedisHost,
			RedisPort:      DefaultRedisPort,
			ConnectTimeout: DefaultConnectTimeout,
			RecursiveClear: true,
		},
		LogFile:   DefaultLogFile,
		LogLevel:  "info",
		LogFormat: "text",
		LogRotation: LogRotationConfig{
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Server: ServerConfig{
			Listen: DefaultListen,
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
// Keys absent from the document keep their default value.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	config := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
		}
	}

	config.applyDefaults()
	return config, nil
}

// SaveConfig saves configuration to a file, replacing it atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := fsutil.EnsureDir(filepath.Dir(absPath)); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	// The file carries the admin password, so keep it owner-only.
	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeSecure)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent)
	if err := encoder.Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}

// MemcachedAddr returns the host:port of the memory-object cache service.
func (c *Config) MemcachedAddr() string {
	return net.JoinHostPort(c.CacheSettings.MemcachedHost, strconv.Itoa(c.CacheSettings.MemcachedPort))
}

// RedisAddr returns the host:port of the key-value store service.
func (c *Config) RedisAddr() string {
	return net.JoinHostPort(c.CacheSettings.RedisHost, strconv.Itoa(c.CacheSettings.RedisPort))
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user config directory")
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// applyDefaults fills values that decode to their zero value but must not be zero.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.CacheSettings.MemcachedHost == "" {
		c.CacheSettings.MemcachedHost = defaults.CacheSettings.MemcachedHost
	}
	if c.CacheSettings.MemcachedPort == 0 {
		c.CacheSettings.MemcachedPort = defaults.CacheSettings.MemcachedPort
	}
	if c.CacheSettings.RedisHost == "" {
		c.CacheSettings.RedisHost = defaults.CacheSettings.RedisHost
	}
	if c.CacheSettings.RedisPort == 0 {
		c.CacheSettings.RedisPort = defaults.CacheSettings.RedisPort
	}
	if c.CacheSettings.ConnectTimeout <= 0 {
		c.CacheSettings.ConnectTimeout = defaults.CacheSettings.ConnectTimeout
	}
	if c.CacheSettings.MaxFileAge < 0 {
		c.CacheSettings.MaxFileAge = 0
	}
	if c.LogFile == "" {
		c.LogFile = defaults.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
	if c.Server.Listen == "" {
		c.Server.Listen = defaults.Server.Listen
	}
	if c.AllowedIPs == nil {
		c.AllowedIPs = defaults.AllowedIPs
	}
	if c.CacheDirectories == nil {
		c.CacheDirectories = defaults.CacheDirectories
	}
	if c.PageCacheDirectories == nil {
		c.PageCacheDirectories = defaults.PageCacheDirectories
	}
}
