package config

import (
	"fmt"
	"strconv"
)

// SetValue sets a configuration value by key
// Supported keys:
//   - log_level: string - Logging level (debug, info, warn, error)
//   - log_format: string - text or json
//   - log_actions: bool - Whether purge actions are written to log_file
//   - snapshot_dir: string - Where directory snapshots are written before purge
//   - memcached_host, redis_host: string
//   - memcached_port, redis_port: int
//   - listen: string - Address of the request-driven mode
//   - history_size: int - Purge summaries kept in memory by serve (0 = off)
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "log_level":
		c.LogLevel = value
	case "log_format":
		c.LogFormat = value
	case "log_actions":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.LogActions = boolVal
	case "snapshot_dir":
		c.SnapshotDir = value
	case "memcached_host":
		c.CacheSettings.MemcachedHost = value
	case "redis_host":
		c.CacheSettings.RedisHost = value
	case "memcached_port", "redis_port":
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port value for %s: %s", key, value)
		}
		if key == "memcached_port" {
			c.CacheSettings.MemcachedPort = port
		} else {
			c.CacheSettings.RedisPort = port
		}
	case "listen":
		c.Server.Listen = value
	case "history_size":
		size, err := strconv.Atoi(value)
		if err != nil || size < 0 {
			return fmt.Errorf("invalid size value for %s: %s", key, value)
		}
		c.Server.HistorySize = size
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// GetValue returns the value for key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "log_format":
		return c.LogFormat, nil
	case "log_actions":
		return strconv.FormatBool(c.LogActions), nil
	case "snapshot_dir":
		return c.SnapshotDir, nil
	case "memcached_host":
		return c.CacheSettings.MemcachedHost, nil
	case "redis_host":
		return c.CacheSettings.RedisHost, nil
	case "memcached_port":
		return strconv.Itoa(c.CacheSettings.MemcachedPort), nil
	case "redis_port":
		return strconv.Itoa(c.CacheSettings.RedisPort), nil
	case "listen":
		return c.Server.Listen, nil
	case "history_size":
		return strconv.Itoa(c.Server.HistorySize), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}
