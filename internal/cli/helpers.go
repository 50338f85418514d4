package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/glorpus-work/cachectl/internal/logger"
	"github.com/glorpus-work/cachectl/pkg/archive"
	"github.com/glorpus-work/cachectl/pkg/cache"
	"github.com/glorpus-work/cachectl/pkg/config"
	"github.com/glorpus-work/cachectl/pkg/hooks"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	OutputFormat *string
)

// loadConfig loads the configuration and applies the runtime overrides:
// --verbose and the SERVER_SOFTWARE fallback. The result must not be saved.
func loadConfig() (*config.Config, error) {
	cfg, err := readConfig()
	if err != nil {
		return nil, err
	}

	if verbose() {
		cfg.LogLevel = "debug"
	}
	if cfg.Server.ServerSoftware == "" {
		cfg.Server.ServerSoftware = os.Getenv(ServerSoftwareEnv)
	}
	return cfg, nil
}

// readConfig loads the configuration as stored on disk, for commands that
// write it back.
func readConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if verbose() {
		level = "debug"
	}
	logger.InitLogger(level, logger.OutputFormat(cfg.LogFormat))
	return cfg, nil
}

func verbose() bool {
	return Verbose != nil && *Verbose
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// An empty path makes the later read/write fail with a descriptive error.
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

func reportFormat() (cache.Format, error) {
	if OutputFormat == nil {
		return cache.FormatText, nil
	}
	return cache.ParseFormat(*OutputFormat)
}

// purgeSupport bundles the optional collaborators of a purge pass.
type purgeSupport struct {
	options []cache.Option
	hook    *hooks.TengoExecutor
	closers []func() error
}

// newPurgeSupport wires the snapshotter, action log and post-purge hook
// configured in cfg.
func newPurgeSupport(cfg *config.Config) (*purgeSupport, error) {
	ps := &purgeSupport{}

	if cfg.SnapshotDir != "" {
		ps.options = append(ps.options, cache.WithSnapshotter(archive.NewSnapshotter(cfg.SnapshotDir)))
	}

	if cfg.LogActions {
		actions := logger.NewActionLog(cfg.LogFile, logger.Rotation{
			MaxSize:    cfg.LogRotation.MaxSize,
			MaxBackups: cfg.LogRotation.MaxBackups,
			MaxAge:     cfg.LogRotation.MaxAge,
			Compress:   cfg.LogRotation.Compress,
		})
		ps.options = append(ps.options, cache.WithActionLog(actions))
		ps.closers = append(ps.closers, actions.Close)
	}

	if cfg.Hooks.PostPurge != "" {
		ps.hook = hooks.NewTengoExecutor()
		if err := ps.hook.LoadFile(hooks.PostPurge, cfg.Hooks.PostPurge); err != nil {
			return nil, err
		}
	}
	return ps, nil
}

// afterPurge runs the post-purge hook. Hook failures are logged only.
func (ps *purgeSupport) afterPurge(ctx context.Context, report *cache.PurgeReport) {
	if ps.hook == nil {
		return
	}
	err := ps.hook.Execute(ctx, hooks.PostPurge, hooks.PurgeContext{
		Cleared: report.Cleared(),
		Failed:  report.Failed(),
		Results: report.Lines(),
	})
	if err != nil {
		logger.Warn("post-purge hook failed", logger.Fields{"error": err.Error()})
		return
	}
	logger.Debug("post-purge hook finished")
}

func (ps *purgeSupport) Close() {
	for _, c := range ps.closers {
		if err := c(); err != nil {
			logger.Warn("failed to close action log", logger.Fields{"error": err.Error()})
		}
	}
}
