package cli

import (
	"github.com/spf13/cobra"

	"github.com/glorpus-work/cachectl/internal/logger"
	"github.com/glorpus-work/cachectl/pkg/backend"
	"github.com/glorpus-work/cachectl/pkg/cache"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Detect cache backends and optionally clear them",
		Long: `Probe the host for opcode and object caches, memcached, redis, file and
page cache directories, LiteSpeed and Cloudflare, and print a report.

With --clear every backend found available is purged afterwards. Individual
backend failures are reported in the output; the command still succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, purge)
		},
	}

	cmd.Flags().BoolVar(&purge, "clear", false, "Clear every available cache after detection")

	return cmd
}

func runInspect(cmd *cobra.Command, purge bool) error {
	format, err := reportFormat()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	support, err := newPurgeSupport(cfg)
	if err != nil {
		return err
	}
	defer support.Close()

	ctx := cmd.Context()
	registry := backend.NewRegistry(cfg, backend.Capabilities{}, backend.FromCLI(cfg.Server.ServerSoftware))
	inspector := cache.NewInspector(ctx, registry, support.options...)

	var report *cache.PurgeReport
	if purge {
		report = inspector.PurgeAll(ctx)
		logger.Info("purge finished", logger.Fields{
			"succeeded": report.Succeeded(),
			"failed":    report.Failed(),
			"cleared":   report.Cleared(),
		})
		support.afterPurge(ctx, report)
	}

	return cache.WriteReport(cmd.OutOrStdout(), format, inspector, report)
}
