package cli

import (
	"github.com/spf13/cobra"

	"github.com/glorpus-work/cachectl/internal/logger"
	"github.com/glorpus-work/cachectl/pkg/web"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the password protected cache manager page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}
			if cfg.AdminPassword == "" {
				logger.Warn("admin_password is empty; every login will be rejected")
			}

			support, err := newPurgeSupport(cfg)
			if err != nil {
				return err
			}
			defer support.Close()

			opts := []web.Option{
				web.WithInspectorOptions(support.options...),
				web.WithPostPurge(support.afterPurge),
			}
			if cfg.Server.HistorySize > 0 {
				history, err := web.NewHistory(cfg.Server.HistorySize)
				if err != nil {
					return err
				}
				opts = append(opts, web.WithHistory(history))
			}

			srv := web.NewServer(cfg, opts...)
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config)")

	return cmd
}
