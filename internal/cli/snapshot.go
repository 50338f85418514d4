package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/cachectl/internal/logger"
	"github.com/glorpus-work/cachectl/pkg/archive"
)

// NewSnapshotCmd creates the snapshot command with subcommands.
func NewSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Inspect and restore pre-purge snapshots",
		Long:  "When snapshot_dir is set, directory caches are archived before every purge",
	}

	cmd.AddCommand(newSnapshotListCmd(), newSnapshotRestoreCmd())
	return cmd
}

func snapshotter() (*archive.Snapshotter, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.SnapshotDir == "" {
		return nil, fmt.Errorf("snapshot_dir is not configured")
	}
	return archive.NewSnapshotter(cfg.SnapshotDir), nil
}

func newSnapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := snapshotter()
			if err != nil {
				return err
			}
			archives, err := s.List()
			if err != nil {
				return err
			}
			for _, a := range archives {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}
}

func newSnapshotRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore ARCHIVE DIR",
		Short: "Restore a snapshot into a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := snapshotter()
			if err != nil {
				return err
			}
			if err := s.Restore(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			logger.Success("Snapshot restored", logger.Fields{"archive": args[0], "dir": args[1]})
			return nil
		},
	}
}
