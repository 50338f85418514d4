package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/cachectl/pkg/backend"
	"github.com/glorpus-work/cachectl/pkg/cache"
	"github.com/glorpus-work/cachectl/pkg/hostinfo"
)

// NewQuickCmd creates the quick test command.
func NewQuickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick",
		Short: "Quick cache availability test",
		Long:  "Print one line per cache backend followed by basic server information",
		Args:  cobra.NoArgs,
		RunE:  runQuick,
	}
}

func runQuick(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	registry := backend.NewRegistry(cfg, backend.Capabilities{}, backend.FromCLI(cfg.Server.ServerSoftware))
	inspector := cache.NewInspector(ctx, registry)

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "🔍 Quick Cache Test")
	_, _ = fmt.Fprintln(out, strings.Repeat("=", QuickRuleWidth))
	writeQuickLines(out, registry, inspector)

	_, _ = fmt.Fprintln(out, "\n📊 Server Info:")
	for _, l := range hostinfo.Collect(ctx, cfg.Server.ServerSoftware).Lines() {
		_, _ = fmt.Fprintln(out, l)
	}
	_, _ = fmt.Fprintln(out, "\nTest completed!")
	return nil
}

// writeQuickLines condenses each detection result to one line; directory
// backends get one line per discovered directory.
func writeQuickLines(out io.Writer, registry *backend.Registry, inspector *cache.Inspector) {
	targets := make(map[string][]backend.Target)
	for _, t := range inspector.Available() {
		targets[t.Backend] = append(targets[t.Backend], t)
	}

	for _, res := range inspector.DetectionResults() {
		d, _ := registry.Lookup(res.Backend)
		if d.Category == backend.CategoryFS {
			if res.Outcome != backend.Active {
				if res.Backend == backend.NameFileCache {
					_, _ = fmt.Fprintf(out, "%s %s: None found\n", backend.MarkerFail, d.Label)
				}
				continue
			}
			for _, t := range targets[res.Backend] {
				_, _ = fmt.Fprintf(out, "%s %s: %s\n", backend.MarkerOK, d.Label, t.Path)
			}
			continue
		}

		status := "Not available"
		switch res.Outcome {
		case backend.Active:
			status = "Active"
		case backend.Inactive:
			status = "Inactive"
		}
		_, _ = fmt.Fprintf(out, "%s %s: %s\n", res.Outcome.Marker(), d.Label, status)
	}
}
