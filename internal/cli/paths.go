package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"layered-views/internal/app"
)

func newPathsCommand(cfg *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List search paths in probe order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPaths(cmd.Context(), cmd, cfg)
		},
	}
}

func runPaths(ctx context.Context, cmd *cobra.Command, cfg *RootConfig) error {
	service := app.NewService()
	result, err := service.Paths(ctx, app.PathsRequest{
		ManifestPath: resolveString(cmd, cfg.Manifest, "manifest", "manifest"),
		Paths:        resolveStrings(cmd, cfg.Paths, "paths", "path"),
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tDIRECTORY")
	for _, entry := range result.Paths {
		fmt.Fprintf(w, "%d\t%s\n", entry.Priority, entry.Directory)
	}
	return w.Flush()
}
