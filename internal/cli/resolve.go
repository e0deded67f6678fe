package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"layered-views/internal/app"
)

func newResolveCommand(cfg *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <layout>",
		Short: "Print the file a layout name resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), cmd, cfg, args[0])
		},
	}
}

func runResolve(ctx context.Context, cmd *cobra.Command, cfg *RootConfig, layout string) error {
	service, shutdown, err := newAppService(cmd, cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	result, err := service.Resolve(ctx, app.ResolveRequest{
		ManifestPath: resolveString(cmd, cfg.Manifest, "manifest", "manifest"),
		Paths:        resolveStrings(cmd, cfg.Paths, "paths", "path"),
		Layout:       layout,
		Extension:    resolveString(cmd, cfg.Extension, "extension", "extension"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Layout.Path)
	return nil
}
