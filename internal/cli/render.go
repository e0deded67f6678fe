package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"layered-views/internal/app"
)

type renderOptions struct {
	Model  string
	Output string
}

func newRenderCommand(cfg *RootConfig) *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <layout>",
		Short: "Render a layout against a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), cmd, cfg, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Model, "model", "", "YAML/JSON model file")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Write output to this file instead of stdout")

	_ = viper.BindPFlag("model", cmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runRender(ctx context.Context, cmd *cobra.Command, cfg *RootConfig, opts renderOptions, layout string) error {
	service, shutdown, err := newAppService(cmd, cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	result, err := service.Render(ctx, renderRequest(cmd, cfg, opts, layout))
	if err != nil {
		return err
	}
	printRenderResult(cmd, result)
	return nil
}

func renderRequest(cmd *cobra.Command, cfg *RootConfig, opts renderOptions, layout string) app.RenderRequest {
	return app.RenderRequest{
		ManifestPath: resolveString(cmd, cfg.Manifest, "manifest", "manifest"),
		Paths:        resolveStrings(cmd, cfg.Paths, "paths", "path"),
		Layout:       layout,
		Extension:    resolveString(cmd, cfg.Extension, "extension", "extension"),
		ModelPath:    resolveString(cmd, opts.Model, "model", "model"),
		OutputPath:   resolveString(cmd, opts.Output, "output", "output"),
	}
}

func printRenderResult(cmd *cobra.Command, result app.RenderResult) {
	if result.Written != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "written: %s\n", result.Written)
		return
	}
	fmt.Fprint(cmd.OutOrStdout(), result.Output)
}
