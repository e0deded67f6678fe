package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"layered-views/internal/app"
)

func newWatchCommand(cfg *RootConfig) *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "watch <layout>",
		Short: "Render a layout and re-render it whenever a search path changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, cfg, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Model, "model", "", "YAML/JSON model file")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Write output to this file instead of stdout")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, cfg *RootConfig, opts renderOptions, layout string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, shutdown, err := newAppService(cmd, cfg)
	if err != nil {
		return err
	}
	defer shutdown()

	return service.Watch(ctx, renderRequest(cmd, cfg, opts, layout), func(result app.RenderResult, err error) {
		if err != nil {
			log.Error().Err(err).Str("layout", layout).Msg("render failed")
			return
		}
		printRenderResult(cmd, result)
	})
}
