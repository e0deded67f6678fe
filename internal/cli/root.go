package cli

import (
	"context"
	"errors"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"layered-views/internal/adapters"
	"layered-views/internal/app"
	"layered-views/internal/core"
	"layered-views/internal/tracing"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "LAYERED_VIEWS"

type RootConfig struct {
	ConfigFile   string
	LogLevel     string
	Manifest     string
	Paths        []string
	Extension    string
	Cache        bool
	Trace        bool
	TraceOutput  string
	TraceService string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := &RootConfig{}
	cmd := &cobra.Command{
		Use:          "layered-views",
		Short:        "Resolve and render layouts across prioritized search paths",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.Manifest, "manifest", "", "Paths manifest (paths.yaml)")
	flags.StringSliceVar(&cfg.Paths, "path", nil, "Search path as dir[:priority] (repeatable)")
	flags.StringVar(&cfg.Extension, "extension", "", "Layout extension (default \"default\")")
	flags.BoolVar(&cfg.Cache, "cache", false, "Cache resolved layouts in memory")
	flags.BoolVar(&cfg.Trace, "trace", false, "Emit OpenTelemetry spans")
	flags.StringVar(&cfg.TraceOutput, "trace-exporter", "stdout", "Trace exporter: stdout or none")
	flags.StringVar(&cfg.TraceService, "trace-service", tracing.DefaultServiceName, "Service name reported in spans")

	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("manifest", flags.Lookup("manifest"))
	_ = viper.BindPFlag("paths", flags.Lookup("path"))
	_ = viper.BindPFlag("extension", flags.Lookup("extension"))
	_ = viper.BindPFlag("cache", flags.Lookup("cache"))
	_ = viper.BindPFlag("tracing.enabled", flags.Lookup("trace"))
	_ = viper.BindPFlag("tracing.exporter", flags.Lookup("trace-exporter"))
	_ = viper.BindPFlag("tracing.service_name", flags.Lookup("trace-service"))

	cmd.AddCommand(newResolveCommand(cfg))
	cmd.AddCommand(newRenderCommand(cfg))
	cmd.AddCommand(newPathsCommand(cfg))
	cmd.AddCommand(newWatchCommand(cfg))
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("layered-views")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/layered-views")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// setupLogging sends logs to stderr so rendered output on stdout stays
// clean.
func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// newAppService wires the service from the persistent flags.  The returned
// func flushes and stops tracing.
func newAppService(cmd *cobra.Command, cfg *RootConfig) (app.Service, func(), error) {
	service := app.NewService()
	if resolveBool(cmd, cfg.Cache, "cache", "cache") {
		service.Cache = adapters.NewResolutionCacheAdapter(adapters.DefaultResolutionTTL)
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:     resolveBool(cmd, cfg.Trace, "tracing.enabled", "trace"),
		Exporter:    resolveString(cmd, cfg.TraceOutput, "tracing.exporter", "trace-exporter"),
		ServiceName: resolveString(cmd, cfg.TraceService, "tracing.service_name", "trace-service"),
		Writer:      os.Stderr,
	})
	if err != nil {
		return app.Service{}, nil, err
	}
	service.Tracer = provider.Tracer()

	shutdown := func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to flush traces")
		}
	}
	return service, shutdown, nil
}

func exitCodeForError(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidLayoutName):
		return 2
	case errors.Is(err, core.ErrLayoutNotFound):
		return 5
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument:
		return 2
	case errbuilder.CodeNotFound:
		return 5
	case errbuilder.CodeInternal:
		return 6
	default:
		return 1
	}
}
