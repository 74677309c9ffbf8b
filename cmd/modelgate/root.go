package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"modelgate/internal/config"
	"modelgate/internal/logx"
)

// app carries state shared by subcommands after PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string
	ollamaURL  string
	cfg        config.Config
	log        zerolog.Logger
	tracer     trace.TracerProvider
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "modelgate",
		Short:         "REST API and dashboard launcher for local chat models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Resolve(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.LogLevel = a.logLevel
			}
			if a.ollamaURL != "" {
				cfg.OllamaURL = a.ollamaURL
			}
			a.cfg = cfg
			a.log = logx.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogPretty)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("MODELGATE_CONFIG"), "Config file (.yaml, .json or .toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error|off")
	root.PersistentFlags().StringVar(&a.ollamaURL, "ollama-url", "", "Model daemon URL (defaults MODELGATE_OLLAMA_URL or http://localhost:11434)")

	root.AddCommand(newServeCmd(a), newDashboardCmd(a), newModelsCmd(a))
	return root
}
