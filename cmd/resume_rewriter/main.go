// Package main provides the resume_rewriter CLI: one-shot rewrites, highlight extraction and
// the HTTP API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-rewriter/internal/config"
	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/logging"
	"github.com/jonathan/resume-rewriter/internal/rewriting"
)

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	dial llm.DialFunc // nil selects the provider from configuration

	configPath string
	verbose    bool
	logLevel   string
	apiKey     string
	generate   bool

	cfg          *config.Config
	v            *viper.Viper
	logger       *slog.Logger
	orchestrator *rewriting.Orchestrator
	settings     config.SettingsProvider
}

func newRootCmd(dial llm.DialFunc) *cobra.Command {
	a := &app{dial: dial}

	rootCmd := &cobra.Command{
		Use:           "resume_rewriter",
		Short:         "Resume text rewriting and highlight extraction",
		Long:          "resume_rewriter tightens resume fragments into strictly formatted lines and bullets, optionally through a generation service, and extracts the spans worth emphasising.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML or JSON config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print a human-readable summary to stderr")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	flags.StringVar(&a.apiKey, "api-key", "", "Generation API key (overrides GEMINI_API_KEY / GENERATION_API_KEY)")
	flags.BoolVar(&a.generate, "generate", false, "Enable the generation service (overrides GENERATION_ENABLED)")

	rootCmd.AddCommand(
		newRewriteCmd(a),
		newStructuredCmd(a),
		newBatchCmd(a),
		newHighlightCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// load reads configuration and builds the logger, orchestrator and settings provider.
func (a *app) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, v, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg, a.v = cfg, v

	level := cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.logger = logging.New(level, cfg.Log.Format, cmd.ErrOrStderr())

	models := llm.ConfigFor(cfg.Generation.Provider)
	if cfg.Generation.Model != "" {
		models = models.WithAllModels(cfg.Generation.Model)
	}
	if cfg.Generation.Endpoint != "" {
		models.Endpoint = cfg.Generation.Endpoint
	}

	a.orchestrator = rewriting.New(a.dial,
		rewriting.WithModels(models),
		rewriting.WithTimeout(cfg.Generation.Timeout),
		rewriting.WithLogger(a.logger),
	)
	a.settings = a.settingsProvider(cmd)
	return nil
}

// settingsProvider reads settings fresh from configuration unless a command-line flag pins
// them for this process.
func (a *app) settingsProvider(cmd *cobra.Command) config.SettingsProvider {
	source := config.NewSource(a.v)
	keyChanged := cmd.Flags().Changed("api-key")
	genChanged := cmd.Flags().Changed("generate")
	if !keyChanged && !genChanged {
		return source
	}

	settings := source.GenerationSettings()
	if keyChanged {
		settings.APIKey = a.apiKey
	}
	if genChanged {
		settings.Enabled = a.generate
	}
	return config.Static(settings)
}

func main() {
	if err := newRootCmd(nil).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
