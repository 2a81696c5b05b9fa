package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ghostroot/internal/config"
	"ghostroot/internal/generate"
)

var (
	cfgFile string
	debug   bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ghostroot",
	Short: "Historical-linguistics research loop over a synthetic corpus",
	Long: `ghostroot simulates an iterative historical-linguistics research loop:
a speaker agent generates inscriptions and sentences of a simulated extinct
language, a researcher agent analyzes the growing corpus - token statistics,
gloss proposals, research questions, cognate and proto-root hypotheses - and
everything is persisted to append-only JSON stores for the next cycle.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ghostroot/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "ghostroot")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("ghostroot")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("data.dir", "data")
	viper.SetDefault("generation.transport", "http")
	viper.SetDefault("generation.ollama_url", generate.DefaultURL)
	viper.SetDefault("generation.ollama_bin", "ollama")
	viper.SetDefault("generation.speaker_model", "qwen3:4b")
	viper.SetDefault("generation.researcher_model", "ghostroot-concise")
	viper.SetDefault("generation.speaker_timeout", "30s")
	viper.SetDefault("generation.researcher_timeout", "300s")
	viper.SetDefault("speaker.language", "ghostlang")
	viper.SetDefault("speaker.max_words", 6)
	viper.SetDefault("analysis.max_hypotheses", 3)
	viper.SetDefault("analysis.review_all_questions", false)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initLogger() error {
	zapConfig := zap.NewProductionConfig()
	if debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	logger, err = zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	return nil
}

// newGenerator builds the configured transport bound to one model.
func newGenerator(s config.Settings, model string) (generate.Generator, error) {
	switch s.Transport {
	case config.TransportProcess:
		return generate.NewProcessClient(s.OllamaBin, model), nil
	case config.TransportHTTP, "":
		return generate.NewOllamaClient(s.OllamaURL, model)
	default:
		return nil, fmt.Errorf("unknown generation transport %q", s.Transport)
	}
}
