package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/iammeter/openapps/internal/branding"
	"github.com/iammeter/openapps/internal/config"
	"github.com/iammeter/openapps/internal/logger"
	"github.com/iammeter/openapps/internal/pipeline"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// siteFs is the filesystem every command operates on.
var siteFs afero.Fs = afero.NewOsFs()

var (
	rootDir    string
	configFile string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` validates the app manifests of the directory site and generates the
index the site renders its catalog from.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "Site root containing the apps directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default <root>/"+branding.ConfigFile()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// loadSettings resolves the site settings and a stderr logger for cmd.
// Command-line log flags take precedence over configured values.
func loadSettings(cmd *cobra.Command) (*config.Settings, *slog.Logger, error) {
	settings, err := config.Load(siteFs, rootDir, configFile)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		settings.LogLevel = logLevel
	}
	if logFormat != "" {
		settings.LogFormat = logFormat
	}
	return settings, logger.New(cmd.ErrOrStderr(), settings.LogLevel, settings.LogFormat), nil
}

// validateOptions maps settings onto pipeline options.
func validateOptions(settings *config.Settings, log *slog.Logger) pipeline.ValidateOptions {
	return pipeline.ValidateOptions{
		Fs:      siteFs,
		Root:    settings.Root,
		AppsDir: settings.AppsDir,
		Schema:  settings.Schema,
		Logger:  log,
	}
}
