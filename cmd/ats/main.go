package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/ats-resume-optimizer/internal/cli"
	"github.com/Veraticus/ats-resume-optimizer/internal/common"
	"github.com/Veraticus/ats-resume-optimizer/internal/config"
	"github.com/Veraticus/ats-resume-optimizer/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ats",
		Short: "📄 Match your resume against a job description",
		Long: `ats: an ATS resume optimizer client.

Upload a PDF resume, paste a job description and get a match score with the
keywords, skills and projects your resume is missing.

Runs the interactive client when no command is given.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/ats/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("log-file", "", "write logs to this file while the interactive client runs")
	flags.String("theme", themes.Default.Name, fmt.Sprintf("color theme (%s)", strings.Join(themes.Names(), ", ")))
	flags.String("service-url", "", "analysis service endpoint (default: "+config.DefaultServiceConfig().URL+")")
	flags.Duration("timeout", 0, "request timeout, 0 for none")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("logging.file", flags.Lookup("log-file"))
	_ = viper.BindPFlag("ui.theme", flags.Lookup("theme"))
	_ = viper.BindPFlag("service.url", flags.Lookup("service-url"))
	_ = viper.BindPFlag("service.timeout", flags.Lookup("timeout"))

	// The interactive client is the default command.
	var tuiOpts tuiOptions
	addTUIFlags(cmd, &tuiOpts)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runTUI(cmd, tuiOpts)
	}

	// Add commands
	cmd.AddCommand(analyzeCmd())
	cmd.AddCommand(tuiCmd())
	cmd.AddCommand(pingCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	err := newRootCmd().ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err, err.Error())))
		slog.Debug("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// .env first so that viper sees its variables
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/ats", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("ATS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if theme := viper.GetString("ui.theme"); theme != "" && !themes.IsValid(theme) {
		return fmt.Errorf("%w: unknown theme %q (available: %s)",
			common.ErrInvalidConfig, theme, strings.Join(themes.Names(), ", "))
	}

	// Set up logging
	if err := setupLogging(os.Stderr); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging(w io.Writer) error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(w, level, viper.GetString("logging.format"))
}

// redirectLogging moves logging off the terminal while a full-screen program
// owns it. The returned function closes the log file.
func redirectLogging() (func(), error) {
	path := viper.GetString("logging.file")
	if path == "" {
		return func() {}, setupLogging(io.Discard)
	}

	f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := setupLogging(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ats version %s\n", version)
		},
	}
}
