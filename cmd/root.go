// Package cmd implements the command-line interface: scrape a batch of room
// URLs, or normalize a saved page offline.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"airbnb-rooms-scraper/config"
	"airbnb-rooms-scraper/utils"
)

// Version is set at build time with -ldflags "-X airbnb-rooms-scraper/cmd.Version=..."
var Version = "dev"

var (
	// cfgFile holds the path to the optional settings file.
	cfgFile string

	// debug forces debug logging for all commands
	debug bool

	rootCmd = &cobra.Command{
		Use:           "airbnb-rooms",
		Short:         "Extract structured listing data from Airbnb room pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command. SIGINT and SIGTERM cancel the running command.
func Execute() error {
	// Load .env file early so environment variables are available
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "airbnb-rooms version %s\n", Version)
		},
	})
	rootCmd.AddCommand(newScrapeCommand())
	rootCmd.AddCommand(newParseCommand())
}

// loadConfig reads defaults, the settings file and the environment, then
// applies the command's flags. flagKeys maps flag names to config keys.
func loadConfig(flags *pflag.FlagSet, flagKeys map[string]string) (*config.Config, error) {
	v, err := config.New(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(v, flags, flagKeys); err != nil {
		return nil, err
	}
	if debug {
		v.Set("logLevel", "debug")
	}
	return config.Load(v)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, flagKeys map[string]string) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind %s flag: %w", name, err)
		}
	}
	return nil
}

func newLogger(cfg *config.Config) (*utils.Logger, error) {
	logger, err := utils.NewLogger(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
