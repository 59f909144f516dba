package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/clickaway/internal/config"
	"github.com/vango-dev/clickaway/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clickaway",
		Short: "Outside-click detection for server-driven pages",
		Long: `clickaway serves a demo page whose dropdown closes when the user
presses anywhere outside it, and replays scripted interactions against
the same page in-process.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "path to "+config.ConfigFileName)
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		serveCmd(),
		simulateCmd(),
		decodeCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig reads --config when set, otherwise returns defaults, then
// applies --log-level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.New()
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
		if _, err := cfg.LogLevel(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
