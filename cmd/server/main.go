// Package main is the entry point for the vagabond-api server and CLI
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/vagabond-api/cmd/server/client"
	"github.com/KirkDiggler/vagabond-api/internal/config"
)

var (
	envFile   string
	redisURL  string
	logLevel  string
	logFormat string
	locale    string
	actAs     string
	director  bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "vagabond-api",
	Short: "Vagabond power rolls and hero tokens",
	Long: `vagabond-api resolves Vagabond power rolls against any number of targets
and owns the party's hero tokens and the director's malice.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&envFile, "env-file", ".env", "Optional .env file")
	flags.StringVar(&redisURL, "redis-url", "", "Redis address or URL (overrides VAGABOND_REDIS_URL)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides VAGABOND_LOG_LEVEL)")
	flags.StringVar(&logFormat, "log-format", "", "text or json (overrides VAGABOND_LOG_FORMAT)")
	flags.StringVar(&locale, "locale", "", "Message locale (overrides VAGABOND_LOCALE)")
	flags.StringVar(&actAs, "user", "", "User ID to act as (overrides VAGABOND_USER_ID)")
	flags.BoolVar(&director, "director", false, "Run as the active director (overrides VAGABOND_DIRECTOR)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(spendCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(client.ClientCmd)
}

// loadConfig reads the environment and applies flag overrides
func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("redis-url") {
		loaded.Redis.URL = redisURL
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		loaded.LogFormat = logFormat
	}
	if flags.Changed("locale") {
		loaded.Locale = locale
	}
	if flags.Changed("user") {
		loaded.UserID = actAs
	}
	if flags.Changed("director") {
		loaded.Director = director
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	slog.SetDefault(loaded.NewLogger(os.Stderr))
	cfg = loaded
	return nil
}
