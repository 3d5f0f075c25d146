// Package config loads process configuration from VAGABOND_* environment
// variables, optionally seeded from .env files.
package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "VAGABOND_"

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the process configuration
type Config struct {
	Redis    RedisConfig
	GRPCPort int    `env:"GRPC_PORT" envDefault:"50051"`
	Locale   string `env:"LOCALE" envDefault:"en-US"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Discord DiscordConfig `envPrefix:"DISCORD_"`

	// OTelEndpoint enables tracing when set, e.g. localhost:4318
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	ServiceName  string `env:"SERVICE_NAME" envDefault:"vagabond-api"`

	// Director marks this process as the active director, the single writer
	// of hero tokens and malice
	Director bool `env:"DIRECTOR"`

	// ParticipantID identifies this process on the broadcast channel; a
	// random one is assigned when empty
	ParticipantID string `env:"PARTICIPANT_ID"`

	// UserID is the user the CLI acts as
	UserID string `env:"USER_ID" envDefault:"director"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	URL      string `env:"REDIS_URL" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// DiscordConfig holds the optional chat relay settings
type DiscordConfig struct {
	Token     string `env:"TOKEN"`
	ChannelID string `env:"CHANNEL_ID"`
}

// Enabled reports whether the relay is configured
func (d DiscordConfig) Enabled() bool {
	return d.Token != "" && d.ChannelID != ""
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func logLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Redis.URL == "" {
		vb.RequiredField("Redis.URL")
	}
	errors.ValidateRange("GRPCPort", c.GRPCPort, 1, 65535, vb)
	if c.Redis.DB < 0 {
		vb.InvalidField("Redis.DB", "cannot be negative")
	}
	errors.ValidateEnum("LogLevel", strings.ToLower(c.LogLevel), logLevels(), vb)
	errors.ValidateEnum("LogFormat", strings.ToLower(c.LogFormat), []string{LogFormatText, LogFormatJSON}, vb)
	if (c.Discord.Token == "") != (c.Discord.ChannelID == "") {
		vb.InvalidField("Discord", "token and channel ID must be set together")
	}

	return vb.Build()
}

// Load reads the given .env files, if present, and then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read %s", file)
		}
		slog.Debug("Loaded env file", "path", file)
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Localizer returns the catalog localizer for the configured locale
func (c *Config) Localizer() i18n.Localizer {
	return i18n.Default().Localizer(c.Locale)
}

// NewLogger builds the structured logger described by the config
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levels[strings.ToLower(c.LogLevel)]}
	if strings.ToLower(c.LogFormat) == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
