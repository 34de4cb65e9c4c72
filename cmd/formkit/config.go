package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

// Config is read from FORMKIT_* environment variables. Command flags take
// precedence.
type Config struct {
	Env       string `env:"FORMKIT_ENV" envDefault:"development"`
	LogLevel  string `env:"FORMKIT_LOG_LEVEL"`
	LogFormat string `env:"FORMKIT_LOG_FORMAT"`

	SchemaDir       string   `env:"FORMKIT_SCHEMA_DIR" envDefault:"forms"`
	Messages        []string `env:"FORMKIT_MESSAGES" envSeparator:","`
	DefaultLanguage string   `env:"FORMKIT_DEFAULT_LANGUAGE" envDefault:"en"`

	KeyPrefix        string `env:"FORMKIT_KEY_PREFIX"`
	KeySeparator     string `env:"FORMKIT_KEY_SEPARATOR"`
	AbsentSuffix     string `env:"FORMKIT_ABSENT_SUFFIX"`
	AttachmentSuffix string `env:"FORMKIT_ATTACHMENT_SUFFIX"`

	HTTP httpserver.Config `envPrefix:"FORMKIT_"`
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	if msgs, _ := cmd.Flags().GetStringSlice("messages"); len(msgs) > 0 {
		cfg.Messages = msgs
	}
	if lang, _ := cmd.Flags().GetString("lang"); lang != "" {
		cfg.DefaultLanguage = lang
	}
	if cfg.LogLevel != "" {
		if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
			return cfg, err
		}
	}
	switch logger.Format(cfg.LogFormat) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		return cfg, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return cfg, nil
}

// KeyFormat returns the key format overrides. Empty parts keep the value of
// each schema.
func (c Config) KeyFormat() form.KeyFormat {
	return form.KeyFormat{
		Prefix:           c.KeyPrefix,
		Separator:        c.KeySeparator,
		AbsentSuffix:     c.AbsentSuffix,
		AttachmentSuffix: c.AttachmentSuffix,
	}
}

// Logger builds the process logger writing to w. Request ids set by the
// router are attached to every record logged with the request context.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithOutput(w),
		logger.WithEnvironment(c.Env, "formkit"),
		logger.WithLevelName(c.LogLevel),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	}
	if c.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(c.LogFormat)))
	}
	return logger.New(opts...)
}
