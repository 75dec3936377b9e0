package config

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger JSON ke stdout (console writer kalau debug), plus file berotasi kalau LOG_FILE diisi.
func NewLogger(cfg *Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.GinMode == "debug" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	if cfg.LogFile != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     30, // hari
			Compress:   true,
		})
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("app", "simrs-backend").Logger()
}
