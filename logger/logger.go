package logger

import (
	"io"
	"os"

	"github.com/Dosada05/pokearena/config"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New builds the JSON logger. Unknown levels fall back to info.
func New(level string) zerolog.Logger {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(lvl)
}

func fromConfig(cfg *config.Config) zerolog.Logger {
	return New(cfg.LogLevel)
}

var Module = fx.Provide(fromConfig)
