package inkdata

import (
	rawslog "log/slog"
	"os"

	"github.com/inkdata/inkdata.go/internal/codec"
	"github.com/inkdata/inkdata.go/pkg/logger"
	"github.com/inkdata/inkdata.go/pkg/logger/slog"
	"github.com/inkdata/inkdata.go/pkg/models"
	"github.com/rs/zerolog"
)

// Environment variables read by NewConfig.
const (
	// LogLevelEnv holds the default log level.
	LogLevelEnv = "INKDATA_LOG_LEVEL"
	// LogFormatEnv selects "json" (zerolog) or "text" (log/slog) output.
	LogFormatEnv = "INKDATA_LOG_FORMAT"
)

const (
	defaultLogLevel  = "warn"
	defaultLogFormat = "json"
)

type Config struct {
	Marshaler   codec.Marshaler
	Unmarshaler codec.Unmarshaler
	Logger      logger.Logger

	// StrictChannels rejects loaded strokes whose channels differ in length.
	StrictChannels bool
}

// NewConfig returns a Config using the pretty-printed JSON format and a
// logger writing to stderr at the level named by INKDATA_LOG_LEVEL. The log
// lines are zerolog JSON unless INKDATA_LOG_FORMAT is "text".
func NewConfig() *Config {
	return &Config{
		Marshaler:   models.JSONMarshaler{},
		Unmarshaler: models.JSONUnmarshaler{},
		Logger:      defaultLogger(),
	}
}

// NewCBORConfig is like NewConfig but reads and writes CBOR.
func NewCBORConfig() *Config {
	cfg := NewConfig()
	cfg.Marshaler = models.CborMarshaler{}
	cfg.Unmarshaler = models.CborUnmarshaler{}
	return cfg
}

func defaultLogger() logger.Logger {
	level, err := zerolog.ParseLevel(GetEnvOrDefault(LogLevelEnv, defaultLogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	if GetEnvOrDefault(LogFormatEnv, defaultLogFormat) == "text" {
		return slog.NewText(os.Stderr, slogLevel(level))
	}
	logData, err := logger.New().Level(level).Make()
	if err != nil {
		return nopLogger()
	}
	return logData
}

func nopLogger() logger.Logger {
	return &logger.LogData{Logger: zerolog.Nop()}
}

func slogLevel(level zerolog.Level) rawslog.Level {
	switch {
	case level <= zerolog.DebugLevel:
		return rawslog.LevelDebug
	case level == zerolog.InfoLevel:
		return rawslog.LevelInfo
	case level == zerolog.WarnLevel:
		return rawslog.LevelWarn
	default:
		return rawslog.LevelError
	}
}
