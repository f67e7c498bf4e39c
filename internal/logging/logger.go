package logging

import (
	"fmt"
	"os"

	"github.com/mikey/mailecho/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger initializes a logger based on configuration. The console core
// writes to stderr; stdout is reserved for the dry-run reply output. When a
// syslog socket is configured a second core tees events to it.
func InitLogger(cfg *config.Config, verbose bool, jsonFormat bool) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.GetString("logging.level") {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	encoder := newEncoder(cfg.GetString("logging.format") == "json" || jsonFormat)
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	if syslogCfg := cfg.GetSyslog(); syslogCfg.Socket != "" {
		writer, err := newSyslogWriter(syslogCfg.Socket, syslogCfg.Facility, cfg.GetString("service_name"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect syslog socket: %w", err)
		}
		syslogEncoder := zapcore.NewConsoleEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(syslogEncoder, zapcore.AddSync(writer), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// InitConsoleLogger initializes a console-friendly logger without touching
// the configuration layer. Useful before configuration is resolved and in tests.
func InitConsoleLogger(verbose bool, jsonFormat bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(newEncoder(jsonFormat), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func newEncoder(jsonFormat bool) zapcore.Encoder {
	if jsonFormat {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}
