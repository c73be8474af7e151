// Package logger builds zap loggers from the service log configuration,
// with optional file output rotated by lumberjack.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sitegauge/engine/internal/common/configtypes"
)

// NewLogger creates a zap logger from config. At least one output
// (console or file) must be enabled.
func NewLogger(config configtypes.LogConfig) (*zap.Logger, error) {
	globalLevel := parseLogLevel(config.Level)

	var cores []zapcore.Core

	if config.Console.Enabled {
		level := resolveLogLevel(config.Console.Level, globalLevel)
		encoder := createEncoder(config.Console.Format)
		writer := zapcore.Lock(os.Stdout)
		cores = append(cores, zapcore.NewCore(encoder, writer, zap.NewAtomicLevelAt(level)))
	}

	if config.File.Enabled {
		if config.File.Path == "" {
			return nil, fmt.Errorf("file.path must be specified when file logging is enabled")
		}
		level := resolveLogLevel(config.File.Level, globalLevel)
		encoder := createEncoder(config.File.Format)
		writer := createFileWriter(config.File.Path, config.File.Rotation)
		cores = append(cores, zapcore.NewCore(encoder, writer, zap.NewAtomicLevelAt(level)))
	}

	if len(cores) == 0 {
		return nil, fmt.Errorf("at least one log output (console or file) must be enabled")
	}

	var core zapcore.Core
	if len(cores) == 1 {
		core = cores[0]
	} else {
		core = zapcore.NewTee(cores...)
	}

	return zap.New(core), nil
}

// NewDefaultLogger creates a console logger at INFO level, used during
// startup before the configuration is loaded.
func NewDefaultLogger() (*zap.Logger, error) {
	return NewLogger(configtypes.LogConfig{
		Level: configtypes.LogLevelInfo,
		Console: configtypes.ConsoleLogConfig{
			Enabled: true,
			Format:  configtypes.LogFormatConsole,
		},
	})
}

// parseLogLevel converts a level string to a zap level, defaulting to INFO.
func parseLogLevel(level string) zapcore.Level {
	switch level {
	case configtypes.LogLevelDebug:
		return zap.DebugLevel
	case configtypes.LogLevelInfo:
		return zap.InfoLevel
	case configtypes.LogLevelWarn:
		return zap.WarnLevel
	case configtypes.LogLevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// resolveLogLevel returns the output-specific level, falling back to the
// global level when the output does not declare one.
func resolveLogLevel(outputLevel string, globalLevel zapcore.Level) zapcore.Level {
	if outputLevel == "" {
		return globalLevel
	}
	return parseLogLevel(outputLevel)
}

func createEncoder(format string) zapcore.Encoder {
	if format == configtypes.LogFormatJSON {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func createFileWriter(path string, rotation configtypes.RotationConfig) zapcore.WriteSyncer {
	maxSize := rotation.MaxSizeMB
	if maxSize == 0 {
		maxSize = 100
	}
	maxAge := rotation.MaxAgeDays
	if maxAge == 0 {
		maxAge = 30
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSize,
		MaxBackups: rotation.MaxBackups,
		MaxAge:     maxAge,
		Compress:   rotation.Compress,
	})
}
