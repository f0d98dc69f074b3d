// Package logger builds the structured logger shared by all components.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the optional log file.
const (
	MaxSizeMB  = 100
	MaxBackups = 7
	MaxAgeDays = 3
)

// New returns a JSON logger writing to stdout and, when filePath is set, to a rotated file.
func New(level string, filePath string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	syncer := zapcore.AddSync(os.Stdout)
	if filePath != "" {
		fileSyncer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    MaxSizeMB,
			MaxBackups: MaxBackups,
			MaxAge:     MaxAgeDays,
		})
		syncer = zapcore.NewMultiWriteSyncer(syncer, fileSyncer)
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), syncer, lvl)
	return zap.New(core, zap.AddCaller()), nil
}
