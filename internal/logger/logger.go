// Package logger собирает zap логгер из настроек конфигурации.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"todo-notes/internal/config"
)

// New создает логгер. Development режим включает человекочитаемый вывод,
// иначе используется JSON формат production конфигурации zap.
func New(cfg *config.ConfigLogger) (*zap.Logger, error) {
	if cfg == nil {
		cfg = &config.ConfigLogger{Level: "info"}
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("zapcore.ParseLevel: %w", err)
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "time"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	if cfg.OutputFile != "" {
		if dir := filepath.Dir(cfg.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("os.MkdirAll: %w", err)
			}
		}
		zc.OutputPaths = []string{cfg.OutputFile}
		zc.ErrorOutputPaths = []string{cfg.OutputFile}
	}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("zap.Config.Build: %w", err)
	}
	return log, nil
}
