package logger

import (
	"fmt"
	"storefront/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(env config.Environment, cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zapCfg := zap.NewProductionConfig()
	if !env.IsProduction() {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Format {
	case "json", "console":
		zapCfg.Encoding = cfg.Format
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log.With(zap.String("env", env.Name)), nil
}
