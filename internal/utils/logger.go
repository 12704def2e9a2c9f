package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// InitLogger builds the global zap logger. HTTP access logs stay on the
// fiber logger middleware; this logger carries the application events
// (parse counts, deduction walks, generation failures).
func InitLogger() error {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.Fields(zap.String("service", "fridge-assistant")))
	if err != nil {
		return err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return nil
}

func SyncLogger() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
