package logger

import (
	"fmt"
	"os"

	"github.com/jacobxo0/AIforsikring-sub002/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a JSON logger writing to stdout and, when cfg.File is set, to a
// rotating log file.
func New(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level %q: %w", cfg.Level, err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}
	if cfg.File != "" {
		cores = append(
			cores, zapcore.NewCore(
				encoder,
				zapcore.AddSync(
					&lumberjack.Logger{
						Filename: cfg.File, MaxSize: 100, MaxAge: 28, Compress: true,
					},
				),
				level,
			),
		)
	}
	return zap.New(zapcore.NewTee(cores...)), nil
}
