package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger production - JSON, иначе цветной консольный вывод
func NewLogger(env string) *zap.Logger {
	logger, err := buildLogger(env)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

func loggerConfig(env string) zap.Config {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	return config
}

func buildLogger(env string) (*zap.Logger, error) {
	return loggerConfig(env).Build(zap.Fields(zap.String("service", "paxify_bot")))
}
