package utils

import "go.uber.org/zap"

func NewLogger(env string) *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)

	if env == ENV_RELEASE {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("[LOGGER] Erro ao iniciar o logger: " + err.Error())
	}

	return logger.Sugar()
}
