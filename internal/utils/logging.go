package utils

import (
	"go.uber.org/zap"
)

// Logger is the shared process logger. GetLogger lazily builds it so test
// binaries that never touch logging pay nothing.
var Logger *zap.Logger

func InitLogger() {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

func GetLogger() *zap.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}
