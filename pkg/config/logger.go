package config

import (
	"log"

	"go.uber.org/zap"
)

// Logger is the application-wide structured logger. It defaults to a no-op
// logger so packages stay usable under `go test` without calling InitLogger.
var Logger = zap.NewNop()

func InitLogger() {
	var err error
	Logger, err = zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}

	Logger.Info("Zap logger initialized")
}
