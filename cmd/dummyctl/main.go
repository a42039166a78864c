package main

import (
	"os"

	"github.com/Adda-Baaj/dummy-feeds/internal/app"
	"github.com/Adda-Baaj/dummy-feeds/internal/config"
	"github.com/Adda-Baaj/dummy-feeds/internal/logger"
	"go.uber.org/zap/zapcore"
)

func main() {
	cmd := newRootCmd(loadClient, os.Stdout)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadClient builds the client from the same config the relay uses; logs go to stderr.
func loadClient() (lookupClient, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithSink(cfg.LogLevel, zapcore.Lock(os.Stderr))
	return app.NewDummyClient(cfg, log, nil), nil
}
