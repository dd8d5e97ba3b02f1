// Package logger exposes the process-wide zap sugared logger shared by the
// bot and the API binaries.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger once. "production" gets the JSON encoder;
// anything else gets the console encoder for local runs.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}
		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Sugar()
	})
}

// Get returns the global logger, initializing a development one when Init has
// not run yet (tests mostly).
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes buffered entries; deferred from main.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
