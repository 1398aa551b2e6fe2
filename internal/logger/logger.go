package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

var (
	Sugar *zap.SugaredLogger
	once  sync.Once
)

// GetLogger returns the process-wide logger, building it on first use.
// APP_ENV=production switches to the JSON production encoder.
func GetLogger() *zap.SugaredLogger {
	once.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if os.Getenv("APP_ENV") == "production" {
			l, err = zap.NewProduction()
		} else {
			l, err = zap.NewDevelopment()
		}
		if err != nil {
			l = zap.NewNop()
		}
		Sugar = l.Sugar()
	})
	return Sugar
}

func Sync() {
	if Sugar != nil {
		_ = Sugar.Sync()
	}
}
