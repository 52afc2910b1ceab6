package logger

import (
	"fmt"
	"os"
	"sync"

	glog "github.com/Laisky/go-utils/v5/log"
	"github.com/Laisky/zap"

	"github.com/ar-codelabs/nova-web-grounding/common/config"
)

var (
	Logger       glog.Logger
	setupLogOnce sync.Once
	initLogOnce  sync.Once
)

// init initializes the logger automatically when the package is imported
func init() {
	initLogger()
}

// initLogger initializes the go-utils logger
func initLogger() {
	initLogOnce.Do(func() {
		var err error
		level := glog.LevelInfo
		if config.DebugEnabled {
			level = glog.LevelDebug
		}

		Logger, err = glog.NewConsoleWithName("nova-grounding", level)
		if err != nil {
			panic(fmt.Sprintf("failed to create logger: %+v", err))
		}
	})
}

// SetupLogger decorates the process logger with host context and applies the
// DEBUG level switch. Each binary calls it once from main.
func SetupLogger() {
	setupLogOnce.Do(func() {
		hostname, err := os.Hostname()
		if err != nil {
			Logger.Panic("get hostname", zap.Error(err))
		}

		Logger = Logger.With(zap.String("host", hostname))

		if config.DebugEnabled {
			_ = Logger.ChangeLevel("debug")
			Logger.Info("running in debug mode")
		} else {
			_ = Logger.ChangeLevel("info")
		}
	})
}
