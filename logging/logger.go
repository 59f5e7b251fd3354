package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log *logrus.Logger

// BootstrapLogger installs the process-wide logger. Unknown levels fall back to debug.
func BootstrapLogger(level string, json bool) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.DebugLevel
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	if json {
		formatter = &logrus.JSONFormatter{}
	}

	Log = &logrus.Logger{
		Out:          os.Stdout,
		Hooks:        make(logrus.LevelHooks),
		Formatter:    formatter,
		ReportCaller: true,
		Level:        lvl,
		ExitFunc:     os.Exit,
	}

	if err != nil && level != "" {
		Log.Warnf("unknown log level %q, using debug", level)
	}
}

func init() {
	// Packages log before main runs BootstrapLogger (tests, init-time wiring).
	Log = logrus.New()
}
