package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging applies the level and sinks chosen on the command line.
// Logs always go to stderr; with a file they are also written there, rotated.
func setupLogging(level, file string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)

	isTerminal := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   isTerminal && file == "",
		DisableColors: !isTerminal || file != "",
		FullTimestamp: true,
	})

	if file == "" {
		logrus.SetOutput(os.Stderr)
		return
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, newFileWriter(file)))
}

func newFileWriter(file string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   file,
		MaxSize:    16, // megabytes
		MaxBackups: 8,
		MaxAge:     30, // days
		Compress:   true,
	}
}
