// Package logging points the standard logger at the configured destination.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup routes the standard logger to a rotating file when path is set,
// and to stderr otherwise. The returned closer flushes the file.
func Setup(prefix, path string) io.Closer {
	log.SetPrefix(prefix)
	if path == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		Compress:   true,
	}
	log.SetOutput(out)
	return out
}

// New returns a logger sharing the standard logger's destination and prefix,
// for components that take an explicit *log.Logger.
func New() *log.Logger {
	return log.New(log.Writer(), log.Prefix(), log.Flags())
}
