// Package logging builds the tagged loggers used across daybook.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger tagged with the given subsystem name, e.g. "[api] ".
//
// When file is non-empty, output goes to a size-rotated log file; otherwise
// to stderr.
func New(tag, file string) *log.Logger {
	var w io.Writer = os.Stderr
	if file != "" {
		w = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}
	return log.New(w, "["+tag+"] ", log.LstdFlags)
}
