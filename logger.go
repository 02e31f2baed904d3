package qstab

import (
	"os"

	"github.com/charmbracelet/log"
)

/*
NewLogger returns the leveled logger the engines write to. Unknown levels
fall back to info.
*/
func NewLogger(level string) *log.Logger {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}

	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           parsed,
		Prefix:          "qstab",
		ReportTimestamp: true,
	})
}
