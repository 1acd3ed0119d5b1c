package config

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// NewLogger builds the process logger from the logging section. An unknown
// level falls back to info.
func (c LoggingConfig) NewLogger(out io.Writer) *log.Logger {
	l := log.New()
	l.SetOutput(out)
	if strings.EqualFold(strings.TrimSpace(c.Format), "json") {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	lvl, err := log.ParseLevel(strings.TrimSpace(c.Level))
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
