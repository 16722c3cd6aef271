package table

import (
	log "github.com/sirupsen/logrus"
)

// LogWrapper logs through an optional logger. The zero value and a nil
// *LogWrapper discard everything.
type LogWrapper struct {
	logger *log.Logger
}

func (l *LogWrapper) log(level log.Level, format string, args ...interface{}) {
	if l != nil && l.logger != nil {
		l.logger.Logf(level, format, args...)
	}
}

func (l *LogWrapper) logFields(level log.Level, fields log.Fields, format string, args ...interface{}) {
	if l != nil && l.logger != nil {
		l.logger.WithFields(fields).Logf(level, format, args...)
	}
}
