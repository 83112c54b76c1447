package audit

import (
	"context"
	"errors"
	"log"
	"time"
)

// LogLogger writes audit entries to a standard logger.
// It is used when no database is configured.
type LogLogger struct {
	logger *log.Logger
	now    func() time.Time
}

// NewLogLogger constructs a logger-backed audit sink.
func NewLogLogger(logger *log.Logger) *LogLogger {
	if logger == nil {
		return nil
	}
	return &LogLogger{logger: logger, now: time.Now}
}

// Log writes an audit entry as a single line.
func (l *LogLogger) Log(_ context.Context, entry Entry) error {
	if l == nil || l.logger == nil {
		return errors.New("audit log: nil logger")
	}
	entry = normalize(entry, l.now())
	l.logger.Printf("audit: id=%s action=%s actor=%q role=%s resource=%s/%s digest=%s ip=%s at=%s",
		entry.ID, entry.Action, entry.Actor, entry.Role, entry.ResourceType, entry.ResourceID,
		entry.PayloadDigest, entry.IP, entry.CreatedAt.Format(time.RFC3339))
	return nil
}
