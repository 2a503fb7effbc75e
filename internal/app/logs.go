package app

import (
	"fmt"
	"time"
)

// MaxLogMessages bounds the in-app log buffer shown by the log overlay.
const MaxLogMessages = 200

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // DEBUG, INFO, WARN, ERROR
	Message string
}

// Log adds a message to the log buffer and forwards it to the process logger.
func (d *Desktop) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	d.logs = append(d.logs, LogMessage{Time: time.Now(), Level: level, Message: message})
	if len(d.logs) > MaxLogMessages {
		d.logs = d.logs[len(d.logs)-MaxLogMessages:]
	}

	switch level {
	case "ERROR":
		d.log.Error(message)
	case "WARN":
		d.log.Warn(message)
	case "DEBUG":
		d.log.Debug(message)
	default:
		d.log.Info(message)
	}
}

// LogInfo logs an informational message.
func (d *Desktop) LogInfo(format string, args ...any) {
	d.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (d *Desktop) LogWarn(format string, args ...any) {
	d.Log("WARN", format, args...)
}

// LogError logs an error message.
func (d *Desktop) LogError(format string, args ...any) {
	d.Log("ERROR", format, args...)
}

// Logs returns the buffered log messages, oldest first.
func (d *Desktop) Logs() []LogMessage {
	return d.logs
}
