package polaris

import (
	"log"
	"os"

	"github.com/polarisapp/client-go/internal/transport"
)

// Logger receives debug output from the request engine when debug mode is
// enabled.
type Logger = transport.Logger

// SimpleLogger writes debug lines to stderr.
type SimpleLogger struct {
	logger *log.Logger
}

// NewSimpleLogger creates a logger suitable for WithLogger.
func NewSimpleLogger() *SimpleLogger {
	return &SimpleLogger{
		logger: log.New(os.Stderr, "[polaris] ", log.LstdFlags|log.Lmicroseconds),
	}
}

// Debugf implements Logger.
func (l *SimpleLogger) Debugf(format string, v ...any) {
	l.logger.Printf("DEBUG "+format, v...)
}
