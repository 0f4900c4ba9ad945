package system

import (
	"io"
	"log"
	"sync"
)

var (
	loggerMu sync.RWMutex
	logger   = log.Default()
)

// SetLogger replaces the logger used by the systems. Passing nil discards
// output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func logf(format string, args ...any) {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	l.Printf(format, args...)
}
