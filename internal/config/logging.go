package config

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger.
var Logger zerolog.Logger

var logMu sync.RWMutex

// InitLogger sets Logger to a console writer on stderr at the given level.
// Unknown levels fall back to info.
func InitLogger(level string) {
	initLogger(level, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

func initLogger(level string, w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	Logger = zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// ComponentLogger returns the global logger tagged with a component field.
func ComponentLogger(component string) zerolog.Logger {
	l := GetLogger()
	return l.With().Str("component", component).Logger()
}

func init() {
	InitLogger("info")
}
