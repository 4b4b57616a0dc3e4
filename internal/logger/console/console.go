package console

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger writes human-readable lines through charmbracelet/log.
type Logger struct {
	logger *log.Logger
}

type Params struct {
	Debug bool
	// Writer defaults to stderr.
	Writer io.Writer
	Prefix string
}

func New(params Params) *Logger {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	w := params.Writer
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Level:           level,
			Prefix:          params.Prefix,
		}),
	}
}

func (c *Logger) Debug(message string, keyvals ...any) { c.logger.Debug(message, keyvals...) }
func (c *Logger) Info(message string, keyvals ...any)  { c.logger.Info(message, keyvals...) }
func (c *Logger) Warn(message string, keyvals ...any)  { c.logger.Warn(message, keyvals...) }
func (c *Logger) Error(message string, keyvals ...any) { c.logger.Error(message, keyvals...) }
func (c *Logger) Fatal(message string, keyvals ...any) { c.logger.Fatal(message, keyvals...) }
