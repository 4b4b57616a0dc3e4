// Package logger is a process-wide logging facade. Backends are registered
// once with Init; until then every call is a no-op.
package logger

import "sync"

// Instance is one logging backend.
type Instance interface {
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

type Logger struct {
	instances []Instance
}

var (
	mu        sync.RWMutex
	singleton *Logger
)

func Init(instances ...Instance) {
	mu.Lock()
	defer mu.Unlock()
	singleton = &Logger{instances: instances}
}

func each(fn func(Instance)) {
	mu.RLock()
	l := singleton
	mu.RUnlock()
	if l == nil {
		return
	}
	for _, instance := range l.instances {
		fn(instance)
	}
}

func Debug(message string, keyvals ...any) {
	each(func(i Instance) { i.Debug(message, keyvals...) })
}

func Info(message string, keyvals ...any) {
	each(func(i Instance) { i.Info(message, keyvals...) })
}

func Warn(message string, keyvals ...any) {
	each(func(i Instance) { i.Warn(message, keyvals...) })
}

func Error(message string, keyvals ...any) {
	each(func(i Instance) { i.Error(message, keyvals...) })
}

// Fatal logs and terminates the process through the first backend that
// exits.
func Fatal(message string, keyvals ...any) {
	each(func(i Instance) { i.Fatal(message, keyvals...) })
}
