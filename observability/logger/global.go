package logger

import (
	"sync"
	"sync/atomic"
)

//nolint:gochecknoglobals // process-wide logger
var (
	global    atomic.Pointer[Logger]
	setGlobal sync.Once
)

// SetGlobal builds the process logger from cfg. Call it once at startup,
// before the first log line; a second call panics.
func SetGlobal(cfg Config) {
	first := false
	setGlobal.Do(func() {
		l, err := newLogger(cfg)
		if err != nil {
			panic("[logger]: failed to initialize global logger: " + err.Error())
		}
		global.Store(&l)
		first = true
	})
	if !first {
		panic("[logger]: SetGlobal can only be called once")
	}
}

// Named returns the global logger scoped to name.
func Named(name string) Logger {
	return current().Named(name)
}

// Sync flushes buffered entries of the global logger.
func Sync() error {
	return current().Sync()
}

// current falls back to a console debug logger until SetGlobal runs,
// which keeps tests and tools that skip configuration logging somewhere.
func current() Logger {
	if l := global.Load(); l != nil {
		return *l
	}

	l, err := newLogger(Config{Level: levelDebug, Encoding: encConsole})
	if err != nil {
		panic("[logger]: failed to initialize default logger: " + err.Error())
	}
	global.CompareAndSwap(nil, &l)
	return *global.Load()
}
