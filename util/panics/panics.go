package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/kaspanet/popd/infrastructure/logger"
)

const exitHandlerTimeout = 5 * time.Second

// HandlePanic recovers a panic, logs it at the critical level with both the
// current stack and spawnStackTrace (if not nil), flushes the log backend
// and exits the process. It must be deferred directly.
func HandlePanic(log *logger.Logger, spawnStackTrace []byte) {
	err := recover()
	if err == nil {
		return
	}
	exit(log, fmt.Sprintf("Fatal error: %+v", err), debug.Stack(), spawnStackTrace)
}

// WrapGroupFunc wraps f so that a panic inside it goes through HandlePanic.
// The stack of the caller is captured now so the log shows where the
// goroutine was spawned from. The result is meant for errgroup.Group.Go.
func WrapGroupFunc(log *logger.Logger, f func() error) func() error {
	spawnStackTrace := debug.Stack()
	return func() error {
		defer HandlePanic(log, spawnStackTrace)
		return f()
	}
}

var osExit = os.Exit

func exit(log *logger.Logger, reason string, currentStackTrace []byte, spawnStackTrace []byte) {
	flushed := make(chan struct{})
	go func() {
		log.Criticalf("Exiting: %s", reason)
		if spawnStackTrace != nil {
			log.Criticalf("Spawned from: %s", spawnStackTrace)
		}
		if currentStackTrace != nil {
			log.Criticalf("Stack trace: %s", currentStackTrace)
		}
		log.Backend().Close()
		close(flushed)
	}()

	select {
	case <-time.After(exitHandlerTimeout):
		fmt.Fprintln(os.Stderr, "Couldn't flush the log before exiting.")
	case <-flushed:
	}
	osExit(1)
}
