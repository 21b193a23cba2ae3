package panics

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/cellbridge/bridged/infrastructure/logger"
)

const exitHandlerTimeout = 5 * time.Second

// HandlePanic recovers panics, logs them and exits with exitCode.
// It must be deferred directly.
func HandlePanic(log *logger.Logger, exitCode int) {
	err := recover()
	if err == nil {
		return
	}

	reason := fmt.Sprintf("Fatal error: %+v", err)
	exit(log, reason, debug.Stack(), exitCode)
}

// Exit prints the given reason to log and exits with exitCode.
func Exit(log *logger.Logger, reason string, exitCode int) {
	exit(log, reason, nil, exitCode)
}

// exit prints the given reason and the stack trace (if not nil), waits for
// them to finish writing, and exits.
func exit(log *logger.Logger, reason string, stackTrace []byte, exitCode int) {
	exitHandlerDone := make(chan struct{})
	go func() {
		log.Criticalf("Exiting: %s", reason)
		if stackTrace != nil {
			log.Criticalf("Stack trace: %s", stackTrace)
		}
		log.Backend().Close()
		close(exitHandlerDone)
	}()

	select {
	case <-time.After(exitHandlerTimeout):
		fmt.Fprintln(os.Stderr, "Couldn't exit gracefully.")
	case <-exitHandlerDone:
	}
	os.Exit(exitCode)
}
