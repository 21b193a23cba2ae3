package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// Flags to modify Backend's behavior.
const (
	// LogFlagLongFile prefixes entries with the full path and line of the
	// logging callsite.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile prefixes entries with the file name and line of the
	// logging callsite. Takes precedence over LogFlagLongFile.
	LogFlagShortFile
)

// logFlagsEnv names the environment variable holding the default flags as
// a comma separated list of "longfile" and "shortfile".
const logFlagsEnv = "BRIDGED_LOGFLAGS"

func flagsFromEnv() uint32 {
	var flags uint32
	for _, name := range strings.Split(os.Getenv(logFlagsEnv), ",") {
		switch strings.TrimSpace(name) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

const (
	entryQueueSize = 64

	rotateThresholdKB = 10 * 1000
	maxRotatedFiles   = 4
)

// Backend fans the entries of its subsystem loggers out to writers. Each
// writer only receives entries at or above its own level.
type Backend struct {
	flags     uint32
	isRunning uint32
	writers   []*levelWriter
	entries   chan logEntry
	done      sync.Mutex

	// sendLock is held for reading while an entry is queued and for
	// writing while entries is closed.
	sendLock sync.RWMutex
}

type levelWriter struct {
	io.WriteCloser
	level Level
}

type logEntry struct {
	line  []byte
	level Level
}

// NewBackendWithFlags returns a Backend using flags instead of the ones set
// in the environment.
func NewBackendWithFlags(flags uint32) *Backend {
	return &Backend{flags: flags, entries: make(chan logEntry, entryQueueSize)}
}

// NewBackend returns a Backend configured from the environment.
func NewBackend() *Backend {
	return NewBackendWithFlags(flagsFromEnv())
}

// AddLogFile makes the backend write entries at or above logLevel to a
// rotated logFile, creating its directory if needed.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	if dir := filepath.Dir(logFile); dir != "." {
		err := os.MkdirAll(dir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", dir)
		}
	}
	fileRotator, err := rotator.New(logFile, rotateThresholdKB, false, maxRotatedFiles)
	if err != nil {
		return errors.Wrapf(err, "failed to create file rotator for %s", logFile)
	}
	return b.AddLogWriter(fileRotator, logLevel)
}

// AddLogWriter makes the backend write entries at or above logLevel to
// writer. Writers can only be added before Run.
func (b *Backend) AddLogWriter(writer io.WriteCloser, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("writers can't be added to a running logger")
	}
	b.writers = append(b.writers, &levelWriter{WriteCloser: writer, level: logLevel})
	return nil
}

// Run starts delivering entries to the writers. It may only be called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("the logger is already running")
	}
	b.done.Lock()
	go b.deliver()
	return nil
}

func (b *Backend) deliver() {
	defer b.done.Unlock()
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error in the logger backend: %+v\n%s\n", err, debug.Stack())
		}
	}()
	defer atomic.StoreUint32(&b.isRunning, 0)

	for entry := range b.entries {
		for _, writer := range b.writers {
			if entry.level >= writer.level {
				_, _ = writer.Write(entry.line)
			}
		}
	}
}

// IsRunning returns whether entries are currently being delivered.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) == 1
}

func (b *Backend) send(entry logEntry) {
	b.sendLock.RLock()
	defer b.sendLock.RUnlock()
	if !b.IsRunning() {
		return
	}
	b.entries <- entry
}

// Close delivers the queued entries and closes every writer. Entries
// written concurrently with or after Close are dropped.
func (b *Backend) Close() {
	b.sendLock.Lock()
	if !atomic.CompareAndSwapUint32(&b.isRunning, 1, 0) {
		b.sendLock.Unlock()
		return
	}
	close(b.entries)
	b.sendLock.Unlock()

	b.done.Lock()
	defer b.done.Unlock()
	for _, writer := range b.writers {
		_ = writer.Close()
	}
}

// Logger returns a logger writing to b under subsystemTag, starting at
// LevelInfo.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{level: uint32(LevelInfo), tag: subsystemTag, b: b}
}
