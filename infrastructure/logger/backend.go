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

const normalLogSize = 512

// Flags to modify Backend's behavior.
const (
	// LogFlagLongFile adds the full path and line of the logging call site,
	// e.g. /a/b/c/main.go:123.
	LogFlagLongFile uint32 = 1 << iota

	// LogFlagShortFile adds the file name and line of the logging call site,
	// e.g. main.go:123. Takes precedence over LogFlagLongFile.
	LogFlagShortFile
)

// flagsFromEnvironment reads the LOGFLAGS environment variable, a comma
// separated list of "longfile" and "shortfile".
func flagsFromEnvironment() (flags uint32) {
	for _, f := range strings.Split(os.Getenv("LOGFLAGS"), ",") {
		switch strings.TrimSpace(f) {
		case "longfile":
			flags |= LogFlagLongFile
		case "shortfile":
			flags |= LogFlagShortFile
		}
	}
	return flags
}

// RotationConfig controls when a log file is rolled and how many rolled
// files are kept.
type RotationConfig struct {
	ThresholdKB int64
	MaxRolls    int
}

// DefaultRotation rolls files at 100 MB and keeps the last 8.
var DefaultRotation = RotationConfig{ThresholdKB: 100 * 1000, MaxRolls: 8}

// BackendOption configures a Backend created by NewBackend.
type BackendOption func(*Backend)

// WithFlags overrides the flags read from LOGFLAGS.
func WithFlags(flags uint32) BackendOption {
	return func(b *Backend) {
		b.flag = flags
	}
}

// WithBufferSize sets how many entries may be queued before loggers block
// on the writer goroutine.
func WithBufferSize(size int) BackendOption {
	return func(b *Backend) {
		b.bufferSize = size
	}
}

// Backend fans log entries from all subsystem loggers out to its writers.
// Writes happen on a single goroutine so entries are never interleaved.
type Backend struct {
	flag       uint32
	bufferSize int
	isRunning  uint32
	writers    []logWriter
	writeChan  chan logEntry
	done       chan struct{}
	closeOnce  sync.Once
}

// NewBackend creates a new logger backend.
func NewBackend(options ...BackendOption) *Backend {
	b := &Backend{flag: flagsFromEnvironment()}
	for _, option := range options {
		option(b)
	}
	b.writeChan = make(chan logEntry, b.bufferSize)
	b.done = make(chan struct{})
	return b
}

type logWriter struct {
	io.WriteCloser
	level Level
}

// AddLogFile adds a rotated file which receives entries at logLevel and
// above. The file and its directory are created if missing.
func (b *Backend) AddLogFile(logFile string, logLevel Level) error {
	return b.AddRotatedLogFile(logFile, logLevel, DefaultRotation)
}

// AddRotatedLogFile is AddLogFile with explicit rotation settings.
func (b *Backend) AddRotatedLogFile(logFile string, logLevel Level, rotation RotationConfig) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	logDir, _ := filepath.Split(logFile)
	if logDir != "" {
		err := os.MkdirAll(logDir, 0700)
		if err != nil {
			return errors.Wrapf(err, "failed to create log directory %s", logDir)
		}
	}
	r, err := rotator.New(logFile, rotation.ThresholdKB, false, rotation.MaxRolls)
	if err != nil {
		return errors.Wrapf(err, "failed to create a rotator for %s", logFile)
	}
	b.writers = append(b.writers, logWriter{WriteCloser: r, level: logLevel})
	return nil
}

// AddLogWriter adds w as a writer receiving entries at logLevel and above.
func (b *Backend) AddLogWriter(w io.WriteCloser, logLevel Level) error {
	if b.IsRunning() {
		return errors.New("the logger is already running")
	}
	b.writers = append(b.writers, logWriter{WriteCloser: w, level: logLevel})
	return nil
}

// Run starts the writer goroutine. It may only be called once.
func (b *Backend) Run() error {
	if !atomic.CompareAndSwapUint32(&b.isRunning, 0, 1) {
		return errors.New("the logger is already running")
	}
	go func() {
		defer close(b.done)
		defer func() {
			if err := recover(); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Fatal error in the logger goroutine: %+v\n", err)
				_, _ = fmt.Fprintf(os.Stderr, "Goroutine stacktrace: %s\n", debug.Stack())
			}
		}()
		for entry := range b.writeChan {
			b.dispatch(entry)
		}
	}()
	return nil
}

func (b *Backend) dispatch(entry logEntry) {
	for _, writer := range b.writers {
		if entry.level >= writer.level {
			_, _ = writer.Write(entry.log)
		}
	}
}

// IsRunning returns whether Run has been called and Close has not.
func (b *Backend) IsRunning() bool {
	return atomic.LoadUint32(&b.isRunning) != 0
}

// Close flushes queued entries and closes every writer. Calling it more
// than once is a no-op.
func (b *Backend) Close() {
	b.closeOnce.Do(func() {
		wasRunning := atomic.SwapUint32(&b.isRunning, 0) != 0
		close(b.writeChan)
		if wasRunning {
			<-b.done
		}
		for _, writer := range b.writers {
			_ = writer.Close()
		}
	})
}

// Logger returns a logger for the subsystem tagged subsystemTag. It starts
// switched off.
func (b *Backend) Logger(subsystemTag string) *Logger {
	return &Logger{LevelOff, subsystemTag, b, b.writeChan}
}
