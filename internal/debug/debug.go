// Package debug holds the process-wide verbosity switches and the helpers
// that respect them.
package debug

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	enabled     = os.Getenv("EXPIRE_ISSUES_DEBUG") != ""
	verboseMode = false
	quietMode   = false
	writeMu     sync.Mutex
)

// Enabled reports whether debug output is on, via EXPIRE_ISSUES_DEBUG or --verbose.
func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quietMode
}

// Logf writes a debug line to stderr.
func Logf(format string, args ...interface{}) {
	if Enabled() {
		write(os.Stderr, format, args...)
	}
}

// Warnf writes a warning to stderr unless quiet mode is enabled.
func Warnf(format string, args ...interface{}) {
	if quietMode {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	write(os.Stderr, "Warning: %s", msg)
}

// Timed logs how long a phase took when the returned func is called.
//
//	defer debug.Timed("resolve")()
func Timed(phase string) func() {
	if !Enabled() {
		return func() {}
	}
	start := time.Now()
	return func() {
		Logf("%s took %s\n", phase, time.Since(start).Round(time.Millisecond))
	}
}

func write(f *os.File, format string, args ...interface{}) {
	writeMu.Lock()
	defer writeMu.Unlock()
	fmt.Fprintf(f, format, args...)
}
