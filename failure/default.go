package failure

import (
	"log/syslog"
	"net/netip"
	"sync"

	"github.com/philipp01105/nfault/core"
	"github.com/philipp01105/nfault/handler"
)

var (
	defaultReporter *Reporter
	defaultMu       sync.RWMutex
)

func init() {
	defaultReporter = New()
}

// Default returns the default reporter
func Default() *Reporter {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultReporter
}

// SetDefault sets the default reporter
func SetDefault(r *Reporter) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultReporter = r
}

// Package-level convenience functions using the default reporter

// Info reports an informational event using the default reporter
func Info(format string, args ...any) {
	Default().Info(format, args...)
}

// Warning reports a recoverable anomaly using the default reporter
func Warning(format string, args ...any) {
	Default().Warning(format, args...)
}

// Error reports a failed operation using the default reporter
func Error(format string, args ...any) {
	Default().Error(format, args...)
}

// Report routes a report by severity using the default reporter
func Report(sev core.Severity, format string, args ...any) {
	Default().Report(sev, format, args...)
}

// Fatal reports a fatal failure using the default reporter and
// terminates the process.
func Fatal(format string, args ...any) {
	Default().Fatal(format, args...)
}

// FatalWithStatus reports a fatal failure using the default reporter
// and terminates the process with the given status.
func FatalWithStatus(status core.Status, format string, args ...any) {
	Default().FatalWithStatus(status, format, args...)
}

// Panic reports an unrecoverable failure using the default reporter
// and aborts the process.
func Panic(format string, args ...any) {
	Default().Panic(format, args...)
}

// SetFatalHandler replaces the default reporter's fatal slot
func SetFatalHandler(h handler.FatalHandler) {
	Default().SetFatalHandler(h)
}

// SetErrorHandler replaces the default reporter's error slot
func SetErrorHandler(h handler.Handler) {
	Default().SetErrorHandler(h)
}

// SetInfoHandler replaces the default reporter's info slot
func SetInfoHandler(h handler.Handler) {
	Default().SetInfoHandler(h)
}

// SetPrefix sets the default reporter's free-text prefix
func SetPrefix(prefix string) {
	Default().SetPrefix(prefix)
}

// SetStampFormat sets the default reporter's timestamp layout
func SetStampFormat(layout string) {
	Default().SetStampFormat(layout)
}

// SetIgnoreErrors sets the default reporter's ignore-errors flag
func SetIgnoreErrors(ignore bool) {
	Default().SetIgnoreErrors(ignore)
}

// SetExitCallback installs the default reporter's exit observer
func SetExitCallback(cb func(status *int)) {
	Default().SetExitCallback(cb)
}

// SetSystemError captures the system error for the default reporter
func SetSystemError(err error) {
	Default().SetSystemError(err)
}

// UseFile selects the direct-file backend on the default reporter
func UseFile(path, prefix string) {
	Default().UseFile(path, prefix)
}

// SetInfoFile retargets the default reporter's info log
func SetInfoFile(path string) {
	Default().SetInfoFile(path)
}

// UseSyslog selects the syslog backend on the default reporter
func UseSyslog(ident string, facility syslog.Priority) {
	Default().UseSyslog(ident, facility)
}

// UseInternal selects the internal wire-protocol backend on the
// default reporter.
func UseInternal() {
	Default().UseInternal()
}

// AnnotateAddr attaches a peer address to the default reporter's
// failure stream.
func AnnotateAddr(addr netip.Addr) {
	Default().AnnotateAddr(addr)
}

// Deinit tears down the default reporter's owned resources and resets
// its state.
func Deinit() error {
	return Default().Deinit()
}
