package failure

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/philipp01105/nfault/core"
	"github.com/philipp01105/nfault/handler"
)

// Variables to allow overriding process termination in tests
var (
	osExit  = os.Exit
	osAbort = func() {
		// Raise SIGABRT so a trap or core dump keeps working; the
		// runtime turns it into a crash with a full stack dump.
		_ = unix.Kill(unix.Getpid(), unix.SIGABRT)
		os.Exit(128 + int(unix.SIGABRT))
	}
)

// Reporter is the failure reporting registry: it routes every report
// to one of its three handler slots and owns the fatal path down to
// process termination. A slot is never empty — resetting one restores
// the built-in default backend.
//
// A Reporter performs no locking; callers serialize access.
type Reporter struct {
	state *handler.State

	// deflt is the shared direct-file backend the slots reset to
	deflt *handler.FileHandler

	fatalSlot handler.FatalHandler
	errorSlot handler.Handler
	infoSlot  handler.Handler

	exitCallback func(*int)
	syslogCloser io.Closer
}

// New creates a Reporter with all three slots on the direct-file
// backend targeting the console descriptor.
func New() *Reporter {
	st := handler.NewState()
	fh := handler.NewFileHandler(st)
	return &Reporter{
		state:     st,
		deflt:     fh,
		fatalSlot: fh,
		errorSlot: fh,
		infoSlot:  fh,
	}
}

// State returns the decoration state shared with the handlers. Custom
// backends are built over it.
func (r *Reporter) State() *handler.State {
	return r.state
}

// Info reports an informational event through the info slot
func (r *Reporter) Info(format string, args ...any) {
	r.report(core.InfoSeverity, format, args)
}

// Warning reports a recoverable anomaly through the error slot
func (r *Reporter) Warning(format string, args ...any) {
	r.report(core.WarningSeverity, format, args)
}

// Error reports a failed operation through the error slot
func (r *Reporter) Error(format string, args ...any) {
	r.report(core.ErrorSeverity, format, args)
}

// Report routes a report by severity: Info to the info slot, Warning
// and Error to the error slot, Fatal and Panic to the fatal path.
func (r *Reporter) Report(sev core.Severity, format string, args ...any) {
	switch sev {
	case core.FatalSeverity, core.PanicSeverity:
		r.fatalWith(sev, core.StatusDefault, format, args)
	default:
		r.report(sev, format, args)
	}
}

// Fatal reports a fatal failure and terminates the process with the
// default status. It does not return.
func (r *Reporter) Fatal(format string, args ...any) {
	r.fatalWith(core.FatalSeverity, core.StatusDefault, format, args)
}

// FatalWithStatus reports a fatal failure and terminates the process
// with the given status. It does not return.
func (r *Reporter) FatalWithStatus(status core.Status, format string, args ...any) {
	r.fatalWith(core.FatalSeverity, status, format, args)
}

// Panic reports an unrecoverable failure and aborts the process,
// bypassing the exit observer so trap semantics survive for external
// debugging. It does not return.
func (r *Reporter) Panic(format string, args ...any) {
	r.fatalWith(core.PanicSeverity, core.StatusDefault, format, args)
}

func (r *Reporter) report(sev core.Severity, format string, args []any) {
	slot := r.errorSlot
	if sev == core.InfoSeverity {
		slot = r.infoSlot
	}

	// The captured system error must survive a reporting call, the
	// same way errno survives a C logging call.
	sysErr := r.state.SysErr
	err := slot.Handle(sev, format, args)
	if err == nil {
		r.state.SysErr = sysErr
		return
	}

	var esc *handler.Escalation
	if !errors.As(err, &esc) {
		esc = &handler.Escalation{Status: core.StatusLogWrite, Err: err}
	}
	if esc.Format != "" {
		// The backend wants the reason for dying recorded through the
		// fatal slot first - maybe that sink still works.
		r.fatalWith(core.FatalSeverity, esc.Status, esc.Format, esc.Args)
		return
	}
	r.exit(int(esc.Status))
}

func (r *Reporter) fatalWith(sev core.Severity, status core.Status, format string, args []any) {
	status = r.fatalSlot.HandleFatal(sev, status, format, args)
	r.finish(sev, status)
}

// finish is the terminal stage of the fatal path: best-effort
// backtrace capture for panics and allocation failures, then process
// termination.
func (r *Reporter) finish(sev core.Severity, status core.Status) {
	if sev == core.PanicSeverity || status == core.StatusOutOfMemory {
		if bt := backtrace(); bt != "" {
			r.Error("Raw backtrace: %s", bt)
		}
	}

	if sev == core.PanicSeverity {
		osAbort()
		return
	}
	r.exit(int(status))
}

// exit runs the exit observer, which may rewrite the numeric status,
// and terminates the process.
func (r *Reporter) exit(status int) {
	if r.exitCallback != nil {
		r.exitCallback(&status)
	}
	osExit(status)
}

// backtrace renders the current goroutine's stack as a single line.
// An empty result means capture failed and is silently ignored by the
// caller.
func backtrace() string {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	if n == 0 {
		return ""
	}
	s := strings.TrimSpace(string(buf[:n]))
	s = strings.ReplaceAll(s, "\n\t", " @ ")
	s = strings.ReplaceAll(s, "\n", " -> ")
	return s
}
