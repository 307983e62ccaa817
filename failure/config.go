package failure

import (
	"io"
	"log/syslog"
	"net/netip"

	"golang.org/x/sys/unix"

	"github.com/philipp01105/nfault/core"
	"github.com/philipp01105/nfault/formatter"
	"github.com/philipp01105/nfault/handler"
)

// ConsolePath is the conventional path that targets the console
// descriptor instead of opening a file.
const ConsolePath = "/dev/stderr"

// Variables to allow overriding descriptor and syslog plumbing in tests
var (
	sysOpen  = unix.Open
	sysClose = unix.Close

	syslogDial = func(ident string, facility syslog.Priority) (handler.Syslogger, io.Closer, error) {
		w, err := syslog.New(facility, ident)
		if err != nil {
			return nil, nil, err
		}
		return w, w, nil
	}
)

// SetFatalHandler replaces the fatal slot; nil restores the default backend
func (r *Reporter) SetFatalHandler(h handler.FatalHandler) {
	if h == nil {
		h = r.deflt
	}
	r.fatalSlot = h
}

// SetErrorHandler replaces the error slot; nil restores the default backend
func (r *Reporter) SetErrorHandler(h handler.Handler) {
	if h == nil {
		h = r.deflt
	}
	r.errorSlot = h
}

// SetInfoHandler replaces the info slot; nil restores the default backend
func (r *Reporter) SetInfoHandler(h handler.Handler) {
	if h == nil {
		h = r.deflt
	}
	r.infoSlot = h
}

// SetPrefix replaces the free-text prefix prepended to every line
func (r *Reporter) SetPrefix(prefix string) {
	r.state.Prefix = prefix
}

// SetStampFormat replaces the timestamp layout; empty disables the segment
func (r *Reporter) SetStampFormat(layout string) {
	r.state.StampLayout = layout
}

// SetIgnoreErrors makes delivery failures report success instead of
// terminating the process.
func (r *Reporter) SetIgnoreErrors(ignore bool) {
	r.state.IgnoreErrors = ignore
}

// SetExitCallback installs the exit observer invoked with the pending
// status before any non-panic termination. It may rewrite the status.
func (r *Reporter) SetExitCallback(cb func(status *int)) {
	r.exitCallback = cb
}

// SetSystemError captures the system error the %m directive expands to
func (r *Reporter) SetSystemError(err error) {
	r.state.SysErr = err
}

// UseFile selects the direct-file backend: the error log opens at
// path (ConsolePath or an empty path targets the console), the info
// log shares it, and all three slots reset to the default backend.
// Open failure writes a best-effort console diagnostic and terminates
// with StatusLogOpen.
func (r *Reporter) UseFile(path, prefix string) {
	r.SetPrefix(prefix)

	if r.state.InfoFd != unix.Stderr && r.state.InfoFd != r.state.ErrFd {
		if err := sysClose(r.state.InfoFd); err != nil {
			r.state.SysErr = err
			r.Error("close(%d) failed: %m", r.state.InfoFd)
		}
	}

	r.state.ErrFd = r.openLogFile(r.state.ErrFd, path)
	r.state.InfoFd = r.state.ErrFd

	r.SetFatalHandler(nil)
	r.SetErrorHandler(nil)
	r.SetInfoHandler(nil)
}

// SetInfoFile retargets only the info log. A previously shared
// descriptor is left untouched for the error log.
func (r *Reporter) SetInfoFile(path string) {
	if r.state.InfoFd == r.state.ErrFd {
		r.state.InfoFd = unix.Stderr
	}
	r.state.InfoFd = r.openLogFile(r.state.InfoFd, path)
	r.SetInfoHandler(nil)
}

// openLogFile closes old (unless it is the console), then opens path
// for appending with owner-only permissions, uninherited across exec.
func (r *Reporter) openLogFile(old int, path string) int {
	if old != unix.Stderr {
		if err := sysClose(old); err != nil {
			r.state.SysErr = err
			diag := formatter.Message(err, "close(%d) failed: %m\n", old)
			_ = handler.WriteRetry(unix.Stderr, []byte(diag))
		}
	}

	if path == "" || path == ConsolePath {
		return unix.Stderr
	}

	fd, err := sysOpen(path, unix.O_CREAT|unix.O_APPEND|unix.O_WRONLY|unix.O_CLOEXEC, 0600)
	if err != nil {
		r.state.SysErr = err
		diag := formatter.Message(err, "Can't open log file %s: %m\n", path)
		_ = handler.WriteRetry(unix.Stderr, []byte(diag))
		r.exit(int(core.StatusLogOpen))
		return unix.Stderr // reached only when the exit boundary is stubbed out
	}
	return fd
}

// UseSyslog selects the syslog backend with the given identity and
// facility, installing it on all three slots. Dial failure is treated
// like a log open failure.
func (r *Reporter) UseSyslog(ident string, facility syslog.Priority) {
	out, closer, err := syslogDial(ident, facility)
	if err != nil {
		r.state.SysErr = err
		diag := formatter.Message(err, "Can't open syslog (%s): %m\n", ident)
		_ = handler.WriteRetry(unix.Stderr, []byte(diag))
		r.exit(int(core.StatusLogOpen))
		return
	}

	_ = r.closeSyslog()
	r.syslogCloser = closer

	sh := handler.NewSyslogHandler(r.state, out)
	r.fatalSlot = sh
	r.errorSlot = sh
	r.infoSlot = sh
}

// UseInternal selects the internal wire-protocol backend on all three
// slots; a supervising process parses the framed stream.
func (r *Reporter) UseInternal() {
	ih := handler.NewInternalHandler(r.state)
	r.fatalSlot = ih
	r.errorSlot = ih
	r.infoSlot = ih
}

// AnnotateAddr attaches a peer address to the current failure stream.
// It is meaningful, and emitted, only while the internal backend is
// the active error handler.
func (r *Reporter) AnnotateAddr(addr netip.Addr) {
	if ih, ok := r.errorSlot.(*handler.InternalHandler); ok {
		ih.Annotate(addr)
	}
}
