package handler

import (
	"github.com/philipp01105/nfault/core"
)

// FileHandler is the default backend. It writes decorated lines to the
// descriptors configured in the shared State: Info reports to the info
// descriptor, everything else to the error descriptor.
type FileHandler struct {
	state    *State
	recursed int
}

// NewFileHandler creates a file backend over the given state
func NewFileHandler(state *State) *FileHandler {
	return &FileHandler{state: state}
}

// Handle delivers an Info, Warning or Error report. A write failure on
// the error descriptor escalates directly; a failure on a separate
// info descriptor escalates with a follow-up fatal message, so the
// error log still gets a chance to record why the process died.
func (h *FileHandler) Handle(sev core.Severity, format string, args []any) error {
	fd := h.state.ErrFd
	if sev == core.InfoSeverity {
		fd = h.state.InfoFd
	}

	err := h.emit(sev, fd, format, args)
	if err == nil {
		return nil
	}
	if fd == h.state.ErrFd {
		return &Escalation{Status: core.StatusLogWrite, Err: err}
	}
	h.state.SysErr = err
	return &Escalation{
		Status: core.StatusLogWrite,
		Format: "write() failed to info log: %m",
		Err:    err,
	}
}

// HandleFatal delivers a Fatal or Panic report on the error descriptor
// and remaps the default status to StatusLogWrite when the line never
// reached the sink.
func (h *FileHandler) HandleFatal(sev core.Severity, status core.Status, format string, args []any) core.Status {
	if err := h.emit(sev, h.state.ErrFd, format, args); err != nil && status == core.StatusDefault {
		status = core.StatusLogWrite
	}
	return status
}

func (h *FileHandler) emit(sev core.Severity, fd int, format string, args []any) error {
	if h.recursed >= maxDepth {
		// Reentered from a signal handler or an allocation failure
		// inside formatting; bail before touching the formatter so the
		// recursion ends here.
		return ErrReportDepth
	}
	h.recursed++
	defer func() { h.recursed-- }()

	err := WriteRetry(fd, h.state.Line(sev, format, args))
	if err != nil && h.state.IgnoreErrors {
		err = nil
	}
	return err
}
