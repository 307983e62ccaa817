package handler

import (
	"github.com/philipp01105/nfault/core"
	"github.com/philipp01105/nfault/formatter"
)

// Syslogger is the transport the syslog backend delivers through. It
// is the priority-method subset of *syslog.Writer.
type Syslogger interface {
	Info(m string) error
	Warning(m string) error
	Err(m string) error
	Crit(m string) error
}

// SyslogHandler maps severities onto syslog priorities and hands the
// formatted message to the host's system log service. Timestamps are
// the service's business; only the free-text prefix is carried over.
type SyslogHandler struct {
	state    *State
	out      Syslogger
	recursed int
}

// NewSyslogHandler creates a syslog backend over the given state and transport
func NewSyslogHandler(state *State, out Syslogger) *SyslogHandler {
	return &SyslogHandler{state: state, out: out}
}

// Handle delivers an Info, Warning or Error report at the matching
// priority. Transport failure escalates with StatusLogProtocol.
func (h *SyslogHandler) Handle(sev core.Severity, format string, args []any) error {
	if err := h.emit(sev, format, args); err != nil {
		return &Escalation{Status: core.StatusLogProtocol, Err: err}
	}
	return nil
}

// HandleFatal delivers a Fatal or Panic report at critical priority
// and remaps the default status to StatusLogProtocol when delivery
// failed.
func (h *SyslogHandler) HandleFatal(sev core.Severity, status core.Status, format string, args []any) core.Status {
	if err := h.emit(sev, format, args); err != nil && status == core.StatusDefault {
		status = core.StatusLogProtocol
	}
	return status
}

func (h *SyslogHandler) emit(sev core.Severity, format string, args []any) error {
	if h.recursed >= maxDepth {
		return ErrReportDepth
	}
	h.recursed++
	defer func() { h.recursed-- }()

	// The priority channel already carries the severity; only fatals
	// and panics get the literal word so they stand out in the stream.
	deco := ""
	if sev == core.FatalSeverity || sev == core.PanicSeverity {
		deco = sev.Prefix()
	}
	text := h.state.Prefix + deco + formatter.Message(h.state.SysErr, format, args...)

	var err error
	switch sev {
	case core.InfoSeverity:
		err = h.out.Info(text)
	case core.WarningSeverity:
		err = h.out.Warning(text)
	case core.ErrorSeverity:
		err = h.out.Err(text)
	default:
		err = h.out.Crit(text)
	}
	if err != nil && h.state.IgnoreErrors {
		err = nil
	}
	return err
}
