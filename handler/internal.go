package handler

import (
	"net/netip"

	"golang.org/x/sys/unix"

	"github.com/philipp01105/nfault/core"
	"github.com/philipp01105/nfault/formatter"
)

// wireFd is the conventional diagnostic descriptor a supervising
// process reads the framed stream from.
var wireFd = unix.Stderr

// InternalHandler frames each report for a supervising process:
// sentinel byte, severity machine code, formatted message, newline.
// No human-readable decoration and no timestamp is added; the parent
// decorates when it relays the line.
type InternalHandler struct {
	state    *State
	recursed int
}

// NewInternalHandler creates an internal-protocol backend over the given state
func NewInternalHandler(state *State) *InternalHandler {
	return &InternalHandler{state: state}
}

// Handle delivers an Info, Warning or Error report as one frame.
// Delivery failure escalates with StatusLogProtocol.
func (h *InternalHandler) Handle(sev core.Severity, format string, args []any) error {
	if err := h.emit(sev, format, args); err != nil {
		return &Escalation{Status: core.StatusLogProtocol, Err: err}
	}
	return nil
}

// HandleFatal delivers a Fatal or Panic frame and remaps the default
// status to StatusLogProtocol when delivery failed.
func (h *InternalHandler) HandleFatal(sev core.Severity, status core.Status, format string, args []any) core.Status {
	if err := h.emit(sev, format, args); err != nil && status == core.StatusDefault {
		status = core.StatusLogProtocol
	}
	return status
}

// Annotate emits the out-of-band address annotation frame
// (sentinel + 'O' + "ip=<addr>") that attaches a peer address to the
// current failure stream. Only meaningful while this backend is the
// active error handler; the registry enforces that. Best effort.
func (h *InternalHandler) Annotate(addr netip.Addr) {
	frame := make([]byte, 0, 8+len(addr.String()))
	frame = append(frame, formatter.Sentinel, 'O')
	frame = append(frame, "ip="...)
	frame = append(frame, addr.String()...)
	frame = append(frame, '\n')
	_ = WriteRetry(wireFd, frame)
}

func (h *InternalHandler) emit(sev core.Severity, format string, args []any) error {
	if h.recursed >= maxDepth {
		return ErrReportDepth
	}
	h.recursed++
	defer func() { h.recursed-- }()

	msg := formatter.Message(h.state.SysErr, format, args...)
	err := WriteRetry(wireFd, formatter.Frame(sev.Code(), msg))
	if err != nil && h.state.IgnoreErrors {
		err = nil
	}
	return err
}
