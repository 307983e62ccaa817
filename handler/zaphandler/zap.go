// Package zaphandler bridges failure reports into a zap logger. It is
// the custom-backend variant for hosts that already run structured
// logging: reports keep their free-text prefix and %m expansion but
// are delivered through zap instead of a raw descriptor.
package zaphandler

import (
	"go.uber.org/zap"

	"github.com/philipp01105/nfault/core"
	"github.com/philipp01105/nfault/formatter"
	"github.com/philipp01105/nfault/handler"
)

// ZapHandler forwards reports to a zap logger. Delivery failures are
// not observable through zap's API, so the error path never escalates
// and fatal statuses pass through unchanged.
type ZapHandler struct {
	state *handler.State
	log   *zap.Logger
}

// New creates a zap bridge over the given state and logger
func New(state *handler.State, log *zap.Logger) *ZapHandler {
	return &ZapHandler{state: state, log: log}
}

// Handle forwards an Info, Warning or Error report at the matching zap level
func (h *ZapHandler) Handle(sev core.Severity, format string, args []any) error {
	msg := h.message(sev, false, format, args)
	switch sev {
	case core.InfoSeverity:
		h.log.Info(msg)
	case core.WarningSeverity:
		h.log.Warn(msg)
	default:
		h.log.Error(msg)
	}
	return nil
}

// HandleFatal forwards a Fatal or Panic report at zap's error level,
// decorated with the severity word, and returns the status unchanged.
// Termination stays with the registry; zap's own Fatal would exit
// underneath it with the wrong status.
func (h *ZapHandler) HandleFatal(sev core.Severity, status core.Status, format string, args []any) core.Status {
	h.log.Error(h.message(sev, true, format, args))
	return status
}

func (h *ZapHandler) message(sev core.Severity, decorate bool, format string, args []any) string {
	deco := ""
	if decorate {
		deco = sev.Prefix()
	}
	return h.state.Prefix + deco + formatter.Message(h.state.SysErr, format, args...)
}
