package handler

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/philipp01105/nfault/core"
)

// maxDepth caps nested report deliveries per backend.
const maxDepth = 2

// ErrReportDepth is returned when a report is issued from too deep
// inside the handling of another report.
var ErrReportDepth = errors.New("nested failure report depth exceeded")

// Handler delivers Info, Warning and Error reports.
type Handler interface {
	// Handle formats and delivers one report. The args slice is the
	// untouched argument list of the reporting call; formatting happens
	// inside the handler so the recursion guard covers it.
	Handle(sev core.Severity, format string, args []any) error
}

// FatalHandler delivers Fatal and Panic reports. It performs only the
// reporting step of the fatal path; the registry terminates the
// process afterwards with the returned status.
type FatalHandler interface {
	// HandleFatal formats and delivers one fatal report and returns the
	// exit status, remapped if delivery failed and the incoming status
	// carried no specific reason.
	HandleFatal(sev core.Severity, status core.Status, format string, args []any) core.Status
}

// Escalation is the failure a Handler reports when a delivery problem
// must terminate the process. Status is the exit status to use. When
// Format is non-empty the registry first routes it through the fatal
// slot as a follow-up report, so the reason for dying still has a
// chance to reach a sink.
type Escalation struct {
	Status core.Status
	Format string
	Args   []any
	Err    error
}

// Error implements the error interface
func (e *Escalation) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("log delivery failed (%s): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("log delivery failed (%s)", e.Status)
}

// Unwrap returns the underlying delivery error
func (e *Escalation) Unwrap() error { return e.Err }
