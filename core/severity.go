package core

// Severity represents the classification of a failure report
type Severity int8

const (
	// InfoSeverity for informational reports
	InfoSeverity Severity = iota
	// WarningSeverity for recoverable anomalies
	WarningSeverity
	// ErrorSeverity for failed operations the process survives
	ErrorSeverity
	// FatalSeverity for failures that terminate the process
	FatalSeverity
	// PanicSeverity for failures that abort the process
	PanicSeverity
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case InfoSeverity:
		return "INFO"
	case WarningSeverity:
		return "WARNING"
	case ErrorSeverity:
		return "ERROR"
	case FatalSeverity:
		return "FATAL"
	case PanicSeverity:
		return "PANIC"
	default:
		return "UNKNOWN"
	}
}

// pre-computed prefix words so the write path is a single append
var severityPrefixes = [...]string{
	InfoSeverity:    "Info: ",
	WarningSeverity: "Warning: ",
	ErrorSeverity:   "Error: ",
	FatalSeverity:   "Fatal: ",
	PanicSeverity:   "Panic: ",
}

var severityCodes = [...]byte{
	InfoSeverity:    'I',
	WarningSeverity: 'W',
	ErrorSeverity:   'E',
	FatalSeverity:   'F',
	PanicSeverity:   'P',
}

// Prefix returns the human-readable prefix word of the severity,
// including the trailing separator ("Error: ").
func (s Severity) Prefix() string {
	if s < InfoSeverity || s > PanicSeverity {
		return "Unknown: "
	}
	return severityPrefixes[s]
}

// Code returns the single-character machine code of the severity used
// by the internal wire protocol.
func (s Severity) Code() byte {
	if s < InfoSeverity || s > PanicSeverity {
		return '?'
	}
	return severityCodes[s]
}
