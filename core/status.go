package core

// Status is the machine-readable reason accompanying process
// termination on the fatal path. It is carried from the reporting call
// to the exit boundary and may be remapped once if the fatal log write
// itself failed.
type Status int

const (
	// StatusLogOpen means the log file could not be opened
	StatusLogOpen Status = 80
	// StatusLogWrite means writing to the log descriptor failed
	StatusLogWrite Status = 81
	// StatusLogProtocol means a non-descriptor log transport failed
	StatusLogProtocol Status = 82
	// StatusOutOfMemory means an allocation failure was reported
	StatusOutOfMemory Status = 83
	// StatusDefault is the status of a fatal report with no specific reason
	StatusDefault Status = 89
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusLogOpen:
		return "LOGOPEN"
	case StatusLogWrite:
		return "LOGWRITE"
	case StatusLogProtocol:
		return "LOGPROTOCOL"
	case StatusOutOfMemory:
		return "OUTOFMEM"
	case StatusDefault:
		return "DEFAULT"
	default:
		return "UNKNOWN"
	}
}
