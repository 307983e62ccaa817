package handler

import (
	"golang.org/x/sys/unix"

	"github.com/philipp01105/nfault/core"
	"github.com/philipp01105/nfault/formatter"
)

// State holds the process-wide decoration and target state read by
// every backend on every call: the free-text prefix, the timestamp
// layout, the ignore-write-errors flag, the two output descriptors,
// and the captured system error that the %m directive expands to.
//
// Mutation is last-write-wins with no stacking. The subsystem performs
// no locking; callers serialize access externally.
type State struct {
	// Prefix is prepended to every decorated line after the timestamp
	Prefix string
	// StampLayout is the Go time layout of the timestamp segment; empty disables it
	StampLayout string
	// IgnoreErrors makes delivery failures report success
	IgnoreErrors bool
	// ErrFd receives Warning, Error, Fatal and Panic lines
	ErrFd int
	// InfoFd receives Info lines; defaults to sharing ErrFd
	InfoFd int
	// SysErr is the captured system error rendered by %m
	SysErr error
}

// NewState returns decoration state with both targets on the console
// descriptor and everything else off.
func NewState() *State {
	return &State{ErrFd: unix.Stderr, InfoFd: unix.Stderr}
}

// Line renders the fully decorated line for one report under the
// current decoration state.
func (s *State) Line(sev core.Severity, format string, args []any) []byte {
	msg := formatter.Message(s.SysErr, format, args...)
	return formatter.Line(formatter.Stamp(s.StampLayout), s.Prefix, sev.Prefix(), msg)
}

// Reset restores every decoration field to its initial default. Open
// descriptors are the caller's to close first.
func (s *State) Reset() {
	s.Prefix = ""
	s.StampLayout = ""
	s.IgnoreErrors = false
	s.ErrFd = unix.Stderr
	s.InfoFd = unix.Stderr
	s.SysErr = nil
}
