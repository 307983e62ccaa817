// Package failure is the public API of the nfault subsystem. Most
// programs only need to import this package.
//
// A Reporter owns the three handler slots (fatal, error, info), the
// process-wide decoration state, and the exit boundary. Reporting
// calls classify one failure event, format it into a single line, and
// deliver it through the active backend:
//
//	failure.SetPrefix("imap: ")
//	failure.Error("read(%s) failed: %m", path)
//	failure.Fatal("config is unusable")
//
// Info routes through the info slot; Warning and Error route through
// the error slot; Fatal and Panic route through the fatal slot and do
// not return — the process terminates with the carried status, after
// the exit observer had its say, or aborts outright for Panic.
//
// Backends are selected with UseFile, UseSyslog and UseInternal; each
// installs all three slots, replacing the previous backend entirely.
// Individual slots accept custom handlers; passing nil restores the
// built-in default, never an empty slot.
//
// The subsystem stays deliberately self-reliant: it formats and writes
// with its own bounded retry and recursion-guard machinery so it keeps
// working when the process is degraded — out of memory, interrupted by
// signals, or facing a blocked descriptor. It performs no internal
// locking; callers serialize use of a Reporter externally.
//
// The package initializes a default Reporter targeting the console
// descriptor; the package-level functions delegate to it, so simple
// programs can report without any setup. Deinit releases owned
// descriptors and resets all state.
package failure
