// Package core defines the shared types of the nfault subsystem.
//
// It provides the Severity type that classifies a failure report and
// the Status type carried to process termination on the fatal path.
//
// Both types are closed variant sets fixed at process start. Each
// Severity carries two fixed renderings: a human-readable prefix word
// ("Error: ") used by the direct-file and syslog backends, and a
// single-character machine code ('E') used by the internal wire
// protocol. Status values are the small integers the process exits
// with; they are machine-readable reasons, distinct from the human
// message of the report that triggered them.
package core
