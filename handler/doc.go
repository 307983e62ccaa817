// Package handler provides the handler contracts of the failure
// reporting subsystem and its built-in backend implementations.
//
// A backend is a pair of capabilities: Handler delivers Info, Warning
// and Error reports and answers with success or failure; FatalHandler
// delivers Fatal and Panic reports and answers with the exit status
// the process must terminate with, remapping the default status when
// the fatal line itself could not be delivered.
//
// Built-in backends:
//
//   - FileHandler writes decorated lines to the configured error and
//     info descriptors through a bounded retry loop that survives
//     partial writes, a limited number of signal interruptions, and
//     descriptors that momentarily refuse data.
//   - SyslogHandler maps severities onto syslog priorities and hands
//     transport to the host's system log service.
//   - InternalHandler frames reports for a supervising process:
//     sentinel byte, severity code, message, newline.
//
// Every backend carries its own recursion depth counter, shared
// between its fatal and error paths and capped at 2. A report issued
// from inside the handling of another report (an allocation failure
// while formatting, a signal handler firing mid-write) is delivered;
// one level deeper fails immediately without formatting or writing,
// which terminates the recursion instead of the stack.
//
// Delivery failures surface as *Escalation values naming the status
// the registry must terminate the process with.
package handler
