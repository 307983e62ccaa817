// Package formatter turns a failure report into the exact bytes a
// backend delivers.
//
// Message renders a printf-style template through a hardened pass:
// the %m directive expands to the description of the captured system
// error without consuming an argument, and %n — the one directive a
// hostile template could use to write through memory in its C
// ancestry — is neutralized to literal text before the template ever
// reaches fmt. Everything else is plain fmt.Sprintf.
//
// Line assembles the single decorated output line in fixed order:
// optional timestamp, optional free-text prefix, severity prefix word,
// message, one trailing newline. The timestamp segment renders into a
// bounded 256-byte buffer; an empty layout or an empty rendering omits
// the segment entirely rather than substituting a placeholder.
//
// Frame builds the machine-parsable variant used by the internal wire
// protocol: a sentinel byte, the severity's single-character code, the
// message, and a newline, with no human-readable decoration.
package formatter
