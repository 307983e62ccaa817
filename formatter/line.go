package formatter

import (
	"github.com/trickstertwo/xclock"
)

// stampBufSize bounds the rendered timestamp segment.
const stampBufSize = 256

// Sentinel is the framing byte that opens every internal-protocol line.
const Sentinel byte = 0x01

// clockNow is a variable to allow overriding the clock in tests
var clockNow = xclock.Now

// Stamp renders the current time using the given layout. An empty
// layout, or a layout that renders to zero bytes, yields an empty
// segment. The rendering is truncated to a fixed 256-byte bound.
func Stamp(layout string) string {
	if layout == "" {
		return ""
	}
	buf := make([]byte, 0, stampBufSize)
	buf = clockNow().AppendFormat(buf, layout)
	if len(buf) > stampBufSize {
		buf = buf[:stampBufSize]
	}
	return string(buf)
}

// Line builds one decorated output line: timestamp segment, free-text
// prefix, severity prefix word, message, trailing newline. Empty
// segments are omitted, never replaced with placeholders.
func Line(stamp, prefix, sevPrefix, msg string) []byte {
	b := make([]byte, 0, len(stamp)+len(prefix)+len(sevPrefix)+len(msg)+1)
	b = append(b, stamp...)
	b = append(b, prefix...)
	b = append(b, sevPrefix...)
	b = append(b, msg...)
	b = append(b, '\n')
	return b
}

// Frame builds one internal-protocol line: sentinel byte, severity
// machine code, message, trailing newline. The stream is meant for a
// supervising process, so no human-readable decoration is added.
func Frame(code byte, msg string) []byte {
	b := make([]byte, 0, len(msg)+3)
	b = append(b, Sentinel, code)
	b = append(b, msg...)
	b = append(b, '\n')
	return b
}
