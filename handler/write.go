package handler

import (
	"golang.org/x/sys/unix"

	"github.com/philipp01105/nfault/ioloop"
)

// maxWriteInterrupts bounds how many interrupted writes are retried:
// the first interruption plus two further attempts.
const maxWriteInterrupts = 3

// Variables to allow overriding the raw write and the writability wait
// in tests.
var (
	sysWrite     = unix.Write
	waitWritable = ioloop.WaitWritable
)

// WriteRetry writes p to fd in full or fails. A partial write advances
// the unwritten suffix and continues. A zero-byte write means the
// device is out of space. An interrupted write is retried up to two
// extra times. A would-block result is possible even on a blocking
// descriptor (terminals do this); the call then parks on a single-shot
// writability wait and resumes with nothing lost or duplicated. Any
// other error is a hard failure.
func WriteRetry(fd int, p []byte) error {
	interrupts := 0
	for len(p) > 0 {
		n, err := sysWrite(fd, p)
		if n > 0 {
			p = p[n:]
			continue
		}
		if err == nil {
			return unix.ENOSPC
		}
		if err == unix.EINTR {
			if interrupts++; interrupts < maxWriteInterrupts {
				continue
			}
			return err
		}
		if err != unix.EAGAIN {
			return err
		}
		if werr := waitWritable(fd); werr != nil {
			return werr
		}
	}
	return nil
}
