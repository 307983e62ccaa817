// Package ioloop provides a minimal single-shot reactor for the write
// path: register one writability interest on a descriptor, block until
// it triggers, unregister. It owns no long-lived state, so it is safe
// to invoke from code that is itself running inside an outer event
// loop.
package ioloop

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// sysPoll is a variable to allow overriding poll in tests
var sysPoll = unix.Poll

// WaitWritable blocks until fd becomes writable or polling fails. No
// timeout is applied; a permanently blocked descriptor blocks forever.
// Interrupted polls are resumed transparently.
func WaitWritable(fd int) error {
	pfds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
	for {
		n, err := sysPoll(pfds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "poll(%d)", fd)
		}
		if n > 0 && pfds[0].Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
			return errors.Errorf("poll(%d): descriptor error", fd)
		}
		return nil
	}
}
