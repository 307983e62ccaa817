package failure

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
)

// Deinit releases the descriptors and transports the Reporter owns
// (never the console descriptor) and resets every decoration field,
// slot and callback to its initial default. Close failures are
// aggregated and returned.
func (r *Reporter) Deinit() error {
	var err error

	if r.state.InfoFd == r.state.ErrFd {
		r.state.InfoFd = unix.Stderr
	}
	if r.state.ErrFd != unix.Stderr {
		if cerr := sysClose(r.state.ErrFd); cerr != nil {
			err = multierr.Append(err, errors.Wrapf(cerr, "close error log (fd %d)", r.state.ErrFd))
		}
		r.state.ErrFd = unix.Stderr
	}
	if r.state.InfoFd != unix.Stderr {
		if cerr := sysClose(r.state.InfoFd); cerr != nil {
			err = multierr.Append(err, errors.Wrapf(cerr, "close info log (fd %d)", r.state.InfoFd))
		}
		r.state.InfoFd = unix.Stderr
	}

	err = multierr.Append(err, r.closeSyslog())

	r.state.Reset()
	r.exitCallback = nil
	r.fatalSlot = r.deflt
	r.errorSlot = r.deflt
	r.infoSlot = r.deflt

	return err
}

func (r *Reporter) closeSyslog() error {
	if r.syslogCloser == nil {
		return nil
	}
	closer := r.syslogCloser
	r.syslogCloser = nil
	if cerr := closer.Close(); cerr != nil {
		return errors.Wrap(cerr, "close syslog")
	}
	return nil
}
