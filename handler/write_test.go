package handler

import (
	"bytes"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/philipp01105/nfault/ioloop"
)

// fakeWrite captures raw writes in place of the real syscall. Each
// scripted step may deliver a short count or an error before the
// remaining steps append to the buffer.
type fakeWrite struct {
	buf   bytes.Buffer
	fds   []int
	steps []writeStep
	calls int
}

type writeStep struct {
	n   int
	err error
}

func (f *fakeWrite) install(t *testing.T) {
	t.Helper()
	sysWrite = func(fd int, p []byte) (int, error) {
		f.calls++
		f.fds = append(f.fds, fd)
		if len(f.steps) > 0 {
			step := f.steps[0]
			f.steps = f.steps[1:]
			if step.err != nil {
				return -1, step.err
			}
			if step.n >= 0 {
				f.buf.Write(p[:step.n])
				return step.n, nil
			}
		}
		f.buf.Write(p)
		return len(p), nil
	}
	t.Cleanup(func() { sysWrite = unix.Write })
}

func TestWriteRetry_FullWrite(t *testing.T) {
	f := &fakeWrite{}
	f.install(t)

	if err := WriteRetry(7, []byte("hello\n")); err != nil {
		t.Errorf("WriteRetry() error = %v", err)
	}
	if f.buf.String() != "hello\n" {
		t.Errorf("written = %q, want %q", f.buf.String(), "hello\n")
	}
	if f.fds[0] != 7 {
		t.Errorf("write fd = %d, want 7", f.fds[0])
	}
}

func TestWriteRetry_PartialWriteResumesAtOffset(t *testing.T) {
	f := &fakeWrite{steps: []writeStep{{n: 3}, {n: 4}}}
	f.install(t)

	line := []byte("0123456789")
	if err := WriteRetry(7, line); err != nil {
		t.Errorf("WriteRetry() error = %v", err)
	}
	// Total bytes must equal the line exactly once: no gap, no duplication.
	if f.buf.String() != "0123456789" {
		t.Errorf("written = %q, want %q", f.buf.String(), "0123456789")
	}
	if f.calls != 3 {
		t.Errorf("write calls = %d, want 3", f.calls)
	}
}

func TestWriteRetry_ZeroByteWriteIsNoSpace(t *testing.T) {
	f := &fakeWrite{steps: []writeStep{{n: 0}}}
	f.install(t)

	err := WriteRetry(7, []byte("x"))
	if err != unix.ENOSPC {
		t.Errorf("WriteRetry() error = %v, want ENOSPC", err)
	}
}

func TestWriteRetry_InterruptedWriteRetried(t *testing.T) {
	f := &fakeWrite{steps: []writeStep{{err: unix.EINTR}, {err: unix.EINTR}}}
	f.install(t)

	if err := WriteRetry(7, []byte("ok")); err != nil {
		t.Errorf("WriteRetry() error = %v", err)
	}
	if f.buf.String() != "ok" {
		t.Errorf("written = %q, want %q", f.buf.String(), "ok")
	}
}

func TestWriteRetry_InterruptedWriteBounded(t *testing.T) {
	f := &fakeWrite{steps: []writeStep{
		{err: unix.EINTR}, {err: unix.EINTR}, {err: unix.EINTR},
	}}
	f.install(t)

	err := WriteRetry(7, []byte("x"))
	if err != unix.EINTR {
		t.Errorf("WriteRetry() error = %v, want EINTR", err)
	}
	if f.calls != 3 {
		t.Errorf("write calls = %d, want 3 (two extra retries)", f.calls)
	}
	if f.buf.Len() != 0 {
		t.Errorf("written %d bytes, want 0", f.buf.Len())
	}
}

func TestWriteRetry_WouldBlockWaitsThenResumes(t *testing.T) {
	f := &fakeWrite{steps: []writeStep{{err: unix.EAGAIN}}}
	f.install(t)

	waits := 0
	waitWritable = func(fd int) error {
		waits++
		return nil
	}
	t.Cleanup(func() { waitWritable = ioloop.WaitWritable })

	if err := WriteRetry(7, []byte("later")); err != nil {
		t.Errorf("WriteRetry() error = %v", err)
	}
	if waits != 1 {
		t.Errorf("writability waits = %d, want 1", waits)
	}
	// Exactly one write attempt follows the wait; never more data than the line.
	if f.calls != 2 {
		t.Errorf("write calls = %d, want 2", f.calls)
	}
	if f.buf.String() != "later" {
		t.Errorf("written = %q, want %q", f.buf.String(), "later")
	}
}

func TestWriteRetry_WaitFailurePropagates(t *testing.T) {
	f := &fakeWrite{steps: []writeStep{{err: unix.EAGAIN}}}
	f.install(t)

	waitWritable = func(fd int) error { return unix.EBADF }
	t.Cleanup(func() { waitWritable = ioloop.WaitWritable })

	if err := WriteRetry(7, []byte("x")); err != unix.EBADF {
		t.Errorf("WriteRetry() error = %v, want EBADF", err)
	}
}

func TestWriteRetry_HardErrorFails(t *testing.T) {
	f := &fakeWrite{steps: []writeStep{{err: unix.EBADF}}}
	f.install(t)

	if err := WriteRetry(7, []byte("x")); err != unix.EBADF {
		t.Errorf("WriteRetry() error = %v, want EBADF", err)
	}
	if f.calls != 1 {
		t.Errorf("write calls = %d, want 1", f.calls)
	}
}
