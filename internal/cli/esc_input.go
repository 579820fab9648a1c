package cli

import (
	"io"
	"time"
)

const (
	escByte            = byte(0x1b)
	ctrlCByte          = byte(0x03)
	escSequenceTimeout = 25 * time.Millisecond
)

// terminalInput is the terminal survey reads key presses from.
type terminalInput interface {
	io.Reader
	Fd() uintptr
}

// escBackReader turns a lone Esc into Ctrl+C so survey aborts the prompt,
// and records it so the abort can be read as "back". An Esc followed by
// more input starts a key sequence (arrows, function keys) and passes
// through unchanged.
type escBackReader struct {
	in          terminalInput
	hasPending  func(fd uintptr, timeout time.Duration) bool
	backPressed bool
}

func newEscBackReader(in terminalInput) *escBackReader {
	return &escBackReader{in: in, hasPending: inputPending}
}

func (r *escBackReader) Read(p []byte) (int, error) {
	n, err := r.in.Read(p)
	if n <= 0 {
		return n, err
	}

	last := n - 1
	if p[last] == escByte && !r.hasPending(r.in.Fd(), escSequenceTimeout) {
		p[last] = ctrlCByte
		r.backPressed = true
	}

	return n, err
}

func (r *escBackReader) Fd() uintptr {
	return r.in.Fd()
}

// takeBack reports whether Esc was pressed since the last call.
func (r *escBackReader) takeBack() bool {
	pressed := r.backPressed
	r.backPressed = false

	return pressed
}
