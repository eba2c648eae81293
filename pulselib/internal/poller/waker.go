package poller

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Waker is a self-pipe which interrupts Poller.Wait from another goroutine.
type Waker struct {
	r int
	w int
}

// FD returns a descriptor which becomes readable after Wake.
func (w *Waker) FD() int {
	return w.r
}

// Wake makes FD readable. It is safe to call it many times.
func (w *Waker) Wake() {
	unix.Write(w.w, []byte{1}) //nolint: errcheck
}

func (w *Waker) Close() error {
	errR := unix.Close(w.r)
	errW := unix.Close(w.w)

	if errR != nil {
		return fmt.Errorf("cannot close waker: %w", errR)
	}

	if errW != nil {
		return fmt.Errorf("cannot close waker: %w", errW)
	}

	return nil
}

func NewWaker() (*Waker, error) {
	fds := make([]int, 2)

	if err := unix.Pipe(fds); err != nil {
		return nil, fmt.Errorf("cannot create waker pipe: %w", err)
	}

	for _, fd := range fds {
		unix.CloseOnExec(fd)

		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(fds[0])
			unix.Close(fds[1])

			return nil, fmt.Errorf("cannot make waker non-blocking: %w", err)
		}
	}

	return &Waker{r: fds[0], w: fds[1]}, nil
}
