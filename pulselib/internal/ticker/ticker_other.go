//go:build !linux

package ticker

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// New emulates timerfd with a pipe: a goroutine writes an expiration
// counter on every tick. Если читатель не успевает и pipe переполнен, тик
// теряется: учёт таймера best-effort.
func New(interval time.Duration) (*Ticker, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	fds := make([]int, 2)
	if err := unix.Pipe(fds); err != nil {
		return nil, fmt.Errorf("cannot create ticker pipe: %w", err)
	}

	for _, fd := range fds {
		unix.CloseOnExec(fd)

		if err := unix.SetNonblock(fd, true); err != nil {
			unix.Close(fds[0])
			unix.Close(fds[1])

			return nil, fmt.Errorf("cannot make ticker pipe non-blocking: %w", err)
		}
	}

	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		tick := time.NewTicker(interval)
		defer tick.Stop()

		var buf [counterSize]byte

		binary.NativeEndian.PutUint64(buf[:], 1)

		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				unix.Write(fds[1], buf[:]) //nolint: errcheck
			}
		}
	}()

	return &Ticker{
		fd:       fds[0],
		interval: interval,
		read:     unix.Read,
		closer: func() error {
			close(stop)
			<-done

			errR := unix.Close(fds[0])
			errW := unix.Close(fds[1])

			if errR != nil {
				return errR //nolint: wrapcheck
			}

			return errW //nolint: wrapcheck
		},
	}, nil
}
