package ticker

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ErrShortRead is returned if a counter was read not as a full 8-byte
// value. Это не ошибка передачи данных, вызывающий только предупреждает.
var ErrShortRead = errors.New("short read of timer expiration counter")

// ErrInvalidInterval is returned for non-positive intervals.
var ErrInvalidInterval = errors.New("interval must be positive")

const counterSize = 8

type readFunc func(fd int, p []byte) (int, error)

// Ticker is a periodic timer exposed as a readable descriptor. First
// expiration happens at T+interval. Expirations returns a number of periods
// elapsed since the previous call.
type Ticker struct {
	fd       int
	interval time.Duration
	buf      [counterSize]byte
	read     readFunc
	closer   func() error
}

// FD returns a descriptor which becomes readable on expiration.
func (t *Ticker) FD() int {
	return t.fd
}

// Interval returns a configured interval.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Expirations drains expiration counter. 0 with nil error means that
// nothing has expired yet.
func (t *Ticker) Expirations() (uint64, error) {
	n, err := t.read(t.fd, t.buf[:])

	switch {
	case errors.Is(err, unix.EAGAIN), errors.Is(err, unix.EINTR):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("cannot read timer: %w", err)
	case n != counterSize:
		return 0, fmt.Errorf("%w: got %d bytes", ErrShortRead, n)
	}

	return binary.NativeEndian.Uint64(t.buf[:]), nil
}

func (t *Ticker) Close() error {
	return t.closer()
}
