//go:build linux

package ticker

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// New creates a timerfd on the monotonic clock.
func New(interval time.Duration) (*Ticker, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	fd, err := unix.TimerfdCreate(unix.CLOCK_MONOTONIC, unix.TFD_NONBLOCK|unix.TFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("cannot create timerfd: %w", err)
	}

	spec := unix.NsecToTimespec(interval.Nanoseconds())

	if err := unix.TimerfdSettime(fd, 0, &unix.ItimerSpec{
		Interval: spec,
		Value:    spec,
	}, nil); err != nil {
		unix.Close(fd)

		return nil, fmt.Errorf("cannot arm timerfd: %w", err)
	}

	return &Ticker{
		fd:       fd,
		interval: interval,
		read:     unix.Read,
		closer: func() error {
			return unix.Close(fd) //nolint: wrapcheck
		},
	}, nil
}
