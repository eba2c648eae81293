package poller

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Readiness is a set of descriptors which became ready.
type Readiness uint8

const (
	InputReady Readiness = 1 << iota
	OutputReady
	TimerReady
	Woken
)

// Has returns true if all given flags are set.
func (r Readiness) Has(flags Readiness) bool {
	return r&flags == flags
}

// Interest defines which data path descriptors are watched. Descriptor
// which is already known to be ready should not be watched: otherwise poll
// returns immediately and the loop spins while the other side is busy.
type Interest struct {
	Input  bool
	Output bool
}

// ErrInvalidDescriptor is returned if poll reports POLLNVAL.
var ErrInvalidDescriptor = errors.New("descriptor is not open")

const (
	slotInput = iota
	slotOutput
	slotTimer
	slotWaker
	slotCount
)

const (
	// HUP и ERR считаем готовностью: следующий read/write вернёт EOF или
	// EPIPE, и движок обработает терминальное состояние.
	inputEvents  = unix.POLLIN | unix.POLLHUP | unix.POLLERR
	outputEvents = unix.POLLOUT | unix.POLLHUP | unix.POLLERR
)

type pollFunc func(fds []unix.PollFd, timeout int) (int, error)

// Poller blocks until at least one of watched descriptors is ready. This is
// the only place where the transfer loop suspends.
type Poller struct {
	fds  [slotCount]int
	set  [slotCount]unix.PollFd
	poll pollFunc
}

// Wait blocks without timeout. The interval timer is one of the watched
// descriptors, so reporting is never starved by a silent data path.
// Interrupted waits are retried.
func (p *Poller) Wait(interest Interest) (Readiness, error) {
	p.arm(slotInput, interest.Input, unix.POLLIN)
	p.arm(slotOutput, interest.Output, unix.POLLOUT)
	p.arm(slotTimer, true, unix.POLLIN)
	p.arm(slotWaker, true, unix.POLLIN)

	for {
		n, err := p.poll(p.set[:], -1)

		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return 0, fmt.Errorf("poll has failed: %w", err)
		case n == 0:
			continue
		}

		return p.collect()
	}
}

func (p *Poller) arm(slot int, enabled bool, events int16) {
	p.set[slot].Revents = 0
	p.set[slot].Events = events

	// Отрицательный fd poll пропускает, включая HUP/ERR.
	if enabled {
		p.set[slot].Fd = int32(p.fds[slot])
	} else {
		p.set[slot].Fd = -1
	}
}

func (p *Poller) collect() (Readiness, error) {
	var ready Readiness

	for slot := range p.set {
		revents := p.set[slot].Revents
		if revents == 0 {
			continue
		}

		if revents&unix.POLLNVAL != 0 {
			return 0, fmt.Errorf("fd %d: %w", p.set[slot].Fd, ErrInvalidDescriptor)
		}

		switch slot {
		case slotInput:
			if revents&inputEvents != 0 {
				ready |= InputReady
			}
		case slotOutput:
			if revents&outputEvents != 0 {
				ready |= OutputReady
			}
		case slotTimer:
			ready |= TimerReady
		case slotWaker:
			ready |= Woken
		}
	}

	return ready, nil
}

// New creates a poller for input, output, timer and waker descriptors.
// Negative timer or waker descriptors are never watched.
func New(input, output, timer, waker int) *Poller {
	return &Poller{
		fds:  [slotCount]int{input, output, timer, waker},
		poll: unix.Poll,
	}
}
