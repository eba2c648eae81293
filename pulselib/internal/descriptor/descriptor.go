package descriptor

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// State remembers descriptor flags before we switched it into
// non-blocking mode. stdin/stdout разделяют file description с другими
// процессами (shell, соседи по pipeline), поэтому флаги надо вернуть.
type State struct {
	fd    int
	flags int
}

// Restore puts original file status flags back.
func (s State) Restore() error {
	if _, err := unix.FcntlInt(uintptr(s.fd), unix.F_SETFL, s.flags); err != nil {
		return fmt.Errorf("cannot restore flags of fd %d: %w", s.fd, err)
	}

	return nil
}

// SetNonblock switches a descriptor into non-blocking mode.
func SetNonblock(fd int) (State, error) {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return State{}, fmt.Errorf("cannot get flags of fd %d: %w", fd, err)
	}

	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
		return State{}, fmt.Errorf("cannot set O_NONBLOCK on fd %d: %w", fd, err)
	}

	return State{fd: fd, flags: flags}, nil
}

// IsPipe returns true if descriptor is a FIFO.
func IsPipe(fd int) bool {
	var stat unix.Stat_t

	if err := unix.Fstat(fd, &stat); err != nil {
		return false
	}

	return stat.Mode&unix.S_IFMT == unix.S_IFIFO
}
