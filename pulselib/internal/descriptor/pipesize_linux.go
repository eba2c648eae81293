//go:build linux

package descriptor

import "golang.org/x/sys/unix"

// GrowPipe увеличивает ёмкость pipe до size байт, чтобы один splice мог
// перенести целый chunk. Ошибки игнорируются: ядро может ограничить размер
// через /proc/sys/fs/pipe-max-size, это не повод останавливаться.
func GrowPipe(fd, size int) int {
	if !IsPipe(fd) {
		return 0
	}

	current, err := unix.FcntlInt(uintptr(fd), unix.F_GETPIPE_SZ, 0)
	if err != nil || current >= size {
		return current
	}

	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETPIPE_SZ, size); err != nil {
		return current
	}

	current, _ = unix.FcntlInt(uintptr(fd), unix.F_GETPIPE_SZ, 0)

	return current
}
