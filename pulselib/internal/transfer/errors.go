package transfer

import (
	"errors"

	"golang.org/x/sys/unix"
)

// isTransient: дескриптор просто не готов или вызов прерван сигналом.
func isTransient(err error) bool {
	return errors.Is(err, unix.EAGAIN) ||
		errors.Is(err, unix.EWOULDBLOCK) ||
		errors.Is(err, unix.EINTR)
}

// isBrokenPipe проверяет, что получатель закрыл свою сторону. Проверка
// выполняется явно на каждый результат записи: SIGPIPE не маскируется.
func isBrokenPipe(err error) bool {
	return errors.Is(err, unix.EPIPE) || errors.Is(err, unix.ECONNRESET)
}

// isUnsupported: splice не умеет работать с такой парой дескрипторов
// (например, ни один из них не pipe).
func isUnsupported(err error) bool {
	return errors.Is(err, unix.EINVAL) || errors.Is(err, unix.ENOSYS)
}
