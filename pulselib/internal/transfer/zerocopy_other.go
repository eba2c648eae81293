//go:build !linux

package transfer

import "golang.org/x/sys/unix"

// splice() есть только в Linux. Здесь стратегия всегда отвечает
// Unsupported, и движок сразу переходит на буферный режим.
type zeroCopy struct{}

func (zeroCopy) Transfer() Result {
	return Result{Kind: Unsupported, Err: unix.ENOSYS}
}

func newZeroCopy(_, _, _ int) Strategy {
	return zeroCopy{}
}
