//go:build linux

package transfer

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type spliceFunc func(rfd int, roff *int64, wfd int, woff *int64, length int, flags int) (int64, error)

// zeroCopy передаёт данные через splice() напрямую между дескрипторами,
// минуя память процесса. Хотя бы один из дескрипторов должен быть pipe,
// иначе ядро вернёт EINVAL и движок перейдёт на буферную стратегию.
type zeroCopy struct {
	in        int
	out       int
	chunkSize int
	splice    spliceFunc
}

func (z *zeroCopy) Transfer() Result {
	n, err := z.splice(z.in, nil, z.out, nil, z.chunkSize,
		unix.SPLICE_F_MOVE|unix.SPLICE_F_NONBLOCK)

	switch {
	case err == nil && n == 0:
		return Result{Kind: InputClosed}
	case err == nil:
		return Result{Kind: Moved, N: int(n)}
	case isTransient(err):
		return Result{Kind: WouldBlock}
	case isUnsupported(err):
		return Result{Kind: Unsupported, Err: err}
	case isBrokenPipe(err):
		return Result{Kind: OutputClosed, Err: err}
	}

	return Result{
		Kind: Fatal,
		Err:  fmt.Errorf("cannot splice data from input to output: %w", err),
	}
}

func newZeroCopy(in, out, chunkSize int) Strategy {
	return &zeroCopy{
		in:        in,
		out:       out,
		chunkSize: chunkSize,
		splice:    unix.Splice,
	}
}
