package transfer

import (
	"fmt"

	"golang.org/x/sys/unix"
)

type ioFunc func(fd int, p []byte) (int, error)

// window: буфер фиксированного размера, который заполняется вперёд.
//
// [0, flushed)       уже записано в выход
// [flushed, filled)  прочитано, ждёт записи
// [filled, len(buf)) свободно для чтения
//
// Оба курсора сбрасываются в 0, как только всё прочитанное записано.
// Если окно заполнено до конца, а запись отстаёт, чтение не выполняется:
// непереданные байты никогда не перезаписываются.
type window struct {
	buf     []byte
	filled  int
	flushed int
}

func (w *window) free() []byte {
	return w.buf[w.filled:]
}

func (w *window) unflushed() []byte {
	return w.buf[w.flushed:w.filled]
}

func (w *window) reset() {
	if w.flushed == w.filled {
		w.filled = 0
		w.flushed = 0
	}
}

// Buffered is a fallback strategy which stages bytes in a window in
// process memory. It is used when splice cannot serve a descriptor pair.
type Buffered struct {
	in   int
	out  int
	size int
	eof  bool
	win  window

	read  ioFunc
	write ioFunc
}

// Pending returns true if some bytes were read but not written yet.
func (b *Buffered) Pending() bool {
	return b.win.flushed < b.win.filled
}

// Transfer performs one non-blocking read into the window and one
// non-blocking write of unflushed window contents.
func (b *Buffered) Transfer() Result {
	if b.win.buf == nil {
		b.win.buf = make([]byte, b.size)
	}

	progressed := false

	// Чтение и запись независимы: EAGAIN на входе не мешает попытаться
	// записать то, что уже лежит в окне.
	if free := b.win.free(); !b.eof && len(free) > 0 {
		n, err := b.read(b.in, free)

		switch {
		case err == nil && n == 0:
			b.eof = true
		case err == nil:
			b.win.filled += n
			progressed = true
		case isTransient(err):
		default:
			return Result{
				Kind: Fatal,
				Err:  fmt.Errorf("cannot read from input: %w", err),
			}
		}
	}

	written := 0

	if data := b.win.unflushed(); len(data) > 0 {
		n, err := b.write(b.out, data)

		switch {
		case err == nil:
			b.win.flushed += n
			written = n
			progressed = progressed || n > 0
		case isTransient(err):
		case isBrokenPipe(err):
			return Result{Kind: OutputClosed, Err: err}
		default:
			return Result{
				Kind: Fatal,
				Err:  fmt.Errorf("cannot write to output: %w", err),
			}
		}
	}

	b.win.reset()

	switch {
	case b.eof && !b.Pending():
		return Result{Kind: InputClosed, N: written}
	case !progressed:
		return Result{Kind: WouldBlock}
	}

	return Result{Kind: Moved, N: written}
}

// NewBuffered creates a buffered strategy. A window is allocated on the
// first transfer attempt.
func NewBuffered(in, out, windowSize int) *Buffered {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}

	return &Buffered{
		in:    in,
		out:   out,
		size:  windowSize,
		read:  unix.Read,
		write: unix.Write,
	}
}
