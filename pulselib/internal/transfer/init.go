package transfer

import "fmt"

const (
	// 128KB за один splice/read. Совпадает с размером окна буферной
	// стратегии и с ёмкостью pipe после F_SETPIPE_SZ.
	DefaultChunkSize = 128 * 1024

	// DefaultWindowSize is a capacity of the buffered strategy window.
	DefaultWindowSize = 128 * 1024
)

// Kind is an outcome of a single transfer attempt.
type Kind int

const (
	// Moved: байты переданы (для буферной стратегии N может быть 0,
	// если продвинулась только сторона чтения).
	Moved Kind = iota

	// WouldBlock: ни одна сторона не готова, надо вернуться к poll.
	WouldBlock

	// InputClosed: вход исчерпан (EOF), терминальное состояние.
	InputClosed

	// OutputClosed: получатель закрыл выход (EPIPE), терминальное состояние.
	OutputClosed

	// Unsupported: пара дескрипторов не поддерживает zero-copy.
	Unsupported

	// Fatal: неожиданная ошибка ввода-вывода.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Moved:
		return "moved"
	case WouldBlock:
		return "would-block"
	case InputClosed:
		return "input-closed"
	case OutputClosed:
		return "output-closed"
	case Unsupported:
		return "unsupported"
	case Fatal:
		return "fatal"
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// Result is a tagged result of a transfer attempt. N is a number of bytes
// accepted by the output during this attempt, it may be non-zero for any
// kind except Unsupported.
type Result struct {
	Kind Kind
	N    int
	Err  error
}

// Terminal returns true if the transfer loop has to stop.
func (r Result) Terminal() bool {
	return r.Kind == InputClosed || r.Kind == OutputClosed || r.Kind == Fatal
}

// Strategy moves bytes from input to output once per call. It must never
// block.
type Strategy interface {
	Transfer() Result
}

// Mode is a currently selected strategy.
type Mode int

const (
	ModeZeroCopy Mode = iota
	ModeBuffered
)

func (m Mode) String() string {
	if m == ModeZeroCopy {
		return "zerocopy"
	}

	return "buffered"
}

// Options configures an Engine.
type Options struct {
	// ChunkSize is a maximum number of bytes moved by a single splice call.
	ChunkSize int

	// WindowSize is a capacity of the buffered strategy window.
	WindowSize int

	// DisableZeroCopy starts engine in buffered mode.
	DisableZeroCopy bool
}

func (o Options) getChunkSize() int {
	if o.ChunkSize <= 0 {
		return DefaultChunkSize
	}

	return o.ChunkSize
}

func (o Options) getWindowSize() int {
	if o.WindowSize <= 0 {
		return DefaultWindowSize
	}

	return o.WindowSize
}
