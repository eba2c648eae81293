package transfer

// Engine selects a strategy for every transfer attempt. It starts with
// zero-copy and may downgrade to buffered exactly once. There is no way
// back: zero-copy support is a property of a fixed descriptor pair.
type Engine struct {
	mode     Mode
	zeroCopy Strategy
	buffered *Buffered

	downgradeReason error
}

// Mode returns a currently used strategy.
func (e *Engine) Mode() Mode {
	return e.mode
}

// DowngradeReason returns an error which made engine to give up on
// zero-copy. It is nil if downgrade has not happened or was requested by
// options.
func (e *Engine) DowngradeReason() error {
	return e.downgradeReason
}

// Pending returns true if buffered strategy holds unflushed bytes. In that
// case the output readiness alone is enough to make a progress.
func (e *Engine) Pending() bool {
	return e.mode == ModeBuffered && e.buffered.Pending()
}

// Step performs a single transfer attempt. Unsupported never escapes: the
// engine downgrades and retries the same readiness event with a buffered
// strategy so no readiness signal is wasted.
func (e *Engine) Step() Result {
	if e.mode == ModeZeroCopy {
		res := e.zeroCopy.Transfer()
		if res.Kind != Unsupported {
			return res
		}

		e.downgrade(res.Err)
	}

	return e.buffered.Transfer()
}

func (e *Engine) downgrade(reason error) {
	e.mode = ModeBuffered
	e.zeroCopy = nil
	e.downgradeReason = reason
}

// NewEngine creates a transfer engine for a given pair of non-blocking
// descriptors.
func NewEngine(in, out int, opts Options) *Engine {
	return newEngine(
		newZeroCopy(in, out, opts.getChunkSize()),
		NewBuffered(in, out, opts.getWindowSize()),
		opts.DisableZeroCopy)
}

func newEngine(zeroCopy Strategy, buffered *Buffered, disableZeroCopy bool) *Engine {
	engine := &Engine{
		mode:     ModeZeroCopy,
		zeroCopy: zeroCopy,
		buffered: buffered,
	}

	if disableZeroCopy {
		engine.downgrade(nil)
	}

	return engine
}
