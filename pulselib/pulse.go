package pulselib

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pipepulse/pipepulse/pulselib/internal/descriptor"
	"github.com/pipepulse/pipepulse/pulselib/internal/poller"
	"github.com/pipepulse/pipepulse/pulselib/internal/ticker"
	"github.com/pipepulse/pipepulse/pulselib/internal/transfer"
	"golang.org/x/time/rate"
)

type readinessWaiter interface {
	Wait(poller.Interest) (poller.Readiness, error)
}

type transferEngine interface {
	Step() transfer.Result
	Pending() bool
	Mode() transfer.Mode
	DowngradeReason() error
}

type intervalTimer interface {
	Expirations() (uint64, error)
	Close() error
}

// Pulse moves bytes from input to output and reports throughput.
//
// All state is owned by a goroutine which executes Run. The only other
// goroutine is a context watcher which wakes the loop on cancellation.
type Pulse struct {
	streamID string
	logger   Logger
	events   EventStream
	reporter *Reporter

	engine transferEngine
	waiter readinessWaiter
	timer  intervalTimer
	waker  *poller.Waker
	states []descriptor.State

	timerWarnings rate.Sometimes
	closed        bool
}

// StreamID returns an identifier of this run which is attached to events.
func (p *Pulse) StreamID() string {
	return p.streamID
}

// TotalBytes returns a number of bytes accepted by output so far. It
// should be called from the goroutine which executes Run or after Run is
// finished.
func (p *Pulse) TotalBytes() uint64 {
	return p.reporter.Accounting().Total()
}

// Run executes transfer loop until input is exhausted, output is closed,
// a fatal error happens or ctx is cancelled. Cancellation is a clean
// shutdown: a final report is emitted and nil is returned.
func (p *Pulse) Run(ctx context.Context) error {
	if p.closed {
		return ErrClosed
	}

	startTime := time.Now()
	strategy := p.engine.Mode().String()

	p.events.Send(ctx, NewEventStart(p.streamID, strategy))
	p.logger.BindStr("strategy", strategy).Info("Pulse has been started")

	stopWatcher := p.watch(ctx)
	err := p.loop(ctx)

	stopWatcher()

	// Контекст уже может быть отменён, а финальные события терять нельзя.
	ctx = context.WithoutCancel(ctx)

	p.report(ctx, p.reporter.Flush)

	total := p.reporter.Accounting().Total()
	elapsed := time.Since(startTime)

	p.events.Send(ctx, NewEventFinish(p.streamID, total, elapsed))

	if err != nil {
		p.logger.Printf("Pulse has been finished (written %d bytes): %v", total, err)

		return err
	}

	p.logger.Printf("Pulse has been finished. Written %d bytes in %v (%.0f bytes/sec, peak %.0f bytes/sec)",
		total,
		elapsed.Round(time.Millisecond),
		p.reporter.Accounting().Throughput(time.Now()),
		p.reporter.Accounting().PeakThroughput())

	return nil
}

func (p *Pulse) watch(ctx context.Context) func() {
	if p.waker == nil {
		return func() {}
	}

	return watchContext(ctx, p.waker.Wake)
}

// watchContext вызывает wake при отмене ctx. Возвращаемая функция
// дожидается выхода горутины: после неё wake уже не будет вызван, и waker
// можно закрывать.
func watchContext(ctx context.Context, wake func()) func() {
	done := make(chan struct{})
	wg := &sync.WaitGroup{}

	wg.Add(1)

	go func() {
		defer wg.Done()

		select {
		case <-ctx.Done():
			wake()
		case <-done:
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}

func (p *Pulse) loop(ctx context.Context) error {
	// Сторона, о готовности которой уже известно, не ставится в poll
	// повторно: иначе при готовом выходе и пустом входе poll возвращался
	// бы сразу и цикл крутился бы вхолостую.
	var inputReady, outputReady bool

	for {
		ready, err := p.waiter.Wait(poller.Interest{
			Input:  !inputReady,
			Output: !outputReady,
		})
		if err != nil {
			return fmt.Errorf("cannot wait for descriptors: %w", err)
		}

		if ready.Has(poller.Woken) {
			p.logger.Info("Shutdown has been requested")

			return nil
		}

		inputReady = inputReady || ready.Has(poller.InputReady)
		outputReady = outputReady || ready.Has(poller.OutputReady)

		if outputReady && (inputReady || p.engine.Pending()) {
			inputReady, outputReady = false, false

			moved, finished, err := p.pump(ctx)

			if moved > 0 && p.timer == nil {
				p.fire(ctx, 1)
			}

			if finished || err != nil {
				return err
			}
		}

		if ready.Has(poller.TimerReady) {
			p.tick(ctx)
		}
	}
}

// pump drives engine until it blocks, finishes or exceeds drainBudget.
func (p *Pulse) pump(ctx context.Context) (int, bool, error) {
	moved := 0

	for range drainBudget {
		mode := p.engine.Mode()
		res := p.engine.Step()

		if p.engine.Mode() != mode {
			p.downgraded(ctx)
		}

		if res.N > 0 {
			moved += res.N
			p.reporter.Add(uint64(res.N))
			p.events.Send(ctx, NewEventTraffic(p.streamID, uint(res.N), p.engine.Mode().String()))
		}

		switch res.Kind {
		case transfer.Moved:
		case transfer.WouldBlock:
			return moved, false, nil
		case transfer.InputClosed:
			p.logger.Info("Input has been closed")

			return moved, true, nil
		case transfer.OutputClosed:
			p.logger.InfoError("Output has been closed", res.Err)

			return moved, true, nil
		case transfer.Fatal:
			return moved, true, res.Err
		default:
			return moved, true, fmt.Errorf("unexpected transfer result %v: %w", res.Kind, res.Err)
		}
	}

	return moved, false, nil
}

func (p *Pulse) downgraded(ctx context.Context) {
	reason := "disabled"
	if err := p.engine.DowngradeReason(); err != nil {
		reason = err.Error()
	}

	p.logger.BindStr("reason", reason).Info("Zero-copy is not supported, switch to buffered transfer")
	p.events.Send(ctx, NewEventDowngrade(p.streamID, reason))
}

func (p *Pulse) tick(ctx context.Context) {
	expirations, err := p.timer.Expirations()
	if err != nil {
		p.timerWarnings.Do(func() {
			p.logger.WarningError("cannot read report timer", err)
		})
		p.events.Send(ctx, NewEventTimerWarning(p.streamID))

		return
	}

	p.fire(ctx, expirations)
}

func (p *Pulse) fire(ctx context.Context, expirations uint64) {
	p.report(ctx, func() (ReportEvent, bool, error) {
		return p.reporter.Fire(expirations)
	})
}

func (p *Pulse) report(ctx context.Context, emit func() (ReportEvent, bool, error)) {
	report, emitted, err := emit()
	if !emitted {
		return
	}

	p.events.Send(ctx, NewEventReport(p.streamID, report, err != nil))

	logger := p.logger.
		BindInt("period", int(report.PeriodBytes)).
		BindInt("total", int(report.TotalBytes))

	if err != nil {
		logger.WarningError("Report has failed", err)

		return
	}

	logger.Debug(fmt.Sprintf("Report has been written (%.0f bytes/sec)", p.reporter.LastThroughput()))
}

// Close restores descriptor flags and releases the timer and the waker.
// Descriptors themselves are not closed.
func (p *Pulse) Close() error {
	if p.closed {
		return nil
	}

	p.closed = true

	var firstErr error

	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, state := range p.states {
		keep(state.Restore())
	}

	if p.timer != nil {
		keep(p.timer.Close())
	}

	if p.waker != nil {
		keep(p.waker.Close())
	}

	return firstErr
}

// NewPulse prepares descriptors and creates a new Pulse. Descriptors are
// switched into non-blocking mode until Close.
func NewPulse(opts PulseOpts) (*Pulse, error) {
	if err := opts.valid(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	pulse := newPulse(opts)
	logger := pulse.logger

	for _, fd := range []int{opts.Input, opts.Output} {
		state, err := descriptor.SetNonblock(fd)
		if err != nil {
			pulse.Close() //nolint: errcheck

			return nil, fmt.Errorf("cannot prepare descriptor: %w", err)
		}

		pulse.states = append(pulse.states, state)

		if size := descriptor.GrowPipe(fd, opts.getChunkSize()); size > 0 {
			logger.BindInt("fd", fd).BindInt("size", size).Debug("Pipe capacity")
		}
	}

	timerFD := -1

	if opts.ReportInterval > 0 {
		tick, err := ticker.New(opts.ReportInterval)
		if err != nil {
			pulse.Close() //nolint: errcheck

			return nil, fmt.Errorf("cannot create report timer: %w", err)
		}

		pulse.timer = tick
		timerFD = tick.FD()

		logger.BindStr("interval", tick.Interval().String()).Debug("Report timer has been armed")
	}

	waker, err := poller.NewWaker()
	if err != nil {
		pulse.Close() //nolint: errcheck

		return nil, fmt.Errorf("cannot create waker: %w", err)
	}

	pulse.waker = waker
	pulse.waiter = poller.New(opts.Input, opts.Output, timerFD, waker.FD())
	pulse.engine = transfer.NewEngine(opts.Input, opts.Output, transfer.Options{
		ChunkSize:       opts.getChunkSize(),
		WindowSize:      opts.getWindowSize(),
		DisableZeroCopy: opts.DisableZeroCopy,
	})

	return pulse, nil
}

func newPulse(opts PulseOpts) *Pulse {
	streamID := opts.getStreamID()

	return &Pulse{
		streamID: streamID,
		logger:   opts.getLogger("pulse").BindStr("stream-id", streamID),
		events:   opts.getEventStream(),
		reporter: NewReporter(opts.Sink, opts.ReportThreshold),
		timerWarnings: rate.Sometimes{
			First:    3, //nolint: gomnd
			Interval: time.Minute,
		},
	}
}
