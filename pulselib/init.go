// Package pulselib is a core of pipepulse: an event-driven loop which moves
// bytes from input to output and periodically reports throughput.
//
// The loop is single-threaded. It waits on a readiness multiplexer which
// watches input, output, an interval timer and a shutdown waker. Bytes are
// moved with splice(2) when the descriptor pair supports it; otherwise the
// loop permanently downgrades to a buffered strategy.
package pulselib

import (
	"context"
	"errors"
	"time"

	"github.com/pipepulse/pipepulse/pulselib/internal/transfer"
)

const (
	// DefaultReportInterval is a report interval for file sinks.
	DefaultReportInterval = time.Minute

	// DefaultStreamReportInterval is a report interval for stderr sink.
	DefaultStreamReportInterval = 10 * time.Second

	// DefaultReportThreshold is a minimal number of bytes which should be
	// moved during a period to emit a report.
	DefaultReportThreshold = 128 * 1024

	// DefaultChunkSize is a maximal size of a single zero-copy transfer.
	DefaultChunkSize = transfer.DefaultChunkSize

	// DefaultWindowSize is a capacity of the buffered strategy window.
	DefaultWindowSize = transfer.DefaultWindowSize

	// Сколько попыток передачи делаем за одно пробуждение. Без лимита
	// вечно готовый источник (например, /dev/zero) не дал бы обслужить
	// таймер.
	drainBudget = 64
)

var (
	// ErrClosed is returned if Pulse is used after Close.
	ErrClosed = errors.New("pulse is closed")

	// ErrNoSink is returned if PulseOpts have no report sink.
	ErrNoSink = errors.New("report sink is not defined")

	// ErrLoggerIsNotDefined is returned if PulseOpts have no logger.
	ErrLoggerIsNotDefined = errors.New("logger is not defined")

	// ErrInvalidDescriptor is returned if input or output descriptor is
	// negative or both point to the same descriptor.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
)

// ReportEvent is a unit handed to a report sink.
type ReportEvent struct {
	PeriodBytes uint64
	TotalBytes  uint64
}

// ReportSink durably records a report. It is called synchronously from the
// transfer loop so it should be fast.
type ReportSink interface {
	Report(ReportEvent) error
}

// Event is a data structure which is populated during pulse lifecycle.
type Event interface {
	// StreamID returns an identifier of the run.
	StreamID() string

	// Timestamp returns a timestamp when this event was generated.
	Timestamp() time.Time
}

// EventStream is an abstraction which accepts a set of events produced by
// pulse and routes them to observers. Send must not block on traffic
// events: it is called from the transfer loop.
type EventStream interface {
	Send(context.Context, Event)
}

// Logger defines an interface of the logger used by pipepulse.
type Logger interface {
	Named(name string) Logger

	BindInt(name string, value int) Logger
	BindStr(name, value string) Logger

	Printf(format string, args ...interface{})
	Info(msg string)
	InfoError(msg string, err error)
	Warning(msg string)
	WarningError(msg string, err error)
	Debug(msg string)
	DebugError(msg string, err error)
}
