package pulselib

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PulseOpts is a structure with settings to Pulse.
type PulseOpts struct {
	// Input is a descriptor to read bytes from. Usually it is 0 (stdin).
	//
	// This is a mandatory setting.
	Input int

	// Output is a descriptor to write bytes to. Usually it is 1 (stdout).
	//
	// This is a mandatory setting.
	Output int

	// Sink receives periodic reports.
	//
	// This is a mandatory setting.
	Sink ReportSink

	// Logger defines an instance of the logger.
	//
	// This is a mandatory setting.
	Logger Logger

	// EventStream defines an instance of event stream.
	//
	// This is an optional setting, events are dropped by default.
	EventStream EventStream

	// ReportInterval is a period of the report timer. 0 means that there is
	// no timer at all: a report is considered after every wake which has
	// moved some bytes, so only threshold drives reporting.
	//
	// This is an optional setting.
	ReportInterval time.Duration

	// ReportThreshold is a minimal number of bytes moved during a period to
	// emit a report. 0 means that every timer firing emits a report.
	//
	// This is an optional setting.
	ReportThreshold uint64

	// ChunkSize is a maximal number of bytes moved by a single zero-copy
	// call. Pipes are grown to this size if possible.
	//
	// This is an optional setting. Default: 128KB
	ChunkSize uint

	// WindowSize is a capacity of a buffer used if zero-copy is not
	// available.
	//
	// This is an optional setting. Default: 128KB
	WindowSize uint

	// DisableZeroCopy forces buffered strategy from the start.
	//
	// This is an optional setting.
	DisableZeroCopy bool

	// StreamID is attached to every event of this run.
	//
	// This is an optional setting. Default: random UUID
	StreamID string
}

func (p PulseOpts) valid() error {
	switch {
	case p.Sink == nil:
		return ErrNoSink
	case p.Logger == nil:
		return ErrLoggerIsNotDefined
	case p.Input < 0, p.Output < 0, p.Input == p.Output:
		return ErrInvalidDescriptor
	}

	return nil
}

func (p PulseOpts) getChunkSize() int {
	if p.ChunkSize == 0 {
		return DefaultChunkSize
	}

	return int(p.ChunkSize)
}

func (p PulseOpts) getWindowSize() int {
	if p.WindowSize == 0 {
		return DefaultWindowSize
	}

	return int(p.WindowSize)
}

func (p PulseOpts) getEventStream() EventStream {
	if p.EventStream == nil {
		return noopEventStream{}
	}

	return p.EventStream
}

func (p PulseOpts) getStreamID() string {
	if p.StreamID == "" {
		return uuid.NewString()
	}

	return p.StreamID
}

func (p PulseOpts) getLogger(name string) Logger {
	return p.Logger.Named(name)
}

type noopEventStream struct{}

func (noopEventStream) Send(_ context.Context, _ Event) {}
