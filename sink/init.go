// Package sink has implementations of [pulselib.ReportSink].
//
// A sink is called synchronously from a transfer loop so every
// implementation here does a single small filesystem operation or write.
package sink

import (
	"errors"
	"fmt"
	"io"

	"github.com/pipepulse/pipepulse/pulselib"
)

const (
	// ModeTouch updates a modification time of a file.
	ModeTouch = "touch"

	// ModeFile overwrites a file with a report line.
	ModeFile = "file"

	// ModeStderr writes a report line to stderr.
	ModeStderr = "stderr"
)

// ErrUnknownMode is returned for unsupported sink modes.
var ErrUnknownMode = errors.New("unknown sink mode")

// ErrPathIsNotDefined is returned if file-based sink has no path.
var ErrPathIsNotDefined = errors.New("path is not defined")

// New creates a sink by its mode. Stream is used only for ModeStderr.
func New(mode, path string, stream io.Writer) (pulselib.ReportSink, error) {
	switch mode {
	case ModeTouch, ModeFile:
		if path == "" {
			return nil, fmt.Errorf("%s sink: %w", mode, ErrPathIsNotDefined)
		}

		if mode == ModeTouch {
			return NewTouch(path), nil
		}

		return NewFile(path), nil
	case ModeStderr:
		return NewStream(stream), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
}

// formatReport renders "<period>\t<total>\n".
func formatReport(evt pulselib.ReportEvent) []byte {
	return fmt.Appendf(nil, "%d\t%d\n", evt.PeriodBytes, evt.TotalBytes)
}
