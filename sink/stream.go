package sink

import (
	"fmt"
	"io"

	"github.com/pipepulse/pipepulse/pulselib"
)

// Stream writes report lines into a writer, usually stderr.
type Stream struct {
	w io.Writer
}

func (s Stream) Report(evt pulselib.ReportEvent) error {
	if _, err := s.w.Write(formatReport(evt)); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}

	return nil
}

func NewStream(w io.Writer) Stream {
	return Stream{
		w: w,
	}
}
