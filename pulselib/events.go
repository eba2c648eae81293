package pulselib

import "time"

type eventBase struct {
	streamID  string
	timestamp time.Time
}

// StreamID returns a ID of the stream this event belongs to.
func (e eventBase) StreamID() string {
	return e.streamID
}

// Timestamp return a time when this event was generated.
func (e eventBase) Timestamp() time.Time {
	return e.timestamp
}

// EventStart is emitted when pulse starts to move bytes.
type EventStart struct {
	eventBase

	// Strategy is a name of a transfer strategy selected at start.
	Strategy string
}

// EventTraffic is emitted when some bytes were accepted by the output.
type EventTraffic struct {
	eventBase

	// Traffic is a count of bytes which were transmitted.
	Traffic uint

	// Strategy is a name of a strategy which moved these bytes.
	Strategy string
}

// EventDowngrade is emitted once when zero-copy transfer turned out to be
// unsupported for a descriptor pair.
type EventDowngrade struct {
	eventBase

	Reason string
}

// EventReport is emitted when a report was handed to a sink.
type EventReport struct {
	eventBase

	PeriodBytes uint64
	TotalBytes  uint64
	Failed      bool
}

// EventTimerWarning is emitted if timer bookkeeping has failed.
type EventTimerWarning struct {
	eventBase
}

// EventFinish is emitted when pulse has stopped.
type EventFinish struct {
	eventBase

	TotalBytes uint64
	Duration   time.Duration
}

func newEventBase(streamID string) eventBase {
	return eventBase{
		streamID:  streamID,
		timestamp: time.Now(),
	}
}

// NewEventStart creates a new EventStart event.
func NewEventStart(streamID, strategy string) EventStart {
	return EventStart{
		eventBase: newEventBase(streamID),
		Strategy:  strategy,
	}
}

// NewEventTraffic creates a new EventTraffic event.
func NewEventTraffic(streamID string, traffic uint, strategy string) EventTraffic {
	return EventTraffic{
		eventBase: newEventBase(streamID),
		Traffic:   traffic,
		Strategy:  strategy,
	}
}

// NewEventDowngrade creates a new EventDowngrade event.
func NewEventDowngrade(streamID, reason string) EventDowngrade {
	return EventDowngrade{
		eventBase: newEventBase(streamID),
		Reason:    reason,
	}
}

// NewEventReport creates a new EventReport event.
func NewEventReport(streamID string, report ReportEvent, failed bool) EventReport {
	return EventReport{
		eventBase:   newEventBase(streamID),
		PeriodBytes: report.PeriodBytes,
		TotalBytes:  report.TotalBytes,
		Failed:      failed,
	}
}

// NewEventTimerWarning creates a new EventTimerWarning event.
func NewEventTimerWarning(streamID string) EventTimerWarning {
	return EventTimerWarning{
		eventBase: newEventBase(streamID),
	}
}

// NewEventFinish creates a new EventFinish event.
func NewEventFinish(streamID string, totalBytes uint64, duration time.Duration) EventFinish {
	return EventFinish{
		eventBase:  newEventBase(streamID),
		TotalBytes: totalBytes,
		Duration:   duration,
	}
}
