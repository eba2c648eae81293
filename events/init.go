// Package events has a default implementation of [pulselib.EventStream]
// and observer contracts which consume pulse events.
//
// Events are routed to observers through buffered channels. Traffic
// events are dropped if an observer is too slow: a transfer loop must
// never wait for metrics.
package events

import "github.com/pipepulse/pipepulse/pulselib"

// Observer is an instance which listens to events in a single goroutine.
type Observer interface {
	EventStart(pulselib.EventStart)
	EventTraffic(pulselib.EventTraffic)
	EventDowngrade(pulselib.EventDowngrade)
	EventReport(pulselib.EventReport)
	EventTimerWarning(pulselib.EventTimerWarning)
	EventFinish(pulselib.EventFinish)

	Shutdown()
}

// ObserverFactory creates a new observer for each processing goroutine.
type ObserverFactory func() Observer
