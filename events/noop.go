package events

import "github.com/pipepulse/pipepulse/pulselib"

type noopObserver struct{}

func (n noopObserver) EventStart(_ pulselib.EventStart)               {}
func (n noopObserver) EventTraffic(_ pulselib.EventTraffic)           {}
func (n noopObserver) EventDowngrade(_ pulselib.EventDowngrade)       {}
func (n noopObserver) EventReport(_ pulselib.EventReport)             {}
func (n noopObserver) EventTimerWarning(_ pulselib.EventTimerWarning) {}
func (n noopObserver) EventFinish(_ pulselib.EventFinish)             {}
func (n noopObserver) Shutdown()                                      {}

// NewNoopObserver creates an observer which ignores all events.
func NewNoopObserver() Observer {
	return noopObserver{}
}
