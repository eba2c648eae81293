package testlib

import (
	"github.com/pipepulse/pipepulse/pulselib"
	"github.com/stretchr/testify/mock"
)

type EventsObserverMock struct {
	mock.Mock
}

func (m *EventsObserverMock) EventStart(evt pulselib.EventStart) {
	m.Called(evt)
}

func (m *EventsObserverMock) EventTraffic(evt pulselib.EventTraffic) {
	m.Called(evt)
}

func (m *EventsObserverMock) EventDowngrade(evt pulselib.EventDowngrade) {
	m.Called(evt)
}

func (m *EventsObserverMock) EventReport(evt pulselib.EventReport) {
	m.Called(evt)
}

func (m *EventsObserverMock) EventTimerWarning(evt pulselib.EventTimerWarning) {
	m.Called(evt)
}

func (m *EventsObserverMock) EventFinish(evt pulselib.EventFinish) {
	m.Called(evt)
}

func (m *EventsObserverMock) Shutdown() {
	m.Called()
}
