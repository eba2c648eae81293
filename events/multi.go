package events

import (
	"sync"

	"github.com/pipepulse/pipepulse/pulselib"
)

// multiObserver раздаёт событие всем наблюдателям параллельно и ждёт,
// пока каждый его обработает.
type multiObserver struct {
	observers []Observer
}

func (m multiObserver) EventStart(evt pulselib.EventStart) {
	m.each(func(o Observer) { o.EventStart(evt) })
}

func (m multiObserver) EventTraffic(evt pulselib.EventTraffic) {
	m.each(func(o Observer) { o.EventTraffic(evt) })
}

func (m multiObserver) EventDowngrade(evt pulselib.EventDowngrade) {
	m.each(func(o Observer) { o.EventDowngrade(evt) })
}

func (m multiObserver) EventReport(evt pulselib.EventReport) {
	m.each(func(o Observer) { o.EventReport(evt) })
}

func (m multiObserver) EventTimerWarning(evt pulselib.EventTimerWarning) {
	m.each(func(o Observer) { o.EventTimerWarning(evt) })
}

func (m multiObserver) EventFinish(evt pulselib.EventFinish) {
	m.each(func(o Observer) { o.EventFinish(evt) })
}

func (m multiObserver) Shutdown() {
	m.each(func(o Observer) { o.Shutdown() })
}

func (m multiObserver) each(callback func(Observer)) {
	wg := &sync.WaitGroup{}

	wg.Add(len(m.observers))

	for _, observer := range m.observers {
		go func(obs Observer) {
			defer wg.Done()

			callback(obs)
		}(observer)
	}

	wg.Wait()
}

func newMultiObserver(factories []ObserverFactory) Observer {
	observers := make([]Observer, len(factories))

	for i, makeObserver := range factories {
		observers[i] = makeObserver()
	}

	return multiObserver{
		observers: observers,
	}
}
