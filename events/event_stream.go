package events

import (
	"context"
	"math/rand"
	"runtime"
	"sync/atomic"

	"github.com/OneOfOne/xxhash"
	"github.com/pipepulse/pipepulse/pulselib"
)

// Ёмкость канала одного обработчика. Traffic-события приходят на каждый
// splice/write, редкие события доставляются с ожиданием.
const observerChanSize = 64

// EventStream is a default implementation of the [pulselib.EventStream]
// interface.
//
// EventStream manages a set of goroutines, observers. An event is routed
// to an observer by a hash of its stream id so all events of a run are
// processed in order by the same goroutine.
type EventStream struct {
	ctx       context.Context
	ctxCancel context.CancelFunc
	chans     []chan pulselib.Event

	// Указатель: EventStream передаётся по значению, а atomic.Uint64
	// копировать нельзя.
	dropped *atomic.Uint64
}

// Send delivers event to observer. Traffic events are dropped if observer
// is busy, other events wait for a free slot or cancellation.
func (e EventStream) Send(ctx context.Context, evt pulselib.Event) {
	var chanNo uint32

	if streamID := evt.StreamID(); streamID != "" {
		chanNo = xxhash.ChecksumString32(streamID)
	} else {
		chanNo = rand.Uint32() //nolint: gosec
	}

	ch := e.chans[int(chanNo)%len(e.chans)]

	if _, isTraffic := evt.(pulselib.EventTraffic); isTraffic {
		select {
		case <-ctx.Done():
		case <-e.ctx.Done():
		case ch <- evt:
		default:
			e.dropped.Add(1)
		}

		return
	}

	select {
	case <-ctx.Done():
	case <-e.ctx.Done():
	case ch <- evt:
	}
}

// Dropped returns a number of traffic events lost because of slow
// observers.
func (e EventStream) Dropped() uint64 {
	return e.dropped.Load()
}

// Shutdown stops an event stream pipeline.
func (e EventStream) Shutdown() {
	e.ctxCancel()
}

// NewEventStream builds a new default event stream.
//
// If you give an empty array of observers, then NoopObserver is going
// to be used. If you give many observers, then they will process a
// message concurrently.
func NewEventStream(observerFactories []ObserverFactory) EventStream {
	if len(observerFactories) == 0 {
		observerFactories = append(observerFactories, NewNoopObserver)
	}

	ctx, cancel := context.WithCancel(context.Background())
	rv := EventStream{
		ctx:       ctx,
		ctxCancel: cancel,
		chans:     make([]chan pulselib.Event, runtime.NumCPU()),
		dropped:   &atomic.Uint64{},
	}

	for i := range rv.chans {
		rv.chans[i] = make(chan pulselib.Event, observerChanSize)

		if len(observerFactories) == 1 {
			go eventStreamProcessor(ctx, rv.chans[i], observerFactories[0]())
		} else {
			go eventStreamProcessor(ctx, rv.chans[i], newMultiObserver(observerFactories))
		}
	}

	return rv
}

func eventStreamProcessor(ctx context.Context, eventChan <-chan pulselib.Event, observer Observer) {
	defer observer.Shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-eventChan:
			switch typedEvt := evt.(type) {
			case pulselib.EventTraffic:
				observer.EventTraffic(typedEvt)
			case pulselib.EventStart:
				observer.EventStart(typedEvt)
			case pulselib.EventFinish:
				observer.EventFinish(typedEvt)
			case pulselib.EventDowngrade:
				observer.EventDowngrade(typedEvt)
			case pulselib.EventReport:
				observer.EventReport(typedEvt)
			case pulselib.EventTimerWarning:
				observer.EventTimerWarning(typedEvt)
			}
		}
	}
}
