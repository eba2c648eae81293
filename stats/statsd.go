package stats

import (
	"fmt"
	"strings"

	"github.com/pipepulse/pipepulse/events"
	"github.com/pipepulse/pipepulse/pulselib"
	statsd "github.com/smira/go-statsd"
)

type statsdProcessor struct {
	streams map[string]*streamInfo
	client  *statsd.Client
}

func (s statsdProcessor) EventStart(evt pulselib.EventStart) {
	info := acquireStreamInfo()
	info.startTime = evt.Timestamp()
	info.tags[TagStrategy] = evt.Strategy

	s.streams[evt.StreamID()] = info

	s.client.GaugeDelta(MetricRunning, 1, info.T(TagStrategy))
}

func (s statsdProcessor) EventTraffic(evt pulselib.EventTraffic) {
	s.client.Incr(MetricTraffic,
		int64(evt.Traffic),
		statsd.StringTag(TagStrategy, evt.Strategy))
}

func (s statsdProcessor) EventDowngrade(evt pulselib.EventDowngrade) {
	s.client.Incr(MetricDowngrades, 1)

	info, ok := s.streams[evt.StreamID()]
	if !ok {
		return
	}

	// running учитывается по стратегии: переносим единицу в buffered.
	s.client.GaugeDelta(MetricRunning, -1, info.T(TagStrategy))
	info.tags[TagStrategy] = "buffered"
	s.client.GaugeDelta(MetricRunning, 1, info.T(TagStrategy))
}

func (s statsdProcessor) EventReport(evt pulselib.EventReport) {
	s.client.Incr(MetricReports, 1, statsd.StringTag(TagResult, getResult(evt.Failed)))
	s.client.Gauge(MetricPeriodBytes, int64(evt.PeriodBytes))
	s.client.Gauge(MetricTotalBytes, int64(evt.TotalBytes))
}

func (s statsdProcessor) EventTimerWarning(_ pulselib.EventTimerWarning) {
	s.client.Incr(MetricTimerWarnings, 1)
}

func (s statsdProcessor) EventFinish(evt pulselib.EventFinish) {
	info, ok := s.streams[evt.StreamID()]
	if !ok {
		return
	}

	defer func() {
		delete(s.streams, evt.StreamID())
		releaseStreamInfo(info)
	}()

	s.client.GaugeDelta(MetricRunning, -1, info.T(TagStrategy))
	s.client.Gauge(MetricTotalBytes, int64(evt.TotalBytes))
	s.client.PrecisionTiming(MetricRunDuration, evt.Duration)
}

func (s statsdProcessor) Shutdown() {
	for k, v := range s.streams {
		releaseStreamInfo(v)
		delete(s.streams, k)
	}
}

// StatsdFactory is a factory of [events.Observer] which dumps information
// to statsd.
type StatsdFactory struct {
	client *statsd.Client
}

// Make builds a new observer.
func (s StatsdFactory) Make() events.Observer {
	return statsdProcessor{
		streams: make(map[string]*streamInfo),
		client:  s.client,
	}
}

// Close flushes buffered metrics and stops the client.
func (s StatsdFactory) Close() error {
	return s.client.Close() //nolint: wrapcheck
}

// NewStatsd builds an events.ObserverFactory that sends events to statsd.
//
// Valid tagFormats are 'datadog', 'influxdb' and 'graphite'.
func NewStatsd(address string, logger pulselib.Logger, metricPrefix, tagFormat string) (StatsdFactory, error) {
	if metricPrefix != "" && !strings.HasSuffix(metricPrefix, ".") {
		metricPrefix += "."
	}

	options := []statsd.Option{
		statsd.MetricPrefix(metricPrefix),
		statsd.Logger(logger),
	}

	switch strings.ToLower(tagFormat) {
	case "datadog":
		options = append(options, statsd.TagStyle(statsd.TagFormatDatadog))
	case "influxdb":
		options = append(options, statsd.TagStyle(statsd.TagFormatInfluxDB))
	case "graphite":
		options = append(options, statsd.TagStyle(statsd.TagFormatGraphite))
	default:
		return StatsdFactory{}, fmt.Errorf("unknown tag format %s", tagFormat)
	}

	return StatsdFactory{
		client: statsd.NewClient(address, options...),
	}, nil
}
