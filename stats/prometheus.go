package stats

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/pipepulse/pipepulse/events"
	"github.com/pipepulse/pipepulse/pulselib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type prometheusProcessor struct {
	streams map[string]*streamInfo
	factory *PrometheusFactory
}

func (p prometheusProcessor) EventStart(evt pulselib.EventStart) {
	info := acquireStreamInfo()
	info.startTime = evt.Timestamp()
	info.tags[TagStrategy] = evt.Strategy

	p.streams[evt.StreamID()] = info

	p.factory.metricRunning.Inc()
}

func (p prometheusProcessor) EventTraffic(evt pulselib.EventTraffic) {
	p.factory.metricTraffic.
		WithLabelValues(evt.Strategy).
		Add(float64(evt.Traffic))
}

func (p prometheusProcessor) EventDowngrade(evt pulselib.EventDowngrade) {
	if info, ok := p.streams[evt.StreamID()]; ok {
		info.tags[TagStrategy] = "buffered"
	}

	p.factory.metricDowngrades.Inc()
}

func (p prometheusProcessor) EventReport(evt pulselib.EventReport) {
	p.factory.metricReports.
		WithLabelValues(getResult(evt.Failed)).
		Inc()
	p.factory.metricPeriodBytes.Set(float64(evt.PeriodBytes))
	p.factory.metricTotalBytes.Set(float64(evt.TotalBytes))
}

func (p prometheusProcessor) EventTimerWarning(_ pulselib.EventTimerWarning) {
	p.factory.metricTimerWarnings.Inc()
}

func (p prometheusProcessor) EventFinish(evt pulselib.EventFinish) {
	info, ok := p.streams[evt.StreamID()]
	if !ok {
		return
	}

	defer func() {
		delete(p.streams, evt.StreamID())
		releaseStreamInfo(info)
	}()

	p.factory.metricRunning.Dec()
	p.factory.metricTotalBytes.Set(float64(evt.TotalBytes))
	p.factory.metricRunDuration.Observe(evt.Duration.Seconds())
}

func (p prometheusProcessor) Shutdown() {
	for k, v := range p.streams {
		releaseStreamInfo(v)
		delete(p.streams, k)
	}
}

// PrometheusFactory is a factory of [events.Observer] which collect
// information in a format suitable for Prometheus.
//
// This factory can also serve on a given listener. In that case it starts HTTP
// server with a single endpoint - a Prometheus-compatible scrape output.
type PrometheusFactory struct {
	httpServer *http.Server

	metricRunning     prometheus.Gauge
	metricPeriodBytes prometheus.Gauge
	metricTotalBytes  prometheus.Gauge

	metricTraffic *prometheus.CounterVec
	metricReports *prometheus.CounterVec

	metricDowngrades    prometheus.Counter
	metricTimerWarnings prometheus.Counter

	metricRunDuration prometheus.Histogram

	metricBuildInfo *prometheus.GaugeVec
}

// Make builds a new observer.
func (p *PrometheusFactory) Make() events.Observer {
	return prometheusProcessor{
		streams: make(map[string]*streamInfo),
		factory: p,
	}
}

// Serve starts an HTTP server on a given listener.
func (p *PrometheusFactory) Serve(listener net.Listener) error {
	return p.httpServer.Serve(listener) //nolint: wrapcheck
}

// Close stops a factory. Please pay attention that underlying listener
// is not closed.
func (p *PrometheusFactory) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second) //nolint: gomnd
	defer cancel()

	return p.httpServer.Shutdown(ctx) //nolint: wrapcheck
}

// NewPrometheus builds an events.ObserverFactory which can serve HTTP
// endpoint with Prometheus scrape data.
func NewPrometheus(metricPrefix, httpPath, version string) *PrometheusFactory { //nolint: funlen
	registry := prometheus.NewPedanticRegistry()
	httpHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	mux := http.NewServeMux()

	mux.Handle(httpPath, httpHandler)

	factory := &PrometheusFactory{
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second, //nolint: gomnd
		},

		metricRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricPrefix,
			Name:      MetricRunning,
			Help:      "A number of running transfer loops.",
		}),
		metricPeriodBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricPrefix,
			Name:      MetricPeriodBytes,
			Help:      "Bytes moved during the last reported period.",
		}),
		metricTotalBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricPrefix,
			Name:      MetricTotalBytes,
			Help:      "Bytes moved since start, as of the last report.",
		}),

		metricTraffic: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricTraffic,
			Help:      "Bytes accepted by output, by transfer strategy.",
		}, []string{TagStrategy}),
		metricReports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricReports,
			Help:      "A number of reports handed to a sink.",
		}, []string{TagResult}),

		metricDowngrades: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricDowngrades,
			Help:      "A number of downgrades from zero-copy to buffered transfer.",
		}),
		metricTimerWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricPrefix,
			Name:      MetricTimerWarnings,
			Help:      "A number of failed reads of the report timer.",
		}),

		metricRunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricPrefix,
			Name:      MetricRunDuration + "_seconds",
			Help:      "Duration of transfer loops in seconds.",
			Buckets:   []float64{1, 10, 60, 300, 1800, 3600, 21600, 86400},
		}),

		metricBuildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricPrefix,
			Name:      "build_info",
			Help:      "Build information about pipepulse.",
		}, []string{"version"}),
	}

	registry.MustRegister(factory.metricRunning)
	registry.MustRegister(factory.metricPeriodBytes)
	registry.MustRegister(factory.metricTotalBytes)

	registry.MustRegister(factory.metricTraffic)
	registry.MustRegister(factory.metricReports)

	registry.MustRegister(factory.metricDowngrades)
	registry.MustRegister(factory.metricTimerWarnings)

	registry.MustRegister(factory.metricRunDuration)

	registry.MustRegister(factory.metricBuildInfo)
	factory.metricBuildInfo.WithLabelValues(version).Set(1)

	return factory
}
