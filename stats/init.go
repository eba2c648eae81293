// Package stats contains implementations of [events.ObserverFactory]
// which export pulse metrics to Prometheus and StatsD.
package stats

const (
	// DefaultMetricPrefix is a default prefix for all metric names.
	DefaultMetricPrefix = "pipepulse"

	// DefaultStatsdTagFormat is a default tag format of StatsD.
	DefaultStatsdTagFormat = "influxdb"

	// DefaultHTTPPath is a default path of Prometheus scrape endpoint.
	DefaultHTTPPath = "/metrics"

	MetricRunning       = "running"
	MetricTraffic       = "traffic"
	MetricDowngrades    = "downgrades"
	MetricReports       = "reports"
	MetricPeriodBytes   = "period_bytes"
	MetricTotalBytes    = "total_bytes"
	MetricTimerWarnings = "timer_warnings"
	MetricRunDuration   = "run_duration"

	TagStrategy     = "strategy"
	TagResult       = "result"
	TagResultOK     = "ok"
	TagResultFailed = "failed"
)

func getResult(failed bool) string {
	if failed {
		return TagResultFailed
	}

	return TagResultOK
}
