package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/pipepulse/pipepulse/pulselib"
	"github.com/pipepulse/pipepulse/sink"
	"github.com/pipepulse/pipepulse/stats"
)

type Optional struct {
	Enabled TypeBool `json:"enabled"`
}

type Config struct {
	Debug  TypeBool `json:"debug"`
	Report struct {
		Sink      TypeSinkMode   `json:"sink"`
		Path      TypeReportPath `json:"path"`
		Interval  TypeDuration   `json:"interval"`
		Threshold TypeBytes      `json:"threshold"`
	} `json:"report"`
	Transfer struct {
		ChunkSize  TypeBytes `json:"chunkSize"`
		WindowSize TypeBytes `json:"windowSize"`
		// ZeroCopy = false сразу включает буферную стратегию.
		ZeroCopy TypeBool `json:"zeroCopy"`
	} `json:"transfer"`
	Stats struct {
		StatsD struct {
			Optional

			Address      TypeHostPort        `json:"address"`
			MetricPrefix TypeMetricPrefix    `json:"metricPrefix"`
			TagFormat    TypeStatsdTagFormat `json:"tagFormat"`
		} `json:"statsd"`
		Prometheus struct {
			Optional

			BindTo       TypeHostPort     `json:"bindTo"`
			HTTPPath     TypeHTTPPath     `json:"httpPath"`
			MetricPrefix TypeMetricPrefix `json:"metricPrefix"`
		} `json:"prometheus"`
	} `json:"stats"`
}

// GetReportInterval returns an interval of the report timer. stderr sink
// is meant for humans so it reports more often by default.
func (c *Config) GetReportInterval() time.Duration {
	if c.Report.Sink.IsStream() {
		return c.Report.Interval.Get(pulselib.DefaultStreamReportInterval)
	}

	return c.Report.Interval.Get(pulselib.DefaultReportInterval)
}

func (c *Config) GetReportThreshold() uint64 {
	return uint64(c.Report.Threshold.Get(pulselib.DefaultReportThreshold))
}

// GetMetricsURL returns a local URL of the Prometheus endpoint. Metrics
// are always requested through a loopback address, whatever host is in
// bindTo.
func (c *Config) GetMetricsURL() string {
	_, port, _ := net.SplitHostPort(c.Stats.Prometheus.BindTo.Get(""))

	return "http://" + net.JoinHostPort("127.0.0.1", port) +
		c.Stats.Prometheus.HTTPPath.Get(stats.DefaultHTTPPath)
}

func (c *Config) Validate() error {
	switch c.Report.Sink.Get(sink.ModeTouch) {
	case sink.ModeTouch, sink.ModeFile:
		if c.Report.Path.Get("") == "" {
			return fmt.Errorf("report.path is required for %s sink", c.Report.Sink.String())
		}
	}

	if c.Transfer.ChunkSize.Get(pulselib.DefaultChunkSize) == 0 {
		return fmt.Errorf("transfer.chunkSize must be > 0")
	}

	if c.Transfer.WindowSize.Get(pulselib.DefaultWindowSize) == 0 {
		return fmt.Errorf("transfer.windowSize must be > 0")
	}

	// Prometheus: bindTo обязателен если включён
	if c.Stats.Prometheus.Enabled.Get(false) {
		if c.Stats.Prometheus.BindTo.Get("") == "" {
			return fmt.Errorf("prometheus.bindTo is required when prometheus is enabled")
		}
	}

	// StatsD: address обязателен если включён
	if c.Stats.StatsD.Enabled.Get(false) {
		if c.Stats.StatsD.Address.Get("") == "" {
			return fmt.Errorf("statsd.address is required when statsd is enabled")
		}
	}

	return nil
}

func (c *Config) String() string {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)

	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(c); err != nil {
		return "{}"
	}

	return buf.String()
}
