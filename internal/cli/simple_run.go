package cli

import (
	"fmt"

	"github.com/pipepulse/pipepulse/internal/config"
)

// SimpleRun keeps a classic interface:
//
//	... | pipepulse -f heartbeat.file [--per 64k] [--every 60s] | ...
type SimpleRun struct {
	File  string `kong:"short='f',env='PIPEPULSE_FILE',help='A file to touch or overwrite with reports.'"`
	Per   string `kong:"short='p',env='PIPEPULSE_PER',help='Report only if at least this much was moved (b, k, M, G). 0 reports every period.'"`  //nolint: lll
	Every string `kong:"short='e',env='PIPEPULSE_EVERY',help='Report period (s, m, h, d). 0 reports as soon as threshold is reached.'"` //nolint: lll
	Sink  string `kong:"name='sink',short='s',env='PIPEPULSE_SINK',enum='touch,file,stderr',default='touch',help='Where to report: touch, file or stderr.'"` //nolint: lll

	ChunkSize  string `kong:"env='PIPEPULSE_CHUNK_SIZE',help='Maximal size of a single zero-copy transfer.'"`
	WindowSize string `kong:"env='PIPEPULSE_WINDOW_SIZE',help='Buffer size used when zero-copy is not available.'"`
	NoZeroCopy bool   `kong:"env='PIPEPULSE_NO_ZERO_COPY',help='Always use buffered transfer.'"`

	PrometheusBindTo string `kong:"env='PIPEPULSE_PROMETHEUS_BIND_TO',help='Serve Prometheus metrics on this host:port.'"`
	StatsdAddress    string `kong:"env='PIPEPULSE_STATSD_ADDRESS',help='Send metrics to this StatsD host:port.'"`

	Debug bool `kong:"short='d',env='PIPEPULSE_DEBUG',help='Run in debug mode.'"`
}

func (s *SimpleRun) Run(cli *CLI, version string) error {
	conf, err := s.makeConfig()
	if err != nil {
		return err
	}

	return runPulse(conf, version)
}

func (s *SimpleRun) makeConfig() (*config.Config, error) { //nolint: cyclop
	conf := &config.Config{}

	if err := conf.Report.Sink.Set(s.Sink); err != nil {
		return nil, fmt.Errorf("incorrect sink: %w", err)
	}

	if s.File != "" {
		if err := conf.Report.Path.Set(s.File); err != nil {
			return nil, fmt.Errorf("incorrect file: %w", err)
		}
	}

	if s.Per != "" {
		if err := conf.Report.Threshold.Set(s.Per); err != nil {
			return nil, fmt.Errorf("invalid size specification: %w", err)
		}
	}

	if s.Every != "" {
		if err := conf.Report.Interval.Set(s.Every); err != nil {
			return nil, fmt.Errorf("invalid time specification: %w", err)
		}
	}

	if s.ChunkSize != "" {
		if err := conf.Transfer.ChunkSize.Set(s.ChunkSize); err != nil {
			return nil, fmt.Errorf("incorrect chunk size: %w", err)
		}
	}

	if s.WindowSize != "" {
		if err := conf.Transfer.WindowSize.Set(s.WindowSize); err != nil {
			return nil, fmt.Errorf("incorrect window size: %w", err)
		}
	}

	if s.NoZeroCopy {
		conf.Transfer.ZeroCopy.Set("false") //nolint: errcheck
	}

	if s.Debug {
		conf.Debug.Set("true") //nolint: errcheck
	}

	if s.PrometheusBindTo != "" {
		if err := conf.Stats.Prometheus.BindTo.Set(s.PrometheusBindTo); err != nil {
			return nil, fmt.Errorf("incorrect prometheus bind-to: %w", err)
		}

		conf.Stats.Prometheus.Enabled.Set("true") //nolint: errcheck
	}

	if s.StatsdAddress != "" {
		if err := conf.Stats.StatsD.Address.Set(s.StatsdAddress); err != nil {
			return nil, fmt.Errorf("incorrect statsd address: %w", err)
		}

		conf.Stats.StatsD.Enabled.Set("true") //nolint: errcheck
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return conf, nil
}
