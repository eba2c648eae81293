package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pipepulse/pipepulse/events"
	"github.com/pipepulse/pipepulse/internal/config"
	"github.com/pipepulse/pipepulse/internal/utils"
	"github.com/pipepulse/pipepulse/logger"
	"github.com/pipepulse/pipepulse/pulselib"
	"github.com/pipepulse/pipepulse/sink"
	"github.com/pipepulse/pipepulse/stats"
	"github.com/rs/zerolog"
)

func makeLogger(conf *config.Config) pulselib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	zerolog.TimestampFieldName = "timestamp"

	baseLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if conf.Debug.Get(false) {
		baseLogger = baseLogger.Level(zerolog.DebugLevel)
	} else {
		baseLogger = baseLogger.Level(zerolog.WarnLevel)
	}

	return logger.NewZeroLogger(baseLogger)
}

func makeEventStream(conf *config.Config, version string, log pulselib.Logger) (events.EventStream, func(), error) {
	factories := make([]events.ObserverFactory, 0, 2) //nolint: gomnd
	closers := []func(){}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if conf.Stats.StatsD.Enabled.Get(false) {
		statsdFactory, err := stats.NewStatsd(
			conf.Stats.StatsD.Address.Get(""),
			log.Named("statsd"),
			conf.Stats.StatsD.MetricPrefix.Get(stats.DefaultMetricPrefix),
			conf.Stats.StatsD.TagFormat.Get(stats.DefaultStatsdTagFormat))
		if err != nil {
			return events.EventStream{}, nil, fmt.Errorf("cannot build statsd observer: %w", err)
		}

		factories = append(factories, statsdFactory.Make)
		closers = append(closers, func() { statsdFactory.Close() }) //nolint: errcheck
	}

	if conf.Stats.Prometheus.Enabled.Get(false) {
		prometheus := stats.NewPrometheus(
			conf.Stats.Prometheus.MetricPrefix.Get(stats.DefaultMetricPrefix),
			conf.Stats.Prometheus.HTTPPath.Get(stats.DefaultHTTPPath),
			version)

		listener, err := utils.NewListener(conf.Stats.Prometheus.BindTo.Get(""))
		if err != nil {
			closeAll()

			return events.EventStream{}, nil, fmt.Errorf("cannot start a listener for prometheus: %w", err)
		}

		go prometheus.Serve(listener) //nolint: errcheck

		factories = append(factories, prometheus.Make)
		closers = append(closers, func() {
			prometheus.Close() //nolint: errcheck
			listener.Close()   //nolint: errcheck
		})
	}

	eventStream := events.NewEventStream(factories)
	closers = append(closers, eventStream.Shutdown)

	return eventStream, closeAll, nil
}

func runPulse(conf *config.Config, version string) error {
	log := makeLogger(conf)

	log.BindStr("configuration", conf.String()).Debug("configuration")

	reportSink, err := sink.New(
		conf.Report.Sink.Get(sink.ModeTouch),
		conf.Report.Path.Get(""),
		os.Stderr)
	if err != nil {
		return fmt.Errorf("cannot build report sink: %w", err)
	}

	eventStream, closeEventStream, err := makeEventStream(conf, version, log)
	if err != nil {
		return err
	}

	defer closeEventStream()

	opts := pulselib.PulseOpts{
		Input:           syscall.Stdin,
		Output:          syscall.Stdout,
		Sink:            reportSink,
		Logger:          log,
		EventStream:     eventStream,
		ReportInterval:  conf.GetReportInterval(),
		ReportThreshold: conf.GetReportThreshold(),
		ChunkSize:       conf.Transfer.ChunkSize.Get(pulselib.DefaultChunkSize),
		WindowSize:      conf.Transfer.WindowSize.Get(pulselib.DefaultWindowSize),
		DisableZeroCopy: !conf.Transfer.ZeroCopy.Get(true),
	}

	pulse, err := pulselib.NewPulse(opts)
	if err != nil {
		return fmt.Errorf("cannot create pulse: %w", err)
	}

	defer pulse.Close() //nolint: errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pulse.Run(ctx); err != nil {
		return fmt.Errorf("transfer has failed: %w", err)
	}

	return nil
}
