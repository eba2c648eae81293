package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pipepulse/pipepulse/internal/config"
	"github.com/pipepulse/pipepulse/internal/utils"
	"github.com/pipepulse/pipepulse/sink"
)

// healthCheckTimeout: максимальное время ожидания ответа от metrics endpoint.
const healthCheckTimeout = 5 * time.Second

// Отчёт считается просроченным, если не обновлялся дольше двух интервалов.
const healthStaleFactor = 2

var errNothingToCheck = errors.New("prometheus is not enabled and reports are not written to a file")

// Health проверяет, что pipepulse жив.
//
// Алгоритм:
// 1. Если включён Prometheus: HTTP GET metrics endpoint, ожидает 200 OK
// 2. Иначе, если отчёт пишется в файл: mtime не старше двух интервалов
type Health struct {
	ConfigPath string `kong:"arg,required,type='existingfile',help='Path to config file.',name='config-path'"` //nolint: lll
}

func (h *Health) Run(cli *CLI, version string) error {
	conf, err := utils.ReadConfig(h.ConfigPath)
	if err != nil {
		return fmt.Errorf("cannot parse config: %w", err)
	}

	return checkHealth(conf, time.Now())
}

func checkHealth(conf *config.Config, now time.Time) error {
	if conf.Stats.Prometheus.Enabled.Get(false) {
		return checkHTTP(conf.GetMetricsURL())
	}

	switch conf.Report.Sink.Get(sink.ModeTouch) {
	case sink.ModeTouch, sink.ModeFile:
		return checkFreshness(conf.Report.Path.Get(""), conf.GetReportInterval(), now)
	}

	return errNothingToCheck
}

// checkHTTP проверяет HTTP endpoint: ожидает 200 OK.
func checkHTTP(url string) error {
	client := &http.Client{
		Timeout: healthCheckTimeout,
	}

	resp, err := client.Get(url) //nolint: noctx
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	// Drain body для корректного закрытия соединения
	io.Copy(io.Discard, resp.Body) //nolint: errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: status %d", resp.StatusCode)
	}

	return nil
}

// checkFreshness проверяет время модификации файла отчёта. Если интервал
// 0, отчёт пишется только по порогу, и возраст файла ничего не значит.
func checkFreshness(path string, interval time.Duration, now time.Time) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	if interval == 0 {
		return nil
	}

	if age := now.Sub(stat.ModTime()); age > healthStaleFactor*interval {
		return fmt.Errorf("health check failed: report is %v old", age.Round(time.Second))
	}

	return nil
}
