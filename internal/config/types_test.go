package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/units"
	"github.com/pipepulse/pipepulse/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeBytes(t *testing.T) {
	t.Parallel()

	testData := map[string]units.Base2Bytes{
		"0":      0,
		"0b":     0,
		"100":    100,
		"100b":   100,
		"64k":    64 * units.KiB,
		"64K":    64 * units.KiB,
		"2M":     2 * units.MiB,
		"1G":     units.GiB,
		"128KiB": 128 * units.KiB,
		"1MB":    units.MiB,
	}

	for input, expected := range testData {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			value := config.TypeBytes{}

			require.NoError(t, value.Set(input))
			assert.Equal(t, expected, value.Value)
			assert.EqualValues(t, expected, value.Get(42))
		})
	}

	for _, input := range []string{"", "k", "-1k", "12x", "1.5.5M", "281474976710655G", "8589934592G"} { //nolint: lll
		t.Run("invalid "+input, func(t *testing.T) {
			t.Parallel()

			value := config.TypeBytes{}

			assert.Error(t, value.Set(input))
		})
	}
}

func TestTypeBytesLargestValue(t *testing.T) {
	t.Parallel()

	value := config.TypeBytes{}

	require.NoError(t, value.Set("8589934591G"))
	assert.Equal(t, 8589934591*units.GiB, value.Value)
	assert.Positive(t, int64(value.Value))
}

func TestTypeBytesDefault(t *testing.T) {
	t.Parallel()

	value := config.TypeBytes{}

	assert.EqualValues(t, 42, value.Get(42))
	require.NoError(t, value.Set("0"))
	assert.EqualValues(t, 0, value.Get(42))
}

func TestTypeDuration(t *testing.T) {
	t.Parallel()

	testData := map[string]time.Duration{
		"0":     0,
		"0s":    0,
		"15":    15 * time.Second,
		"60s":   time.Minute,
		"5m":    5 * time.Minute,
		"2h":    2 * time.Hour,
		"1d":    24 * time.Hour,
		"1m30s": 90 * time.Second,
		"500ms": 500 * time.Millisecond,
	}

	for input, expected := range testData {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			value := config.TypeDuration{}

			require.NoError(t, value.Set(input))
			assert.Equal(t, expected, value.Get(time.Hour))
		})
	}

	for _, input := range []string{"", "s", "-1s", "1w", "1.5d"} {
		t.Run("invalid "+input, func(t *testing.T) {
			t.Parallel()

			value := config.TypeDuration{}

			assert.Error(t, value.Set(input))
		})
	}
}

func TestTypeSinkMode(t *testing.T) {
	t.Parallel()

	value := config.TypeSinkMode{}

	assert.Equal(t, "touch", value.String())
	require.NoError(t, value.Set("STDERR"))
	assert.True(t, value.IsStream())
	require.NoError(t, value.Set("file"))
	assert.Equal(t, "file", value.Get("touch"))
	assert.Error(t, value.Set("syslog"))
}

func TestTypeReportPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	value := config.TypeReportPath{}

	require.NoError(t, value.Set(filepath.Join(dir, "heartbeat")))
	assert.Equal(t, filepath.Join(dir, "heartbeat"), value.Get(""))

	assert.Error(t, value.Set(dir))
	assert.Error(t, value.Set(filepath.Join(dir, "absent", "heartbeat")))
	assert.Error(t, value.Set(""))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	assert.Error(t, value.Set(filepath.Join(file, "heartbeat")))
}

func TestTypeHostPort(t *testing.T) {
	t.Parallel()

	value := config.TypeHostPort{}

	require.NoError(t, value.Set("127.0.0.1:3129"))
	assert.Equal(t, "127.0.0.1", value.Host)
	assert.EqualValues(t, 3129, value.Port)

	require.NoError(t, value.Set(":8125"))
	assert.Equal(t, ":8125", value.Get(""))

	assert.Error(t, value.Set("127.0.0.1"))
	assert.Error(t, value.Set("127.0.0.1:0"))
	assert.Error(t, value.Set("127.0.0.1:70000"))
}

func TestTypeHTTPPath(t *testing.T) {
	t.Parallel()

	value := config.TypeHTTPPath{}

	assert.Equal(t, "/metrics", value.Get("/metrics"))
	require.NoError(t, value.Set("stats"))
	assert.Equal(t, "/stats", value.Get("/metrics"))
	assert.Error(t, value.Set("/path?query=1"))
}

func TestTypeMetricPrefix(t *testing.T) {
	t.Parallel()

	value := config.TypeMetricPrefix{}

	require.NoError(t, value.Set("pipepulse_1"))
	assert.Error(t, value.Set("1pipe"))
	assert.Error(t, value.Set("pipe.pulse"))
}

func TestTypeStatsdTagFormat(t *testing.T) {
	t.Parallel()

	value := config.TypeStatsdTagFormat{}

	require.NoError(t, value.Set("DataDog"))
	assert.Equal(t, "datadog", value.Get("influxdb"))
	assert.Error(t, value.Set("prometheus"))
}

func TestTypeBool(t *testing.T) {
	t.Parallel()

	value := config.TypeBool{}

	assert.True(t, value.Get(true))
	require.NoError(t, value.Set("false"))
	assert.False(t, value.Get(true))
	assert.Error(t, value.Set("maybe"))
}
