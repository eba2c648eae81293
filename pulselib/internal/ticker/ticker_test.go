package ticker_test

import (
	"testing"
	"time"

	"github.com/pipepulse/pipepulse/pulselib/internal/ticker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsZeroInterval(t *testing.T) {
	_, err := ticker.New(0)

	assert.ErrorIs(t, err, ticker.ErrInvalidInterval)
}

func TestTickerFires(t *testing.T) {
	tick, err := ticker.New(20 * time.Millisecond)
	require.NoError(t, err)

	defer tick.Close()

	assert.Equal(t, 20*time.Millisecond, tick.Interval())

	count, err := tick.Expirations()
	require.NoError(t, err)
	assert.Zero(t, count, "первое срабатывание через interval, не сразу")

	assert.Eventually(t, func() bool {
		count, err := tick.Expirations()

		return err == nil && count > 0
	}, time.Second, 10*time.Millisecond)
}
