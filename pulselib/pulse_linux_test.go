package pulselib_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pipepulse/pipepulse/internal/testlib"
	"github.com/pipepulse/pipepulse/logger"
	"github.com/pipepulse/pipepulse/pulselib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type memorySink struct {
	mutex   sync.Mutex
	reports []pulselib.ReportEvent
}

func (m *memorySink) Report(evt pulselib.ReportEvent) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.reports = append(m.reports, evt)

	return nil
}

type pipe struct {
	r int
	w int

	closeOnce sync.Once
}

func (p *pipe) closeWrite() {
	p.closeOnce.Do(func() {
		unix.Close(p.w) //nolint: errcheck
	})
}

func makePipe(t *testing.T) *pipe {
	t.Helper()

	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))

	p := &pipe{r: fds[0], w: fds[1]}

	t.Cleanup(func() {
		unix.Close(p.r) //nolint: errcheck
		p.closeWrite()
	})

	return p
}

func feed(p *pipe, payload []byte) {
	for len(payload) > 0 {
		n, err := unix.Write(p.w, payload)
		if err != nil {
			break
		}

		payload = payload[n:]
	}

	p.closeWrite()
}

func consume(fd int) []byte {
	result := &bytes.Buffer{}
	buf := make([]byte, 64*1024)

	for {
		n, err := unix.Read(fd, buf)
		if n <= 0 || err != nil {
			return result.Bytes()
		}

		result.Write(buf[:n])
	}
}

func runPipeline(t *testing.T, opts pulselib.PulseOpts, payload []byte) ([]byte, *memorySink) {
	t.Helper()

	sink := &memorySink{}
	opts.Sink = sink

	return runPipelineWithSink(t, opts, payload), sink
}

func runPipelineWithSink(t *testing.T, opts pulselib.PulseOpts, payload []byte) []byte {
	t.Helper()

	input := makePipe(t)
	output := makePipe(t)

	opts.Input = input.r
	opts.Output = output.w
	opts.Logger = logger.NewNoopLogger()

	pulse, err := pulselib.NewPulse(opts)
	require.NoError(t, err)

	received := make(chan []byte, 1)

	go feed(input, payload)
	go func() {
		received <- consume(output.r)
	}()

	require.NoError(t, pulse.Run(context.Background()))
	require.NoError(t, pulse.Close())

	output.closeWrite()

	select {
	case data := <-received:
		return data
	case <-time.After(10 * time.Second):
		t.Fatal("output has not been drained")
	}

	return nil
}

func TestPulseMovesAllBytes(t *testing.T) {
	payload := make([]byte, 3*pulselib.DefaultWindowSize+17)
	_, err := rand.Read(payload)
	require.NoError(t, err)

	for _, disableZeroCopy := range []bool{false, true} {
		data, sink := runPipeline(t, pulselib.PulseOpts{
			ReportInterval:  time.Hour,
			ReportThreshold: pulselib.DefaultReportThreshold,
			DisableZeroCopy: disableZeroCopy,
		}, payload)

		assert.Equal(t, payload, data)
		assert.Equal(t, []pulselib.ReportEvent{{
			PeriodBytes: uint64(len(payload)),
			TotalBytes:  uint64(len(payload)),
		}}, sink.reports)
	}
}

func TestPulseSmallWindow(t *testing.T) {
	payload := make([]byte, 10000)
	_, err := rand.Read(payload)
	require.NoError(t, err)

	data, _ := runPipeline(t, pulselib.PulseOpts{
		WindowSize:      100,
		DisableZeroCopy: true,
	}, payload)

	assert.Equal(t, payload, data)
}

func TestPulseSinkFailure(t *testing.T) {
	payload := []byte("payload which is reported to a broken sink")
	sinkMock := &testlib.PulselibReportSinkMock{}

	sinkMock.
		On("Report", pulselib.ReportEvent{
			PeriodBytes: uint64(len(payload)),
			TotalBytes:  uint64(len(payload)),
		}).
		Once().
		Return(errors.New("disk is full"))

	data := runPipelineWithSink(t, pulselib.PulseOpts{
		Sink:            sinkMock,
		ReportInterval:  time.Hour,
		DisableZeroCopy: true,
	}, payload)

	assert.Equal(t, payload, data)
	sinkMock.AssertExpectations(t)
	sinkMock.AssertNotCalled(t, "Report", mock.MatchedBy(func(evt pulselib.ReportEvent) bool {
		return evt.TotalBytes != uint64(len(payload))
	}))
}

func TestPulseShutdown(t *testing.T) {
	input := makePipe(t)
	output := makePipe(t)
	sink := &memorySink{}

	pulse, err := pulselib.NewPulse(pulselib.PulseOpts{
		Input:          input.r,
		Output:         output.w,
		Sink:           sink,
		Logger:         logger.NewNoopLogger(),
		ReportInterval: time.Hour,
	})
	require.NoError(t, err)

	defer pulse.Close() //nolint: errcheck

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- pulse.Run(ctx)
	}()

	_, err = unix.Write(input.w, []byte("hello"))
	require.NoError(t, err)

	buf := make([]byte, 5)
	n, err := unix.Read(output.r, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("pulse has not stopped on cancel")
	}

	assert.EqualValues(t, 5, pulse.TotalBytes())
	assert.Equal(t, []pulselib.ReportEvent{{PeriodBytes: 5, TotalBytes: 5}}, sink.reports)
}

func TestPulseRestoresFlags(t *testing.T) {
	input := makePipe(t)
	output := makePipe(t)

	pulse, err := pulselib.NewPulse(pulselib.PulseOpts{
		Input:  input.r,
		Output: output.w,
		Sink:   &memorySink{},
		Logger: logger.NewNoopLogger(),
	})
	require.NoError(t, err)

	flags, err := unix.FcntlInt(uintptr(input.r), unix.F_GETFL, 0)
	require.NoError(t, err)
	assert.NotZero(t, flags&unix.O_NONBLOCK)

	require.NoError(t, pulse.Close())

	flags, err = unix.FcntlInt(uintptr(input.r), unix.F_GETFL, 0)
	require.NoError(t, err)
	assert.Zero(t, flags&unix.O_NONBLOCK)
}

func TestNewPulseValidation(t *testing.T) {
	_, err := pulselib.NewPulse(pulselib.PulseOpts{Logger: logger.NewNoopLogger(), Output: 1})
	assert.ErrorIs(t, err, pulselib.ErrNoSink)

	_, err = pulselib.NewPulse(pulselib.PulseOpts{Sink: &memorySink{}, Output: 1})
	assert.ErrorIs(t, err, pulselib.ErrLoggerIsNotDefined)

	_, err = pulselib.NewPulse(pulselib.PulseOpts{
		Sink:   &memorySink{},
		Logger: logger.NewNoopLogger(),
		Input:  3,
		Output: 3,
	})
	assert.ErrorIs(t, err, pulselib.ErrInvalidDescriptor)
}
