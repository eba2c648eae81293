package poller_test

import (
	"testing"

	"github.com/pipepulse/pipepulse/pulselib/internal/poller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func makePipe(t *testing.T) (int, int) {
	t.Helper()

	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))

	return fds[0], fds[1]
}

func TestWaitOnPipes(t *testing.T) {
	inRead, inWrite := makePipe(t)
	outRead, outWrite := makePipe(t)

	defer func() {
		for _, fd := range []int{inRead, inWrite, outRead, outWrite} {
			unix.Close(fd)
		}
	}()

	waker, err := poller.NewWaker()
	require.NoError(t, err)

	defer waker.Close()

	p := poller.New(inRead, outWrite, -1, waker.FD())

	// Пустой выходной pipe сразу готов к записи, вход: нет.
	ready, err := p.Wait(poller.Interest{Input: true, Output: true})
	require.NoError(t, err)
	assert.Equal(t, poller.OutputReady, ready)

	_, err = unix.Write(inWrite, []byte("x"))
	require.NoError(t, err)

	ready, err = p.Wait(poller.Interest{Input: true})
	require.NoError(t, err)
	assert.Equal(t, poller.InputReady, ready)

	waker.Wake()

	ready, err = p.Wait(poller.Interest{})
	require.NoError(t, err)
	assert.Equal(t, poller.Woken, ready)
}

func TestWaitInputHangup(t *testing.T) {
	inRead, inWrite := makePipe(t)

	defer unix.Close(inRead)

	require.NoError(t, unix.Close(inWrite))

	p := poller.New(inRead, -1, -1, -1)

	ready, err := p.Wait(poller.Interest{Input: true})
	require.NoError(t, err)
	assert.True(t, ready.Has(poller.InputReady))
}
