package descriptor_test

import (
	"testing"

	"github.com/pipepulse/pipepulse/pulselib/internal/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSetNonblockAndRestore(t *testing.T) {
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))

	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	before, err := unix.FcntlInt(uintptr(fds[0]), unix.F_GETFL, 0)
	require.NoError(t, err)
	require.Zero(t, before&unix.O_NONBLOCK)

	state, err := descriptor.SetNonblock(fds[0])
	require.NoError(t, err)

	flags, err := unix.FcntlInt(uintptr(fds[0]), unix.F_GETFL, 0)
	require.NoError(t, err)
	assert.NotZero(t, flags&unix.O_NONBLOCK)

	require.NoError(t, state.Restore())

	flags, err = unix.FcntlInt(uintptr(fds[0]), unix.F_GETFL, 0)
	require.NoError(t, err)
	assert.Equal(t, before, flags)
}

func TestSetNonblockBadDescriptor(t *testing.T) {
	_, err := descriptor.SetNonblock(-1)

	assert.Error(t, err)
}

func TestIsPipe(t *testing.T) {
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))

	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	assert.True(t, descriptor.IsPipe(fds[0]))
	assert.True(t, descriptor.IsPipe(fds[1]))
	assert.False(t, descriptor.IsPipe(-1))
}
