//go:build linux

package transfer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestZeroCopyErrorClassification(t *testing.T) {
	t.Parallel()

	testData := map[string]struct {
		err  error
		kind Kind
	}{
		"eagain": {err: unix.EAGAIN, kind: WouldBlock},
		"eintr":  {err: unix.EINTR, kind: WouldBlock},
		"einval": {err: unix.EINVAL, kind: Unsupported},
		"enosys": {err: unix.ENOSYS, kind: Unsupported},
		"epipe":  {err: unix.EPIPE, kind: OutputClosed},
		"reset":  {err: unix.ECONNRESET, kind: OutputClosed},
		"eio":    {err: unix.EIO, kind: Fatal},
		"ebadf":  {err: unix.EBADF, kind: Fatal},
	}

	for name, value := range testData {
		value := value

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			z := &zeroCopy{
				chunkSize: DefaultChunkSize,
				splice: func(int, *int64, int, *int64, int, int) (int64, error) {
					return -1, value.err
				},
			}

			res := z.Transfer()

			assert.Equal(t, value.kind, res.Kind)
			assert.Zero(t, res.N)

			if value.kind != WouldBlock {
				assert.True(t, errors.Is(res.Err, value.err))
			}
		})
	}
}

func TestZeroCopyUsesNonBlockingSplice(t *testing.T) {
	t.Parallel()

	var gotFlags, gotLength int

	z := &zeroCopy{
		in:        3,
		out:       4,
		chunkSize: 4096,
		splice: func(rfd int, _ *int64, wfd int, _ *int64, length int, flags int) (int64, error) {
			assert.Equal(t, 3, rfd)
			assert.Equal(t, 4, wfd)

			gotFlags = flags
			gotLength = length

			return 100, nil
		},
	}

	res := z.Transfer()

	assert.Equal(t, Moved, res.Kind)
	assert.Equal(t, 100, res.N)
	assert.Equal(t, 4096, gotLength)
	assert.NotZero(t, gotFlags&unix.SPLICE_F_NONBLOCK)
}

type pipeEnds struct {
	fds []int
}

func (p *pipeEnds) Read() int  { return p.fds[0] }
func (p *pipeEnds) Write() int { return p.fds[1] }

func (p *pipeEnds) close(idx int) error {
	if p.fds[idx] < 0 {
		return nil
	}

	err := unix.Close(p.fds[idx])
	p.fds[idx] = -1

	return err //nolint: wrapcheck
}

func (p *pipeEnds) CloseRead() error  { return p.close(0) }
func (p *pipeEnds) CloseWrite() error { return p.close(1) }

func makePipe(t *testing.T) *pipeEnds {
	t.Helper()

	ends := &pipeEnds{fds: make([]int, 2)}
	require.NoError(t, unix.Pipe2(ends.fds, unix.O_CLOEXEC|unix.O_NONBLOCK))

	t.Cleanup(func() {
		ends.CloseRead()  //nolint: errcheck
		ends.CloseWrite() //nolint: errcheck
	})

	return ends
}

func TestZeroCopyPipeToPipe(t *testing.T) {
	input := makePipe(t)
	output := makePipe(t)

	_, err := unix.Write(input.Write(), []byte("hello pipe"))
	require.NoError(t, err)

	strategy := newZeroCopy(input.Read(), output.Write(), DefaultChunkSize)

	res := strategy.Transfer()
	require.Equal(t, Moved, res.Kind)
	assert.Equal(t, 10, res.N)

	buf := make([]byte, 64)
	n, err := unix.Read(output.Read(), buf)
	require.NoError(t, err)
	assert.Equal(t, "hello pipe", string(buf[:n]))

	assert.Equal(t, WouldBlock, strategy.Transfer().Kind)

	require.NoError(t, input.CloseWrite())
	assert.Equal(t, InputClosed, strategy.Transfer().Kind)
}

func TestZeroCopyClosedReader(t *testing.T) {
	input := makePipe(t)
	output := makePipe(t)

	_, err := unix.Write(input.Write(), []byte("nobody listens"))
	require.NoError(t, err)
	require.NoError(t, output.CloseRead())

	res := newZeroCopy(input.Read(), output.Write(), DefaultChunkSize).Transfer()

	assert.Equal(t, OutputClosed, res.Kind)
}

func TestZeroCopyRegularFilesUnsupported(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")

	require.NoError(t, os.WriteFile(src, []byte("regular file"), 0o600))

	srcFile, err := os.Open(src)
	require.NoError(t, err)

	defer srcFile.Close()

	dstFile, err := os.Create(filepath.Join(dir, "dst"))
	require.NoError(t, err)

	defer dstFile.Close()

	res := newZeroCopy(int(srcFile.Fd()), int(dstFile.Fd()), DefaultChunkSize).Transfer()

	assert.Equal(t, Unsupported, res.Kind)
}
