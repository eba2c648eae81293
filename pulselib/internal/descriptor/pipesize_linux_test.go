//go:build linux

package descriptor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pipepulse/pipepulse/pulselib/internal/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestGrowPipe(t *testing.T) {
	fds := make([]int, 2)
	require.NoError(t, unix.Pipe(fds))

	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	// 64KB: меньше дефолтного pipe-max-size (1MB), должно пройти.
	assert.GreaterOrEqual(t, descriptor.GrowPipe(fds[1], 128*1024), 64*1024)
}

func TestGrowPipeIgnoresRegularFiles(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "file"))
	require.NoError(t, err)

	defer file.Close()

	assert.Zero(t, descriptor.GrowPipe(int(file.Fd()), 128*1024))
}
