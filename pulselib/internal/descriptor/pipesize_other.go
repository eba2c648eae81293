//go:build !linux

package descriptor

// GrowPipe is no-op: F_SETPIPE_SZ is Linux-specific.
func GrowPipe(fd, size int) int {
	return 0
}
