package sink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pipepulse/pipepulse/pulselib"
)

// Touch is a liveness sink: it only updates access and modification time
// of a file. Contents are never changed. A missing file is created.
type Touch struct {
	path string
	now  func() time.Time
}

func (t Touch) Report(_ pulselib.ReportEvent) error {
	now := t.now()

	err := os.Chtimes(t.path, now, now)
	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot touch file %s: %w", t.path, err)
	}

	file, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY, 0o644) //nolint: gomnd
	if err != nil {
		return fmt.Errorf("cannot create file %s: %w", t.path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("cannot close file %s: %w", t.path, err)
	}

	return nil
}

func NewTouch(path string) Touch {
	return Touch{
		path: path,
		now:  time.Now,
	}
}
