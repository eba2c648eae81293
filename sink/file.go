package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pipepulse/pipepulse/pulselib"
)

// File overwrites a file with "<period>\t<total>\n" on every report.
//
// A line is written into a temporary file in the same directory which is
// renamed over the target, so readers never see a partial report.
type File struct {
	path string
}

func (f File) Report(evt pulselib.ReportEvent) error {
	dir, name := filepath.Split(f.path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("cannot create temporary file: %w", err)
	}

	tmpName := tmp.Name()

	// После успешного rename файла уже нет, ошибка Remove неважна.
	defer os.Remove(tmpName) //nolint: errcheck

	if _, err := tmp.Write(formatReport(evt)); err != nil {
		tmp.Close() //nolint: errcheck

		return fmt.Errorf("cannot write report: %w", err)
	}

	if err := tmp.Chmod(0o644); err != nil { //nolint: gomnd
		tmp.Close() //nolint: errcheck

		return fmt.Errorf("cannot set permissions: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot close temporary file: %w", err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("cannot replace %s: %w", f.path, err)
	}

	return nil
}

func NewFile(path string) File {
	return File{
		path: path,
	}
}
