package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteAtomic replaces the file at path with data. The bytes land in a temp
// file in the same directory first and are renamed into place, so a reader
// never observes a partial report. The directory must already exist.
func WriteAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "nexrecon-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	name := tmp.Name()

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(name, path)
	}
	if err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
