package util

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

func TempPath(path string) string {
	return path + ".tmp"
}

// WriteFileAtomic writes data next to path and renames it into place, so a
// reader never sees a half-written output file.
func WriteFileAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output folder: %w", err)
		}
	}

	tmp := TempPath(path)
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if _, err := out.Write(data); err != nil {
		if cerr := out.Close(); cerr != nil {
			log.Printf("error closing temp file %s: %v", tmp, cerr)
		}
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
