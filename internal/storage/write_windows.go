//go:build windows

package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic writes sg to a temp file next to path and renames it over
// path. renameio does not support Windows.
func writeFileAtomic(path string, sg *SavedGame) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp save file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, sg); err != nil {
		tmp.Close()
		return fmt.Errorf("write saved game: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync save file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close save file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}
	return nil
}
