//go:build !windows

package storage

import (
	"fmt"

	"github.com/google/renameio/v2"

	xlog "github.com/ytget/sudoku/internal/log"
)

// writeFileAtomic writes sg through renameio: temp file, fsync, rename
func writeFileAtomic(path string, sg *SavedGame) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending save file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger := xlog.WithComponent("storage")
			logger.Debug().Err(err).Msg("cleanup pending save file")
		}
	}()

	if err := Encode(pendingFile, sg); err != nil {
		return fmt.Errorf("write saved game: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace save file: %w", err)
	}
	return nil
}
