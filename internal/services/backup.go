package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BackupFile copies the backing ledger file into dir under a timestamped
// name and returns the backup path. Runs before the store opens so the
// copy is a consistent snapshot. A missing source file is not an error:
// there is nothing to back up on first run.
func BackupFile(src, dir string, now time.Time) (string, error) {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("daybook-%s%s", now.Format("20060102-150405"), filepath.Ext(src))
	dst := filepath.Join(dir, name)

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source for backup: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", fmt.Errorf("copy backup: %w", err)
	}
	if err := out.Sync(); err != nil {
		return "", fmt.Errorf("sync backup: %w", err)
	}
	return dst, nil
}
