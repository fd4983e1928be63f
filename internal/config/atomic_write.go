package config

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// writeDocument persists a configuration document atomically so a crash
// mid-save never leaves a half-written file behind.
func writeDocument(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return renameio.WriteFile(path, data, 0o600)
}
