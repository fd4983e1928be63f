package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchDir_ReportsDocumentWrites(t *testing.T) {
	dir := t.TempDir()

	w, err := WatchDir(dir, nil)
	if err != nil {
		t.Fatalf("WatchDir error: %v", err)
	}
	defer w.Close()

	writeDoc(t, dir, settingsDoc, "sandbox:\n  max_workspaces: 3\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case doc := <-w.Events():
			if doc == settingsDoc {
				return
			}
		case <-deadline:
			t.Fatal("no event for settings.yaml")
		}
	}
}

func TestWatchDir_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := WatchDir(dir, nil)
	if err != nil {
		t.Fatalf("WatchDir error: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	select {
	case doc := <-w.Events():
		t.Fatalf("unexpected event for %s", doc)
	case <-time.After(300 * time.Millisecond):
	}
}
