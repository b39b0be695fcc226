package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// The file backend keeps each collection as a single JSON array. Every
// operation loads the whole array, works on it in memory and persists it
// back, so each store serializes its writes behind a mutex: without that,
// two concurrent read-modify-write cycles would silently drop one writer's
// change and a uniqueness check against a stale snapshot could admit a
// duplicate. A single writer process is assumed.

func ensureDataFile(dataDir, name string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir %s: %w", dataDir, err)
	}

	path := filepath.Join(dataDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
			return "", fmt.Errorf("initialize %s: %w", path, err)
		}
	} else if err != nil {
		return "", err
	}

	return path, nil
}

func readCollection(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeCollection persists through a temp file plus rename so a crash
// mid-write never leaves a truncated collection behind.
func writeCollection(path string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}
