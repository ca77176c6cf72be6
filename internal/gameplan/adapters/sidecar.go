package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SidecarName is the per-item metadata file colocated with a tracked
// document. It exists only for change detection and is not user-facing.
const SidecarName = ".metadata.json"

// SyncMetadata records the outcome of the last sync for one item.
type SyncMetadata struct {
	LastSync string `json:"last_sync"`
	// Updated is the upstream version token from the last sync,
	// compared by exact equality to detect change.
	Updated string `json:"updated,omitempty"`
}

// SidecarPath returns the metadata path for a tracked document.
func SidecarPath(docPath string) string {
	return filepath.Join(filepath.Dir(docPath), SidecarName)
}

// LoadMetadata reads the sidecar for a tracked document. A missing or
// corrupt sidecar reads as empty metadata; it never fails, so one bad
// file can't block a batch.
func LoadMetadata(docPath string) SyncMetadata {
	data, err := os.ReadFile(SidecarPath(docPath))
	if err != nil {
		return SyncMetadata{}
	}

	var m SyncMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		return SyncMetadata{}
	}
	return m
}

// SaveMetadata writes the sidecar for a tracked document.
func SaveMetadata(docPath string, m SyncMetadata) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sync metadata: %w", err)
	}
	if err := os.WriteFile(SidecarPath(docPath), data, 0o644); err != nil {
		return fmt.Errorf("write sync metadata: %w", err)
	}
	return nil
}

// DetectChange reports whether the upstream item changed since the
// metadata was recorded. A first sync (empty previous token) or an
// unknown current token always reports false.
func DetectChange(prev SyncMetadata, version string) bool {
	return prev.Updated != "" && version != "" && prev.Updated != version
}
