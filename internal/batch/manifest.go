package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one pose in the output manifest.
type ManifestEntry struct {
	Name   string `json:"name"`
	Input  string `json:"input"`
	Image  string `json:"image,omitempty"`
	Joints int    `json:"joints"`
	Error  string `json:"error,omitempty"`
}

// WriteManifest writes a JSON manifest of results. Image paths are
// relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{Name: r.Name, Input: r.Input, Joints: r.Joints}
		if r.Output != "" {
			if rel, err := filepath.Rel(dir, r.Output); err == nil {
				e.Image = filepath.ToSlash(rel)
			} else {
				e.Image = r.Output
			}
		}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
