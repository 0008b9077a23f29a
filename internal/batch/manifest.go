package batch

import (
	"encoding/json"
	"os"
)

// WriteManifest writes the per-input results to a JSON manifest so a
// later pass can audit which containers converted and what they yielded.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
