package docgen

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Write writes every artifact of batch below batch.Dir, creating
// directories as needed and overwriting existing files. A failed artifact
// is logged and recorded; the rest are still attempted.
func Write(batch Batch) WriteResult {
	var res WriteResult
	for _, a := range batch.Artifacts {
		path := filepath.Join(batch.Dir, a.Path)
		if err := writeFile(path, a.Content); err != nil {
			log.Printf("WARNING: docgen: %v", err)
			res.Failures = append(res.Failures, ArtifactError{Path: a.Path, Err: err})
			continue
		}
		res.Written = append(res.Written, a.Path)
	}
	return res
}

func writeFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
