package extract

import (
	"context"
	"log"
	"path/filepath"

	"github.com/julianshen/firmdiag/internal/scanner"
)

// Stats is the result of one extraction pass. It only feeds counts into the
// generated summaries; diagram topology never depends on it.
type Stats struct {
	FilesScanned int
	Records      []FunctionRecord
	FileErrors   []FileError
}

// RecordCount is the number of records found. Overlapping patterns may
// report the same declaration more than once, so this is an upper bound on
// the number of distinct functions.
func (s Stats) RecordCount() int {
	return len(s.Records)
}

// Collect extracts records from every file in files, which are relative to
// root. Unreadable files are logged and recorded, never fatal.
func Collect(ctx context.Context, root string, files []scanner.File, set PatternSet) Stats {
	stats := Stats{FilesScanned: len(files)}
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		recs, err := ExtractFile(filepath.Join(root, f.Path), set)
		if err != nil {
			log.Printf("WARNING: extract: %s: %v", f.Path, err)
			stats.FileErrors = append(stats.FileErrors, FileError{Path: f.Path, Err: err})
			continue
		}
		stats.Records = append(stats.Records, recs...)
	}
	return stats
}
