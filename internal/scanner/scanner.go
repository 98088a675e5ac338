// Package scanner discovers firmware source files under a directory tree.
package scanner

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// File is a candidate source file found by Scan.
type File struct {
	Path string // relative to the scan root
	Ext  string
}

// Options controls which files Scan returns.
type Options struct {
	Extensions       []string
	RespectGitignore bool
}

// DefaultExtensions lists the source and header extensions scanned when
// Options.Extensions is empty.
var DefaultExtensions = []string{".cpp", ".h"}

// DefaultOptions returns the options used by the diagram batches.
func DefaultOptions() Options {
	return Options{
		Extensions:       append([]string(nil), DefaultExtensions...),
		RespectGitignore: true,
	}
}

// skipDirs contains directory names that are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	".pio":         true,
	".vscode":      true,
	"build":        true,
	"node_modules": true,
	"__pycache__":  true,
}

// Scan walks root and returns every file whose extension is in the allow-list.
// A missing root is not an error: the result is simply empty. Files are
// returned in WalkDir order, which callers must not rely on.
func Scan(ctx context.Context, root string, opts Options) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		log.Printf("WARNING: scanner: cannot stat %q: %v", root, err)
		return nil, nil
	}
	if !info.IsDir() {
		return nil, nil
	}

	allowed := extensionSet(opts.Extensions)

	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = loadGitignore(root)
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			log.Printf("WARNING: scanner: skipping path %q: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if path != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if gi != nil && gi.MatchesPath(filepath.ToSlash(rel)) {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(rel))
		if !allowed[ext] {
			return nil
		}
		files = append(files, File{Path: rel, Ext: ext})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
