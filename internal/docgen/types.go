package docgen

import (
	"fmt"

	"github.com/julianshen/firmdiag/internal/notation"
)

// Kind classifies the content of an artifact.
type Kind string

const (
	KindMarkdown Kind = "markdown"
	KindSource   Kind = "notation-source"
	KindRaster   Kind = "raster"
)

// Artifact is one file produced by a batch.
type Artifact struct {
	Path        string // relative to the batch directory
	Title       string
	Description string
	Kind        Kind
	Target      notation.Target // empty for raster images
	Content     []byte
}

// TypeLabel describes the artifact's format for the batch summary.
func (a Artifact) TypeLabel() string {
	switch {
	case a.Kind == KindRaster:
		return "PNG image"
	case a.Target != "":
		return a.Target.Describe()
	}
	return "Markdown"
}

// Batch is a set of artifacts written to one directory.
type Batch struct {
	Name      string
	Dir       string
	Title     string
	Artifacts []Artifact
}

// ArtifactError records an artifact that could not be rendered or written.
type ArtifactError struct {
	Path string
	Err  error
}

func (e ArtifactError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ArtifactError) Unwrap() error { return e.Err }

// WriteResult is the outcome of writing a batch.
type WriteResult struct {
	Written  []string
	Failures []ArtifactError
}
