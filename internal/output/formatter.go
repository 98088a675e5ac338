// internal/output/formatter.go
package output

// Report holds the outcome of one firmdiag run.
type Report struct {
	Batches []BatchReport `json:"batches"`
}

// BatchReport summarizes a single diagram batch.
type BatchReport struct {
	Name           string    `json:"name"`
	Dir            string    `json:"dir"`
	FilesScanned   int       `json:"files_scanned"`
	Records        int       `json:"function_records"`
	FileErrors     int       `json:"file_errors,omitempty"`
	Written        []string  `json:"written,omitempty"`
	Failures       []Failure `json:"failures,omitempty"`
	FontSource     string    `json:"font_source,omitempty"`
	FontFallback   string    `json:"font_fallback,omitempty"`
	PinsResolved   int       `json:"pins_resolved,omitempty"`
	PinsUnresolved int       `json:"pins_unresolved,omitempty"`
	Error          string    `json:"error,omitempty"`
}

// Failure is an artifact that could not be produced.
type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// OK reports whether the batch ran and every artifact was written.
func (b BatchReport) OK() bool {
	return b.Error == "" && len(b.Failures) == 0
}

// Totals returns the number of written artifacts and failures across all
// batches. A batch that failed outright counts as one failure.
func (r *Report) Totals() (written, failed int) {
	for _, b := range r.Batches {
		written += len(b.Written)
		failed += len(b.Failures)
		if b.Error != "" {
			failed++
		}
	}
	return written, failed
}

// Formatter formats a Report into output bytes.
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// NewFormatter returns the formatter registered under name: "json",
// "markdown" or "text". styled only affects the text formatter.
func NewFormatter(name string, styled bool) (Formatter, bool) {
	switch name {
	case "json":
		return NewJSONFormatter(), true
	case "markdown", "md":
		return NewMarkdownFormatter(), true
	case "text", "":
		return NewTextFormatter(styled), true
	}
	return nil, false
}
