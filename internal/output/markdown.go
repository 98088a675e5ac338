// internal/output/markdown.go
package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter outputs a Report as human-readable Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the Report as Markdown.
func (f *MarkdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# firmdiag run\n")

	for _, batch := range report.Batches {
		fmt.Fprintf(&b, "\n## %s\n\n", batch.Name)
		if batch.Error != "" {
			fmt.Fprintf(&b, "**Error**: %s\n", batch.Error)
			continue
		}
		fmt.Fprintf(&b, "- Output: `%s`\n", batch.Dir)
		fmt.Fprintf(&b, "- Files processed: %d\n", batch.FilesScanned)
		fmt.Fprintf(&b, "- Function records: %d\n", batch.Records)
		if batch.FileErrors > 0 {
			fmt.Fprintf(&b, "- Unreadable files: %d\n", batch.FileErrors)
		}
		if batch.FontSource != "" {
			fmt.Fprintf(&b, "- Font source: %s\n", batch.FontSource)
		}
		if batch.FontFallback != "" {
			fmt.Fprintf(&b, "- Font fallback: %s\n", batch.FontFallback)
		}
		if batch.PinsResolved+batch.PinsUnresolved > 0 {
			fmt.Fprintf(&b, "- Pins resolved: %d of %d\n", batch.PinsResolved, batch.PinsResolved+batch.PinsUnresolved)
		}

		if len(batch.Written) > 0 {
			b.WriteString("\n### Written\n\n")
			for _, p := range batch.Written {
				fmt.Fprintf(&b, "- `%s`\n", p)
			}
		}
		if len(batch.Failures) > 0 {
			b.WriteString("\n### Failures\n\n")
			for i, fl := range batch.Failures {
				fmt.Fprintf(&b, "%d. **%s**: %s\n", i+1, fl.Path, fl.Error)
			}
		}
	}

	written, failed := report.Totals()
	artifactLabel := "artifacts"
	if written == 1 {
		artifactLabel = "artifact"
	}
	fmt.Fprintf(&b, "\n---\n*%d %s written, %d failed*\n", written, artifactLabel, failed)

	return []byte(b.String()), nil
}
