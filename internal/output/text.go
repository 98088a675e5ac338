// internal/output/text.go
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	batchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#2E86AB", Dark: "#6CC4E8"})
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A9D23"))
	failStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C73E1D"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"})
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
			Padding(0, 1)
)

// TextFormatter outputs a Report as a console summary. When styled it uses
// lipgloss colours and a bordered box; otherwise it is plain text.
type TextFormatter struct {
	styled bool
}

// NewTextFormatter creates a new TextFormatter.
func NewTextFormatter(styled bool) *TextFormatter {
	return &TextFormatter{styled: styled}
}

func (f *TextFormatter) paint(s lipgloss.Style, text string) string {
	if !f.styled {
		return text
	}
	return s.Render(text)
}

// Format renders the Report as console text.
func (f *TextFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder
	for _, batch := range report.Batches {
		status := f.paint(okStyle, "ok")
		if !batch.OK() {
			status = f.paint(failStyle, "FAILED")
		}
		fmt.Fprintf(&b, "%s %s\n", f.paint(batchStyle, batch.Name), status)

		if batch.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n", batch.Error)
			continue
		}
		fmt.Fprintf(&b, "  %s\n", f.paint(dimStyle, fmt.Sprintf("%s: %d files, %d function records, %d written",
			batch.Dir, batch.FilesScanned, batch.Records, len(batch.Written))))
		if batch.FontSource != "" {
			fmt.Fprintf(&b, "  font: %s\n", batch.FontSource)
		}
		if batch.FontFallback != "" {
			fmt.Fprintf(&b, "  font fallback: %s\n", batch.FontFallback)
		}
		if batch.PinsUnresolved > 0 {
			fmt.Fprintf(&b, "  pins: %d unresolved\n", batch.PinsUnresolved)
		}
		for _, fl := range batch.Failures {
			fmt.Fprintf(&b, "  %s %s: %s\n", f.paint(failStyle, "x"), fl.Path, fl.Error)
		}
	}

	written, failed := report.Totals()
	summary := fmt.Sprintf("%d written, %d failed", written, failed)
	if f.styled {
		b.WriteString(boxStyle.Render(summary))
		b.WriteString("\n")
	} else {
		b.WriteString(summary + "\n")
	}
	return []byte(b.String()), nil
}
