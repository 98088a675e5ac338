// internal/output/text_test.go
package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFormatterPlain(t *testing.T) {
	out, err := NewTextFormatter(false).Format(sampleReport())
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "flowcharts ok\n")
	assert.Contains(t, s, "  docs/code-diagrams: 7 files, 31 function records, 2 written\n")
	assert.Contains(t, s, "wiring FAILED\n")
	assert.Contains(t, s, "  pins: 6 unresolved\n")
	assert.Contains(t, s, "  x README.md: permission denied\n")
	assert.Contains(t, s, "  error: pin configuration file not available\n")
	assert.Contains(t, s, "3 written, 2 failed\n")
	assert.NotContains(t, s, "\x1b[")
}

func TestTextFormatterStyledBoxesSummary(t *testing.T) {
	out, err := NewTextFormatter(true).Format(&Report{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "0 written, 0 failed")
	assert.Contains(t, string(out), "╭")
}

func TestTextFormatterFontFallback(t *testing.T) {
	out, err := NewTextFormatter(false).Format(&Report{Batches: []BatchReport{{
		Name:         "static",
		Dir:          "_static",
		Written:      []string{"logo.png"},
		FontSource:   "embedded",
		FontFallback: "reading font: open missing.ttf: no such file or directory",
	}}})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "  font: embedded\n")
	assert.Contains(t, s, "  font fallback: reading font: open missing.ttf: no such file or directory\n")
}
