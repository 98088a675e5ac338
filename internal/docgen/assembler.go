package docgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianshen/firmdiag/internal/extract"
	"github.com/julianshen/firmdiag/internal/notation"
)

// SummaryFile is the name of the index document added to every batch.
const SummaryFile = "README.md"

// Assemble returns batch with its summary document appended. The summary
// lists each diagram, the extraction counts from stats and the commands that
// turn notation sources into images. Topology never depends on stats; the
// counts are annotation only.
func Assemble(batch Batch, stats extract.Stats) Batch {
	out := batch
	out.Artifacts = append(append([]Artifact(nil), batch.Artifacts...), Artifact{
		Path:        SummaryFile,
		Title:       batch.Title,
		Description: "Index of the generated diagrams",
		Kind:        KindMarkdown,
		Content:     []byte(buildSummary(batch, stats)),
	})
	return out
}

func buildSummary(batch Batch, stats extract.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", batch.Title)

	b.WriteString("## Generated diagrams\n\n")
	if len(batch.Artifacts) == 0 {
		b.WriteString("No diagrams were generated.\n\n")
	}
	for _, a := range batch.Artifacts {
		fmt.Fprintf(&b, "### %s\n", a.Title)
		fmt.Fprintf(&b, "- **File**: `%s`\n", a.Path)
		if a.Description != "" {
			fmt.Fprintf(&b, "- **Description**: %s\n", a.Description)
		}
		fmt.Fprintf(&b, "- **Type**: %s\n\n", a.TypeLabel())
	}

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Files processed**: %d\n", stats.FilesScanned)
	fmt.Fprintf(&b, "- **Functions found**: %d\n", stats.RecordCount())
	if n := len(stats.FileErrors); n > 0 {
		fmt.Fprintf(&b, "- **Unreadable files**: %d\n", n)
	}
	fmt.Fprintf(&b, "- **Diagrams generated**: %d\n\n", len(batch.Artifacts))
	b.WriteString("Function counts come from pattern matching, not parsing. ")
	b.WriteString("Overlapping patterns can match the same declaration more than once, ")
	b.WriteString("so the count is an upper bound.\n")

	if cmds := conversionCommands(batch.Artifacts); len(cmds) > 0 {
		b.WriteString("\n## Rendering\n\n")
		b.WriteString("Convert the notation sources to images with the external renderers:\n\n")
		b.WriteString("```bash\n")
		for _, c := range cmds {
			b.WriteString(c)
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	}

	b.WriteString("\n---\n*Generated by firmdiag from the firmware sources. Re-run to refresh.*\n")
	return b.String()
}

// conversionCommands lists one mmdc invocation per mermaid artifact and two
// dot invocations per DOT artifact.
func conversionCommands(artifacts []Artifact) []string {
	var cmds []string
	for _, a := range artifacts {
		if a.Kind == KindRaster || a.Target == "" {
			continue
		}
		stem := strings.TrimSuffix(a.Path, filepath.Ext(a.Path))
		if a.Target == notation.TargetDOT {
			cmds = append(cmds,
				fmt.Sprintf("dot -Tpng %s -o %s.png", a.Path, stem),
				fmt.Sprintf("dot -Tsvg %s -o %s.svg", a.Path, stem))
			continue
		}
		cmds = append(cmds, fmt.Sprintf("mmdc -i %s -o %s.png", a.Path, stem))
	}
	return cmds
}
