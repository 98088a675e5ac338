package notation

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Target names the notation an artifact is rendered to.
type Target string

const (
	TargetFlowchart Target = "flowchart"
	TargetGraph     Target = "graph"
	TargetClass     Target = "classDiagram"
	TargetSequence  Target = "sequenceDiagram"
	TargetState     Target = "stateDiagram"
	TargetDOT       Target = "dot"
)

// Language is the info string used when fencing a body of this target.
func (t Target) Language() string {
	if t == TargetDOT {
		return "dot"
	}
	return "mermaid"
}

// Describe is the human name of the target used in summaries.
func (t Target) Describe() string {
	switch t {
	case TargetFlowchart:
		return "Mermaid flowchart"
	case TargetGraph:
		return "Mermaid graph"
	case TargetClass:
		return "Mermaid class diagram"
	case TargetSequence:
		return "Mermaid sequence diagram"
	case TargetState:
		return "Mermaid state diagram"
	case TargetDOT:
		return "Graphviz DOT"
	}
	return string(t)
}

// Fenced wraps body in a markdown document: a heading followed by a fenced
// block tagged with the target's language.
func Fenced(title string, target Target, body string) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	fmt.Fprintf(&b, "```%s\n", target.Language())
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return b.String()
}

type frontMatter struct {
	Title string `yaml:"title"`
}

// FrontMatter returns a YAML front matter block carrying title, followed
// by a blank line.
func FrontMatter(title string) (string, error) {
	out, err := yaml.Marshal(frontMatter{Title: title})
	if err != nil {
		return "", fmt.Errorf("marshaling front matter: %w", err)
	}
	return "---\n" + string(out) + "---\n\n", nil
}

// Comment returns a mermaid line comment.
func Comment(text string) string {
	return "%% " + strings.ReplaceAll(text, "\n", " ") + "\n"
}
