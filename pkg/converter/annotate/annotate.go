// Package annotate renders the inline TODO/WARNING markers left for
// constructs that could not, or could only risk-fully, be translated.
//
// The marker format is a persisted contract: downstream effort-estimation
// and blocker-listing tooling greps converted output for these identifiers,
// so they must remain stable across versions.
package annotate

import "strings"

const (
	// TodoMarker prefixes annotations for constructs with no mechanical
	// equivalent. The original text is preserved, never deleted.
	TodoMarker = "TESTSHIFT-TODO"
	// WarnMarker prefixes annotations for translations whose semantics
	// may differ from the original.
	WarnMarker = "TESTSHIFT-WARN"
)

// Todo describes an unconvertible construct.
type Todo struct {
	// ID is a stable, greppable identifier for this class of construct
	// (e.g. "chai-plugin", "jest-isolate-modules").
	ID string
	// Description explains what could not be converted.
	Description string
	// Original is the untouched source text.
	Original string
	// Action is the suggested remediation.
	Action string
}

// Warning describes a risky-but-possible translation.
type Warning struct {
	Description string
	Original    string
}

// FormatTodo renders a TODO annotation block. The indent is applied to
// every emitted line so the block sits at the original nesting level.
func FormatTodo(t Todo, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString("// ")
	b.WriteString(TodoMarker)
	b.WriteString("(")
	b.WriteString(t.ID)
	b.WriteString("): ")
	b.WriteString(t.Description)
	b.WriteString("\n")
	for _, line := range strings.Split(t.Original, "\n") {
		b.WriteString(indent)
		b.WriteString("// original: ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("// action: ")
	b.WriteString(t.Action)
	return b.String()
}

// FormatWarning renders a WARNING annotation comment. Callers keep the
// (converted or original) statement on the following line; the warning
// only explains the risk.
func FormatWarning(w Warning, indent string) string {
	var b strings.Builder
	b.WriteString(indent)
	b.WriteString("// ")
	b.WriteString(WarnMarker)
	b.WriteString(": ")
	b.WriteString(w.Description)
	if w.Original != "" {
		b.WriteString("\n")
		for i, line := range strings.Split(w.Original, "\n") {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(indent)
			b.WriteString("// was: ")
			b.WriteString(line)
		}
	}
	return b.String()
}

// Indent extracts the leading whitespace of a line.
func Indent(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}
