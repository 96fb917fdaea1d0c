// Package emit renders target-dialect text from the IR via per-node
// dispatch: a line→node map selects, for each original line, only the
// rule categories relevant to that line's construct. This bounds the
// per-line search space, eliminates cross-construct rule bleed (one
// family's rule matching another family's already-converted output), and
// makes comment and license passthrough a guaranteed no-op.
package emit

import (
	"strings"

	"github.com/testshift/core/pkg/converter/annotate"
	"github.com/testshift/core/pkg/converter/pattern"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
)

// Emitter rewrites one source text per call. Emitters are stateless and
// safe for concurrent use once constructed.
type Emitter struct {
	set *pattern.Set
}

// New creates an emitter over a pair's rule set.
func New(set *pattern.Set) *Emitter {
	return &Emitter{set: set}
}

// Category routing per node kind. Assertions also see selection rules
// because browser assertions embed a selector chain; raw code sees the
// action categories because interactions are deliberately not IR nodes.
var (
	assertionCats = []pattern.Category{pattern.CategorySelection, pattern.CategoryAssertion, pattern.CategoryWait}
	mockCats      = []pattern.Category{pattern.CategoryMocking, pattern.CategoryWait}
	rawCats       = []pattern.Category{pattern.CategoryNavigation, pattern.CategorySelection, pattern.CategoryInteraction, pattern.CategoryWait}
	// An opener whose block closes on the same line carries body
	// statements the per-kind dispatch never sees; run every body
	// category over the remainder after the structure rewrite.
	inlineCats = []pattern.Category{
		pattern.CategoryNavigation, pattern.CategorySelection, pattern.CategoryInteraction,
		pattern.CategoryAssertion, pattern.CategoryWait, pattern.CategoryMocking,
	}
)

// Emit walks the original text line by line and dispatches each line to
// the transform selected by its node kind. Line count is preserved except
// where an unconvertible construct deliberately expands into an annotated
// block.
func (e *Emitter) Emit(res *scan.Result, original string) string {
	lines := strings.Split(original, "\n")
	out := make([]string, 0, len(lines)+8)

	for idx, line := range lines {
		lineNo := idx + 1
		node, ok := res.Lines[lineNo]
		if !ok {
			out = append(out, line)
			continue
		}

		switch n := node.(type) {
		case *domain.Comment:
			out = append(out, line)

		case *domain.ImportStatement:
			out = append(out, e.set.ApplyCategory(pattern.CategoryImports, line))

		case *domain.TestSuite, *domain.TestCase, *domain.Hook:
			converted := e.set.ApplyCategory(pattern.CategoryStructure, line)
			if scan.InlineBody(line) {
				converted = e.set.ApplyCategories(converted, inlineCats...)
			}
			out = append(out, converted)

		case *domain.Assertion:
			out = append(out, e.set.ApplyCategories(line, assertionCats...))

		case *domain.MockCall:
			out = e.emitMock(out, lines, line, lineNo, n)

		case *domain.RawCode:
			out = append(out, e.set.ApplyCategories(line, rawCats...))

		default:
			out = append(out, line)
		}
	}

	text := strings.Join(out, "\n")
	text = collapseBlankRuns(text)
	return ensureTrailingNewline(text)
}

// emitMock handles the three mock outcomes: unconvertible operations
// expand into a TODO block preserving the original verbatim; risky
// operations get a WARNING above the converted line; everything else is
// a plain category rewrite.
func (e *Emitter) emitMock(out, lines []string, line string, lineNo int, n *domain.MockCall) []string {
	if n.NoAnalog {
		if lineNo != n.Loc.StartLine {
			return out // remaining lines already folded into the block
		}
		end := n.Loc.EndLine
		if end > len(lines) {
			end = len(lines)
		}
		orig := strings.Join(lines[n.Loc.StartLine-1:end], "\n")
		todo := annotate.FormatTodo(annotate.Todo{
			ID:          todoID(n),
			Description: todoDescription(n),
			Original:    orig,
			Action:      todoAction(n),
		}, annotate.Indent(line))
		return append(out, todo)
	}

	converted := e.set.ApplyCategories(line, mockCats...)
	if n.Confidence == domain.ConfidenceWarning && lineNo == n.Loc.StartLine {
		desc := n.Advice
		if desc == "" {
			desc = "target equivalent is asynchronous; ensure the call is awaited"
		}
		warn := annotate.FormatWarning(annotate.Warning{
			Description: desc,
			Original:    strings.TrimSpace(line),
		}, annotate.Indent(line))
		return append(out, warn, converted)
	}
	return append(out, converted)
}

func todoID(n *domain.MockCall) string {
	if n.TodoID != "" {
		return n.TodoID
	}
	return "mock-" + string(n.Op)
}

func todoDescription(n *domain.MockCall) string {
	if n.Target != "" {
		return string(n.Op) + " operation on " + n.Target + " has no target-dialect equivalent"
	}
	return string(n.Op) + " operation has no target-dialect equivalent"
}

func todoAction(n *domain.MockCall) string {
	if n.Advice != "" {
		return n.Advice
	}
	return "port this test-double setup manually"
}

// collapseBlankRuns folds runs of 3+ blank lines into a single blank line.
func collapseBlankRuns(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blanks := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			continue
		}
		if blanks > 0 {
			if blanks >= 3 {
				out = append(out, "")
			} else {
				for i := 0; i < blanks; i++ {
					out = append(out, "")
				}
			}
			blanks = 0
		}
		out = append(out, line)
	}
	if blanks > 0 {
		if blanks >= 3 {
			out = append(out, "")
		} else {
			for i := 0; i < blanks; i++ {
				out = append(out, "")
			}
		}
	}
	return strings.Join(out, "\n")
}

func ensureTrailingNewline(text string) string {
	text = strings.TrimRight(text, "\n")
	return text + "\n"
}
