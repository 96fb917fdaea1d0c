// Package validate runs a lightweight syntactic check over converted
// output. It parses the text with tree-sitter and reports error and
// missing nodes; it never executes tests, so a passing check means the
// output is syntactically plausible, not behaviorally equivalent.
//
// Parsers are created fresh per call. Tree-sitter's cancellation flag is
// not reset after a cancelled ParseCtx, which poisons a reused parser;
// fresh parsers avoid that entirely and keep the package safe for
// concurrent use.
package validate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// maxTreeDepth bounds AST walks against degenerate deeply nested input.
const maxTreeDepth = 1000

// Issue is one syntactic problem found in the checked text.
type Issue struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Result is the outcome of a syntax check.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

var (
	jsLang   *sitter.Language
	tsLang   *sitter.Language
	langOnce sync.Once
)

func initLanguages() {
	langOnce.Do(func() {
		jsLang = javascript.GetLanguage()
		tsLang = typescript.GetLanguage()
	})
}

// Syntax checks text as JavaScript. Converted test files are JS unless
// the caller knows otherwise; use SyntaxTS for TypeScript sources.
func Syntax(ctx context.Context, text string) (Result, error) {
	initLanguages()
	return check(ctx, jsLang, text)
}

// SyntaxTS checks text as TypeScript.
func SyntaxTS(ctx context.Context, text string) (Result, error) {
	initLanguages()
	return check(ctx, tsLang, text)
}

// SyntaxFor picks the grammar from a file path's extension.
func SyntaxFor(ctx context.Context, path, text string) (Result, error) {
	if strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx") {
		return SyntaxTS(ctx, text)
	}
	return Syntax(ctx, text)
}

func check(ctx context.Context, lang *sitter.Language, text string) (Result, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, []byte(text))
	if err != nil {
		return Result{}, fmt.Errorf("syntax check parse failed: %w", err)
	}
	defer tree.Close()

	issues := collectIssues(tree.RootNode())
	return Result{Valid: len(issues) == 0, Issues: issues}, nil
}

func collectIssues(root *sitter.Node) []Issue {
	var issues []Issue
	walk(root, 0, func(n *sitter.Node) bool {
		switch {
		case n.IsError():
			issues = append(issues, issueAt(n, "syntax error"))
			return false // children of an error node are noise
		case n.IsMissing():
			issues = append(issues, issueAt(n, fmt.Sprintf("missing %s", n.Type())))
		}
		return true
	})
	return issues
}

func issueAt(n *sitter.Node, msg string) Issue {
	p := n.StartPoint()
	return Issue{
		Line:    int(p.Row) + 1,
		Column:  int(p.Column),
		Message: msg,
	}
}

func walk(n *sitter.Node, depth int, visit func(*sitter.Node) bool) {
	if depth > maxTreeDepth {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), depth+1, visit)
	}
}
