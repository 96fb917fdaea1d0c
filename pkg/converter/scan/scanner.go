package scan

import (
	"strings"

	"github.com/testshift/core/pkg/domain"
)

// maxJoinLines bounds multi-line construct re-joining so an unresolvable
// paren imbalance cannot stall the scan.
const maxJoinLines = 40

// Result is the outcome of parsing one file: the IR tree plus the
// line→node map consumed by IR-guided emitters.
type Result struct {
	File *domain.TestFile
	// Lines maps 1-based source line numbers to the node that consumed
	// them. Blank lines are unmapped and pass through emission untouched.
	Lines map[int]domain.Node
}

// frame is an open container on the nesting stack. A container stays open
// while the running brace depth exceeds the depth at which it opened.
type frame struct {
	node      domain.Node
	openDepth int
}

// Parse line-scans source into the IR. It never fails: unrecognized or
// malformed lines degrade to RawCode and scanning continues.
func (s *Syntax) Parse(source string) *Result {
	lines := strings.Split(source, "\n")
	file := &domain.TestFile{Dialect: s.cfg.Dialect}
	res := &Result{File: file, Lines: make(map[int]domain.Node, len(lines))}

	depth := 0
	var stack []frame
	st := &literalState{}

	attach := func(n domain.Node) {
		if len(stack) == 0 {
			file.Body = append(file.Body, n)
			return
		}
		switch c := stack[len(stack)-1].node.(type) {
		case *domain.TestSuite:
			c.Children = append(c.Children, n)
		case *domain.TestCase:
			c.Body = append(c.Body, n)
		case *domain.Hook:
			c.Body = append(c.Body, n)
		}
	}

	i := 0
	for i < len(lines) {
		raw := lines[i]
		startLine := i + 1
		trimmed := strings.TrimSpace(raw)

		// Lines that begin inside an open template literal are string
		// data. Advance the literal state but leave them unmapped so no
		// rule ever rewrites them.
		if st.inTemplate {
			d := scanLine(raw, st)
			depth += d.brace
			i++
			stack = popClosed(stack, depth)
			continue
		}

		// Block comments (and their continuations) are consumed as one node.
		if st.inBlockComment || strings.HasPrefix(trimmed, "/*") {
			node, consumed := s.consumeBlockComment(lines, i, st, startLine)
			attach(node)
			mapLines(res, startLine, consumed, node)
			i += consumed
			continue
		}

		if trimmed == "" {
			_ = scanLine(raw, st)
			i++
			continue
		}

		if strings.HasPrefix(trimmed, "//") {
			d := scanLine(raw, st)
			depth += d.brace
			node := s.classifyComment(trimmed, startLine)
			attach(node)
			res.Lines[startLine] = node
			i++
			stack = popClosed(stack, depth)
			continue
		}

		// Container openers are never re-joined: their block is tracked by
		// brace depth, not paren balance.
		if node, isContainer := s.classifyOpener(raw, trimmed, startLine); isContainer {
			d := scanLine(raw, st)
			attach(node)
			res.Lines[startLine] = node
			if d.brace > 0 {
				stack = append(stack, frame{node: node, openDepth: depth})
			}
			depth += d.brace
			i++
			stack = popClosed(stack, depth)
			continue
		}

		// Everything else: re-join multi-line constructs by paren/bracket
		// balance, then classify the joined text once.
		joined, consumed, braceSum := s.joinConstruct(lines, i, st)
		node := s.classifyStatement(joined, domain.Location{
			StartLine: startLine,
			EndLine:   startLine + consumed - 1,
			StartCol:  indentWidth(raw),
		})
		if imp, ok := node.(*domain.ImportStatement); ok {
			file.Imports = append(file.Imports, imp)
		}
		attach(node)
		mapLines(res, startLine, consumed, node)
		depth += braceSum
		i += consumed
		stack = popClosed(stack, depth)
	}

	return res
}

// popClosed pops every container whose block has closed: running depth
// back at or below the depth where the container opened.
func popClosed(stack []frame, depth int) []frame {
	for len(stack) > 0 && depth <= stack[len(stack)-1].openDepth {
		stack = stack[:len(stack)-1]
	}
	return stack
}

func mapLines(res *Result, start, count int, node domain.Node) {
	for l := start; l < start+count; l++ {
		res.Lines[l] = node
	}
}

// joinConstruct greedily re-joins lines while paren/bracket balance stays
// open, bounded by maxJoinLines. Returns the joined text, the number of
// lines consumed, and the net brace delta across them.
func (s *Syntax) joinConstruct(lines []string, start int, st *literalState) (string, int, int) {
	d := scanLine(lines[start], st)
	paren, bracket, brace := d.paren, d.bracket, d.brace
	consumed := 1

	if paren <= 0 && bracket <= 0 {
		return lines[start], consumed, brace
	}

	var b strings.Builder
	b.WriteString(lines[start])
	for paren+bracket > 0 && consumed < maxJoinLines && start+consumed < len(lines) {
		next := lines[start+consumed]
		nd := scanLine(next, st)
		paren += nd.paren
		bracket += nd.bracket
		brace += nd.brace
		b.WriteString("\n")
		b.WriteString(next)
		consumed++
	}
	return b.String(), consumed, brace
}

func (s *Syntax) consumeBlockComment(lines []string, start int, st *literalState, startLine int) (domain.Node, int) {
	consumed := 0
	var b strings.Builder
	for start+consumed < len(lines) {
		line := lines[start+consumed]
		if consumed > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
		_ = scanLine(line, st)
		consumed++
		if !st.inBlockComment {
			break
		}
	}

	text := b.String()
	kind := domain.CommentInline
	preserve := false
	if isLicenseText(text) && startLine <= 5 {
		kind = domain.CommentLicense
		preserve = true
	} else if isDirectiveText(text) {
		kind = domain.CommentDirective
		preserve = true
	}

	return &domain.Comment{
		CommentKind:   kind,
		Text:          text,
		PreserveExact: preserve,
		Loc:           domain.Location{StartLine: startLine, EndLine: startLine + consumed - 1},
	}, consumed
}

func (s *Syntax) classifyComment(trimmed string, line int) *domain.Comment {
	kind := domain.CommentInline
	preserve := false
	switch {
	case isDirectiveText(trimmed):
		kind = domain.CommentDirective
		preserve = true
	case isLicenseText(trimmed) && line <= 5:
		kind = domain.CommentLicense
		preserve = true
	}
	return &domain.Comment{
		CommentKind:   kind,
		Text:          trimmed,
		PreserveExact: preserve,
		Loc:           domain.Location{StartLine: line, EndLine: line},
	}
}

func isLicenseText(text string) bool {
	return strings.Contains(text, "Copyright") ||
		strings.Contains(text, "SPDX-License-Identifier") ||
		strings.Contains(text, "Licensed under")
}

var directivePrefixes = []string{
	"// eslint",
	"/* eslint",
	"// prettier",
	"// @ts-",
	"/// <reference",
	"// biome-ignore",
	"/* global",
}

func isDirectiveText(text string) bool {
	for _, p := range directivePrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
