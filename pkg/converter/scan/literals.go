package scan

// literalState carries string/comment context across lines. Block comments
// and template literals are the only constructs that span lines; single
// and double quoted strings are clamped to their line so an unterminated
// quote in malformed input cannot swallow the rest of the file.
type literalState struct {
	inBlockComment bool
	inTemplate     bool
}

// deltas holds per-line bracket balance, counted outside string/template
// literals and comments. braceOpen counts opening braces alone, so a
// balanced line with a body ({ ... }) is distinguishable from one with
// no braces at all.
type deltas struct {
	brace     int
	braceOpen int
	paren     int
	bracket   int
}

// InlineBody reports whether an opener line also closes the block it
// opens, leaving body statements on the same line.
func InlineBody(line string) bool {
	st := &literalState{}
	d := scanLine(line, st)
	return d.braceOpen > 0 && d.brace <= 0
}

// scanLine computes bracket deltas for one line and advances the literal
// state machine.
func scanLine(line string, st *literalState) deltas {
	var d deltas
	i := 0
	n := len(line)

	for i < n {
		c := line[i]

		if st.inBlockComment {
			if c == '*' && i+1 < n && line[i+1] == '/' {
				st.inBlockComment = false
				i += 2
				continue
			}
			i++
			continue
		}

		if st.inTemplate {
			if c == '\\' {
				i += 2
				continue
			}
			if c == '`' {
				st.inTemplate = false
			}
			i++
			continue
		}

		switch c {
		case '/':
			if i+1 < n {
				switch line[i+1] {
				case '/':
					return d // rest of line is a comment
				case '*':
					st.inBlockComment = true
					i += 2
					continue
				}
			}
		case '\'', '"':
			j := skipQuoted(line, i)
			if j < 0 {
				return d // unterminated string: ignore rest of line
			}
			i = j
			continue
		case '`':
			st.inTemplate = true
		case '{':
			d.brace++
			d.braceOpen++
		case '}':
			d.brace--
		case '(':
			d.paren++
		case ')':
			d.paren--
		case '[':
			d.bracket++
		case ']':
			d.bracket--
		}
		i++
	}
	return d
}

// skipQuoted returns the index just past the closing quote, or -1 when the
// string does not terminate on this line.
func skipQuoted(line string, start int) int {
	quote := line[start]
	i := start + 1
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1
		default:
			i++
		}
	}
	return -1
}

// balancedArg extracts the content of the parenthesized group opening at
// openIdx (which must point at '('). Returns the inner text and whether
// the group closed within the text.
func balancedArg(text string, openIdx int) (string, bool) {
	if openIdx < 0 || openIdx >= len(text) || text[openIdx] != '(' {
		return "", false
	}
	depth := 0
	i := openIdx
	for i < len(text) {
		switch text[i] {
		case '\'', '"':
			j := skipQuoted(text, i)
			if j < 0 {
				return "", false
			}
			i = j
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return text[openIdx+1 : i], true
			}
		}
		i++
	}
	return "", false
}
