package domain

// Location identifies where a node came from in the source text.
// Line numbers are 1-based; StartCol is a 0-based byte offset.
type Location struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
	StartCol  int `json:"startCol"`
}

// Span reports the number of source lines this location covers.
func (l Location) Span() int {
	if l.EndLine < l.StartLine {
		return 1
	}
	return l.EndLine - l.StartLine + 1
}
