// Package domain defines the dialect-independent intermediate representation
// built by a parser and consumed once by an emitter. The tree is created
// fresh per file and discarded after emission; nothing here is shared or
// persisted across files.
package domain

// Node is the interface implemented by every IR node.
type Node interface {
	Kind() NodeKind
	Pos() Location
}

// TestFile is the IR root for one source file.
type TestFile struct {
	// Dialect is the declared or detected source dialect.
	Dialect Dialect `json:"dialect"`
	// Imports lists the file's import/require statements in source order.
	// Each import also appears in Body at its original position.
	Imports []*ImportStatement `json:"imports,omitempty"`
	// Body contains all top-level nodes in source order.
	Body []Node `json:"body,omitempty"`
}

// CountTests returns the total number of tests in the file, including
// tests nested inside suites.
func (f *TestFile) CountTests() int {
	count := 0
	for _, n := range f.Body {
		count += countTests(n)
	}
	return count
}

func countTests(n Node) int {
	switch v := n.(type) {
	case *TestCase:
		return 1
	case *TestSuite:
		count := 0
		for _, c := range v.Children {
			count += countTests(c)
		}
		return count
	default:
		return 0
	}
}

// MaxSuiteDepth returns the deepest suite nesting level in the file.
func (f *TestFile) MaxSuiteDepth() int {
	max := 0
	for _, n := range f.Body {
		if d := suiteDepth(n); d > max {
			max = d
		}
	}
	return max
}

func suiteDepth(n Node) int {
	s, ok := n.(*TestSuite)
	if !ok {
		return 0
	}
	max := 0
	for _, c := range s.Children {
		if d := suiteDepth(c); d > max {
			max = d
		}
	}
	return max + 1
}

// TestSuite is a named grouping (describe/context). Suites nest as a tree.
type TestSuite struct {
	Name      string     `json:"name"`
	Modifiers []Modifier `json:"modifiers,omitempty"`
	Children  []Node     `json:"children,omitempty"`
	Loc       Location   `json:"loc"`
}

func (s *TestSuite) Kind() NodeKind { return KindSuite }
func (s *TestSuite) Pos() Location  { return s.Loc }

// HasModifier reports whether the suite carries the given tag.
func (s *TestSuite) HasModifier(m Modifier) bool { return hasModifier(s.Modifiers, m) }

// TestCase is a single test owned by its suite or the file root.
type TestCase struct {
	Name       string     `json:"name"`
	Async      bool       `json:"async,omitempty"`
	Modifiers  []Modifier `json:"modifiers,omitempty"`
	Body       []Node     `json:"body,omitempty"`
	Loc        Location   `json:"loc"`
	Confidence Confidence `json:"confidence"`
}

func (t *TestCase) Kind() NodeKind { return KindTest }
func (t *TestCase) Pos() Location  { return t.Loc }

// HasModifier reports whether the test carries the given tag.
func (t *TestCase) HasModifier(m Modifier) bool { return hasModifier(t.Modifiers, m) }

// Hook is a lifecycle callback owned by its suite (or the file root).
type Hook struct {
	HookKind HookKind `json:"hookKind"`
	Async    bool     `json:"async,omitempty"`
	Body     []Node   `json:"body,omitempty"`
	Loc      Location `json:"loc"`
}

func (h *Hook) Kind() NodeKind { return KindHook }
func (h *Hook) Pos() Location  { return h.Loc }

// Assertion is one expectation.
type Assertion struct {
	AssertKind AssertionKind `json:"assertKind"`
	Negated    bool          `json:"negated,omitempty"`
	// Subject is the asserted expression text (e.g. "result.items").
	Subject string `json:"subject"`
	// Expected is the expected-value text; empty for nullary matchers.
	Expected   string     `json:"expected,omitempty"`
	Loc        Location   `json:"loc"`
	Confidence Confidence `json:"confidence"`
}

func (a *Assertion) Kind() NodeKind { return KindAssertion }
func (a *Assertion) Pos() Location  { return a.Loc }

// MockCall is a test-double operation.
type MockCall struct {
	Op MockKind `json:"op"`
	// Target is the mocked module path, object member, or spy variable;
	// empty when the operation has no explicit target.
	Target string `json:"target,omitempty"`
	// NeedsAsync marks operations whose target-dialect equivalent is
	// asynchronous (e.g. vi.importActual).
	NeedsAsync bool `json:"needsAsync,omitempty"`
	// NoAnalog marks framework-specific operations with no target analog.
	NoAnalog bool `json:"noAnalog,omitempty"`
	// TodoID is the stable annotation identifier used when NoAnalog is
	// set; Advice is the suggested remediation.
	TodoID     string     `json:"todoId,omitempty"`
	Advice     string     `json:"advice,omitempty"`
	Loc        Location   `json:"loc"`
	Confidence Confidence `json:"confidence"`
}

func (m *MockCall) Kind() NodeKind { return KindMockCall }
func (m *MockCall) Pos() Location  { return m.Loc }

// ImportStatement is a dependency declaration.
type ImportStatement struct {
	ImportKind ImportKind `json:"importKind"`
	Module     string     `json:"module"`
	TypeOnly   bool       `json:"typeOnly,omitempty"`
	Loc        Location   `json:"loc"`
	Confidence Confidence `json:"confidence"`
}

func (i *ImportStatement) Kind() NodeKind { return KindImport }
func (i *ImportStatement) Pos() Location  { return i.Loc }

// Comment carries a source comment. PreserveExact forbids any rewriting
// (license headers, tool directives).
type Comment struct {
	CommentKind   CommentKind `json:"commentKind"`
	Text          string      `json:"text"`
	PreserveExact bool        `json:"preserveExact,omitempty"`
	Loc           Location    `json:"loc"`
}

func (c *Comment) Kind() NodeKind { return KindComment }
func (c *Comment) Pos() Location  { return c.Loc }

// RawCode is the catch-all for statements the parser does not recognize.
// Raw nodes guarantee every input line survives into the IR.
type RawCode struct {
	Text       string     `json:"text"`
	Loc        Location   `json:"loc"`
	Confidence Confidence `json:"confidence"`
}

func (r *RawCode) Kind() NodeKind { return KindRawCode }
func (r *RawCode) Pos() Location  { return r.Loc }

func hasModifier(mods []Modifier, m Modifier) bool {
	for _, v := range mods {
		if v == m {
			return true
		}
	}
	return false
}
