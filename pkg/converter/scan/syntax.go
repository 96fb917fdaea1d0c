// Package scan implements the shared line scanner used by every dialect
// parser. It deliberately avoids a full language grammar: test-file
// boilerplate is syntactically narrow, so a brace-depth line scan with
// dialect-specific classification tables is sufficient and keeps the
// engine linear in source length. Unrecognized lines never fail; they
// degrade to raw passthrough nodes, so any input yields a well-formed tree.
package scan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/testshift/core/pkg/domain"
)

// HookOpener maps a dialect hook function to its lifecycle kind.
type HookOpener struct {
	Name string
	Kind domain.HookKind
}

// AssertionSignature classifies an assertion by a dialect-specific token.
// Tables are matched most-specific-first; list longer tokens before
// shorter ones that share a prefix.
type AssertionSignature struct {
	Token   string
	Kind    domain.AssertionKind
	Negated bool
}

// MockSignature classifies a test-double operation by a call prefix.
// NoAnalog operations carry a stable TodoID and remediation Advice for
// the annotator. Risky marks operations whose translation may change
// semantics (timeout/retry tuning); they convert with a warning.
type MockSignature struct {
	Token      string
	Op         domain.MockKind
	NeedsAsync bool
	Risky      bool
	NoAnalog   bool
	TodoID     string
	Advice     string
}

// Config declares a dialect's classification tables.
type Config struct {
	Dialect         domain.Dialect
	SuiteOpeners    []string
	TestOpeners     []string
	Hooks           []HookOpener
	Assertions      []AssertionSignature
	Mocks           []MockSignature
	NegationMarkers []string
	// RuntimeModules lists module paths (exact or prefix/) that identify
	// the dialect's own runtime import, as opposed to arbitrary libraries.
	RuntimeModules []string
}

// Syntax is a compiled Config ready for parsing. Compile once per dialect
// definition; Syntax values are read-only afterwards and safe to share
// across concurrent Parse calls.
type Syntax struct {
	cfg     Config
	suiteRe *regexp.Regexp
	testRe  *regexp.Regexp
	hookRes []hookPattern
}

type hookPattern struct {
	re   *regexp.Regexp
	kind domain.HookKind
}

// New compiles the classification tables. Malformed opener names fail
// here, before any text is touched.
func New(cfg Config) *Syntax {
	s := &Syntax{cfg: cfg}
	if len(cfg.SuiteOpeners) > 0 {
		s.suiteRe = compileOpener(cfg.SuiteOpeners, `skip|only|each`)
	}
	if len(cfg.TestOpeners) > 0 {
		s.testRe = compileOpener(cfg.TestOpeners, `skip|only|todo|each|concurrent`)
	}

	hooks := make([]HookOpener, len(cfg.Hooks))
	copy(hooks, cfg.Hooks)
	// Longer names first so beforeEach never matches the before pattern.
	sort.SliceStable(hooks, func(i, j int) bool {
		return len(hooks[i].Name) > len(hooks[j].Name)
	})
	for _, h := range hooks {
		re := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(h.Name) + `\s*\(`)
		s.hookRes = append(s.hookRes, hookPattern{re: re, kind: h.Kind})
	}
	return s
}

// Dialect returns the dialect these tables describe.
func (s *Syntax) Dialect() domain.Dialect { return s.cfg.Dialect }

// RuntimeModules returns the dialect's runtime module paths.
func (s *Syntax) RuntimeModules() []string { return s.cfg.RuntimeModules }

func compileOpener(names []string, modAlts string) *regexp.Regexp {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	// Optional x/f prefix covers the xdescribe/fit alias family.
	expr := `^\s*(?:export\s+)?(x|f)?(` + strings.Join(quoted, "|") + `)(?:\.(` + modAlts + `))?\s*(?:\(|\.` + "`" + `)`
	return regexp.MustCompile(expr)
}

// matchOpener returns the modifiers implied by an opener line.
func matchOpener(re *regexp.Regexp, line string) (mods []domain.Modifier, ok bool) {
	if re == nil {
		return nil, false
	}
	m := re.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	switch m[1] {
	case "x":
		mods = append(mods, domain.ModifierSkip)
	case "f":
		mods = append(mods, domain.ModifierOnly)
	}
	switch m[3] {
	case "skip":
		mods = append(mods, domain.ModifierSkip)
	case "only":
		mods = append(mods, domain.ModifierOnly)
	case "todo":
		mods = append(mods, domain.ModifierPending)
	}
	return mods, true
}

var nameLiteralRe = regexp.MustCompile("'((?:[^'\\\\\\n]|\\\\.)*)'|\"((?:[^\"\\\\\\n]|\\\\.)*)\"|`([^`\\n]*)`")

// extractName returns the first string literal in text.
func extractName(text string) string {
	m := nameLiteralRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

func (s *Syntax) isRuntimeModule(module string) bool {
	for _, rm := range s.cfg.RuntimeModules {
		if module == rm || strings.HasPrefix(module, rm+"/") {
			return true
		}
	}
	return false
}
