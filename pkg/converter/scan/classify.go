package scan

import (
	"regexp"
	"strings"

	"github.com/testshift/core/pkg/domain"
)

// classifyOpener recognizes suite, test, and hook openers. Suites are
// checked before tests so compound openers like test.describe never fall
// through to the test pattern.
func (s *Syntax) classifyOpener(raw, trimmed string, line int) (domain.Node, bool) {
	loc := domain.Location{StartLine: line, EndLine: line, StartCol: indentWidth(raw)}

	if mods, ok := matchOpener(s.suiteRe, trimmed); ok {
		return &domain.TestSuite{
			Name:      extractName(trimmed),
			Modifiers: mods,
			Loc:       loc,
		}, true
	}

	if mods, ok := matchOpener(s.testRe, trimmed); ok {
		if isPendingOpener(trimmed) && !hasMod(mods, domain.ModifierPending) {
			mods = append(mods, domain.ModifierPending)
		}
		return &domain.TestCase{
			Name:       extractName(trimmed),
			Async:      isAsyncOpener(trimmed),
			Modifiers:  mods,
			Loc:        loc,
			Confidence: domain.ConfidenceConverted,
		}, true
	}

	for _, h := range s.hookRes {
		if h.re.MatchString(trimmed) {
			return &domain.Hook{
				HookKind: h.kind,
				Async:    isAsyncOpener(trimmed),
				Loc:      loc,
			}, true
		}
	}

	return nil, false
}

// isPendingOpener reports a test declared without a callback, the
// mocha/jasmine pending marker: it('not yet implemented');
func isPendingOpener(text string) bool {
	return !strings.Contains(text, "=>") && !strings.Contains(text, "function")
}

func isAsyncOpener(text string) bool {
	return strings.Contains(text, "async ") || strings.Contains(text, "async(")
}

func hasMod(mods []domain.Modifier, m domain.Modifier) bool {
	for _, v := range mods {
		if v == m {
			return true
		}
	}
	return false
}

var (
	importRe  = regexp.MustCompile(`^\s*import\s`)
	typeOnly  = regexp.MustCompile(`^\s*import\s+type\s`)
	requireRe = regexp.MustCompile(`^\s*(?:const|let|var)\s+[^=\n]+=\s*require\s*\(`)
)

// classifyStatement handles everything that is not a comment or a block
// opener: imports, assertions, mock operations, and raw code, in that
// order. Assertions are checked before mocks so spy expectations like
// expect(spy.calledOnce).to.be.true classify as assertions even though
// they mention a test double.
func (s *Syntax) classifyStatement(text string, loc domain.Location) domain.Node {
	trimmed := strings.TrimSpace(text)

	if importRe.MatchString(trimmed) || requireRe.MatchString(trimmed) {
		module := extractName(trimmed)
		kind := domain.ImportLibrary
		if s.isRuntimeModule(module) {
			kind = domain.ImportRuntime
		}
		return &domain.ImportStatement{
			ImportKind: kind,
			Module:     module,
			TypeOnly:   typeOnly.MatchString(trimmed),
			Loc:        loc,
			Confidence: domain.ConfidenceConverted,
		}
	}

	if a := s.classifyAssertion(trimmed, loc); a != nil {
		return a
	}

	if m := s.classifyMock(trimmed, loc); m != nil {
		return m
	}

	return &domain.RawCode{
		Text:       text,
		Loc:        loc,
		Confidence: domain.ConfidenceConverted,
	}
}

// classifyAssertion matches the fixed, most-specific-first signature list.
func (s *Syntax) classifyAssertion(text string, loc domain.Location) *domain.Assertion {
	for _, sig := range s.cfg.Assertions {
		idx := strings.Index(text, sig.Token)
		if idx < 0 {
			continue
		}

		negated := sig.Negated
		if !negated {
			for _, marker := range s.cfg.NegationMarkers {
				if strings.Contains(text, marker) {
					negated = true
					break
				}
			}
		}

		return &domain.Assertion{
			AssertKind: sig.Kind,
			Negated:    negated,
			Subject:    assertionSubject(text),
			Expected:   assertionExpected(text, sig.Token, idx),
			Loc:        loc,
			Confidence: domain.ConfidenceConverted,
		}
	}
	return nil
}

// assertionSubject extracts the first balanced call argument, which for
// expect-style and chain-style assertions is the asserted expression.
func assertionSubject(text string) string {
	open := strings.Index(text, "(")
	if open < 0 {
		return ""
	}
	inner, ok := balancedArg(text, open)
	if !ok {
		return ""
	}
	return strings.TrimSpace(inner)
}

// assertionExpected extracts the argument of the matcher call itself.
func assertionExpected(text, token string, idx int) string {
	rest := text[idx:]
	open := strings.Index(rest, "(")
	if open < 0 {
		return ""
	}
	inner, ok := balancedArg(rest, open)
	if !ok {
		return ""
	}
	return strings.TrimSpace(inner)
}

func (s *Syntax) classifyMock(text string, loc domain.Location) *domain.MockCall {
	for _, sig := range s.cfg.Mocks {
		if !strings.Contains(text, sig.Token) {
			continue
		}

		confidence := domain.ConfidenceConverted
		if sig.NoAnalog {
			confidence = domain.ConfidenceUnconvertible
		} else if sig.NeedsAsync || sig.Risky {
			confidence = domain.ConfidenceWarning
		}

		return &domain.MockCall{
			Op:         sig.Op,
			Target:     extractName(text[strings.Index(text, sig.Token):]),
			NeedsAsync: sig.NeedsAsync,
			NoAnalog:   sig.NoAnalog,
			TodoID:     sig.TodoID,
			Advice:     sig.Advice,
			Loc:        loc,
			Confidence: confidence,
		}
	}
	return nil
}
