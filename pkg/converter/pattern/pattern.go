// Package pattern implements the ordered rule engine shared by all
// converters. Rules are grouped into categories; both the category order
// and the rule order inside each category are correctness requirements:
// a more specific rule (three-argument call with a trailing alias) must
// run before a general rule matching the same call with fewer arguments,
// or the general rule corrupts the specific case first. Ordered slices
// are used throughout, never maps.
package pattern

import "regexp"

// Category names a rule group. Application order follows registration
// order, not this declaration order.
type Category string

const (
	CategoryImports     Category = "imports"
	CategoryStructure   Category = "structure"
	CategoryNavigation  Category = "navigation"
	CategorySelection   Category = "selection"
	CategoryInteraction Category = "interaction"
	CategoryAssertion   Category = "assertion"
	CategoryWait        Category = "wait"
	CategoryMocking     Category = "mocking"
)

// Rule is one (match, replacement) pair. Exactly one of Template or Fn
// is set. Patterns must use bounded character classes that exclude
// parentheses/newlines for argument captures; permissive wildcards
// invite catastrophic backtracking on unclosed delimiters.
type Rule struct {
	Pattern  *regexp.Regexp
	Template string
	Fn       func(groups []string) string
}

// Apply rewrites every match of the rule in text.
func (r Rule) Apply(text string) string {
	if r.Fn != nil {
		return r.Pattern.ReplaceAllStringFunc(text, func(m string) string {
			return r.Fn(r.Pattern.FindStringSubmatch(m))
		})
	}
	return r.Pattern.ReplaceAllString(text, r.Template)
}

// T builds a template rule. The pattern is compiled eagerly so malformed
// rules fail at registration, before any text is touched.
func T(pattern, template string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Template: template}
}

// F builds a function rule for rewrites that reorder or wrap arguments.
func F(pattern string, fn func(groups []string) string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Fn: fn}
}

// Set holds the ordered rule categories for one (source, target) pair.
type Set struct {
	source string
	target string
	order  []Category
	rules  map[Category][]Rule
}

// NewSet creates an empty rule set for the given dialect pair.
func NewSet(source, target string) *Set {
	return &Set{
		source: source,
		target: target,
		rules:  make(map[Category][]Rule),
	}
}

// Source returns the source dialect name the set was registered for.
func (s *Set) Source() string { return s.source }

// Target returns the target dialect name the set was registered for.
func (s *Set) Target() string { return s.target }

// Register appends rules to a category. The first registration of a
// category fixes its position in the application order.
func (s *Set) Register(cat Category, rules ...Rule) {
	if _, seen := s.rules[cat]; !seen {
		s.order = append(s.order, cat)
	}
	s.rules[cat] = append(s.rules[cat], rules...)
}

// Categories returns the category application order.
func (s *Set) Categories() []Category {
	out := make([]Category, len(s.order))
	copy(out, s.order)
	return out
}

// Rules returns the rules of one category in registration order.
func (s *Set) Rules(cat Category) []Rule {
	out := make([]Rule, len(s.rules[cat]))
	copy(out, s.rules[cat])
	return out
}

// Apply runs every category over text, rule by rule, in registration order.
func (s *Set) Apply(text string) string {
	for _, cat := range s.order {
		text = s.ApplyCategory(cat, text)
	}
	return text
}

// ApplyCategory runs a single category's rules in registration order.
func (s *Set) ApplyCategory(cat Category, text string) string {
	for _, r := range s.rules[cat] {
		text = r.Apply(text)
	}
	return text
}

// ApplyCategories runs the named categories, in the order given, skipping
// categories the set does not define. IR-guided emitters use this to apply
// only the rules relevant to a line's node kind.
func (s *Set) ApplyCategories(text string, cats ...Category) string {
	for _, cat := range cats {
		if _, ok := s.rules[cat]; !ok {
			continue
		}
		text = s.ApplyCategory(cat, text)
	}
	return text
}
