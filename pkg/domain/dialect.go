package domain

import "fmt"

// Dialect identifies a test-authoring framework's syntax/API surface.
type Dialect string

// Known dialects. Browser-automation dialects first, BDD/unit dialects after.
const (
	DialectCypress    Dialect = "cypress"
	DialectPlaywright Dialect = "playwright"
	DialectSelenium   Dialect = "selenium"

	DialectJest    Dialect = "jest"
	DialectVitest  Dialect = "vitest"
	DialectMocha   Dialect = "mocha"
	DialectJasmine Dialect = "jasmine"
)

// DialectUnknown is returned by detection when no dialect scores above zero.
const DialectUnknown Dialect = "unknown"

// AllDialects lists every dialect the engine knows about, in stable order.
func AllDialects() []Dialect {
	return []Dialect{
		DialectCypress,
		DialectPlaywright,
		DialectSelenium,
		DialectJest,
		DialectVitest,
		DialectMocha,
		DialectJasmine,
	}
}

// ParseDialect converts a user-supplied name into a Dialect.
func ParseDialect(name string) (Dialect, error) {
	for _, d := range AllDialects() {
		if string(d) == name {
			return d, nil
		}
	}
	return DialectUnknown, fmt.Errorf("domain: unknown dialect %q", name)
}

func (d Dialect) String() string { return string(d) }

// IsBrowser reports whether the dialect drives a browser rather than a unit runner.
func (d Dialect) IsBrowser() bool {
	switch d {
	case DialectCypress, DialectPlaywright, DialectSelenium:
		return true
	default:
		return false
	}
}
