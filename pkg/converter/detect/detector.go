// Package detect implements additive weighted-signal dialect detection.
//
// Distinctive, dialect-unique API calls and imports add large weights;
// structural keywords shared across dialects (describe/it/expect openers)
// add small weights; confirmed strong signals of a different dialect
// subtract weight, which disambiguates near-identical surface syntax such
// as jest versus vitest. Scores clamp to [0,100]; empty input scores 0
// for every dialect. Detection has no side effects.
package detect

import (
	"regexp"
	"sort"
	"strings"

	"github.com/testshift/core/pkg/domain"
)

// Weight bands. Strong signals are unique to one dialect; weak signals
// are shared boilerplate worth only a nudge.
const (
	WeightImport  = 50
	WeightStrong  = 30
	WeightWeak    = 5
	crossPenalty  = 20
	maxConfidence = 100
)

// Signal is one detection pattern with its weight.
type Signal struct {
	Pattern *regexp.Regexp
	Weight  int
	// Desc names the matched API for evidence reporting.
	Desc string
}

// Strong builds a dialect-unique signal.
func Strong(pattern, desc string) Signal {
	return Signal{Pattern: regexp.MustCompile(pattern), Weight: WeightStrong, Desc: desc}
}

// Weak builds a shared-boilerplate signal.
func Weak(pattern, desc string) Signal {
	return Signal{Pattern: regexp.MustCompile(pattern), Weight: WeightWeak, Desc: desc}
}

// Profile is one dialect's detection surface.
type Profile struct {
	Dialect domain.Dialect
	// Imports are runtime module paths; a matching import is the
	// strongest single signal.
	Imports []string
	Strong  []Signal
	Weak    []Signal
}

// Evidence records one matched signal for diagnostics.
type Evidence struct {
	Desc   string
	Weight int
}

// Result is the outcome of detection for one dialect.
type Result struct {
	Dialect    domain.Dialect
	Confidence int
	Evidence   []Evidence
}

// IsDetected reports whether any signal matched at all.
func (r Result) IsDetected() bool {
	return r.Dialect != domain.DialectUnknown && r.Confidence > 0
}

// Unknown is the zero result.
func Unknown() Result {
	return Result{Dialect: domain.DialectUnknown}
}

// Detector scores text against registered dialect profiles.
type Detector struct {
	profiles []Profile
}

// NewDetector creates a detector over the given profiles. The profile
// slice is treated as read-only afterwards.
func NewDetector(profiles []Profile) *Detector {
	return &Detector{profiles: profiles}
}

var jsImportPattern = regexp.MustCompile(`(?:import\s+[^'"\n]*?from|require\()\s*['"]([^'"\n]+)['"]`)

// extractImports pulls module paths from import/require statements.
func extractImports(text string) []string {
	matches := jsImportPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	imports := make([]string, 0, len(matches))
	for _, m := range matches {
		imports = append(imports, m[1])
	}
	return imports
}

// Score rates text against a single dialect, applying the cross-dialect
// penalty for strong signals of other registered dialects.
func (d *Detector) Score(text string, dialect domain.Dialect) Result {
	results := d.scoreAll(text)
	for _, r := range results {
		if r.Dialect == dialect {
			return r
		}
	}
	return Unknown()
}

// Detect returns the best-scoring dialect for text.
func (d *Detector) Detect(text string) Result {
	results := d.scoreAll(text)
	if len(results) == 0 {
		return Unknown()
	}

	best := Unknown()
	for _, r := range results {
		if r.Confidence > best.Confidence {
			best = r
		}
	}
	if best.Confidence <= 0 {
		return Unknown()
	}
	return best
}

// DetectFromContent is an alias of Detect kept for the factory surface:
// it picks the best match across every registered dialect.
func (d *Detector) DetectFromContent(text string) Result {
	return d.Detect(text)
}

func (d *Detector) scoreAll(text string) []Result {
	if strings.TrimSpace(text) == "" {
		results := make([]Result, 0, len(d.profiles))
		for _, p := range d.profiles {
			results = append(results, Result{Dialect: p.Dialect})
		}
		return results
	}

	imports := extractImports(text)

	raw := make([]Result, 0, len(d.profiles))
	strongHits := make(map[domain.Dialect]bool, len(d.profiles))

	for _, p := range d.profiles {
		r := Result{Dialect: p.Dialect}

		for _, imp := range imports {
			if matchesModule(imp, p.Imports) {
				r.Evidence = append(r.Evidence, Evidence{Desc: "import " + imp, Weight: WeightImport})
				r.Confidence += WeightImport
				strongHits[p.Dialect] = true
				break
			}
		}

		for _, sig := range p.Strong {
			if sig.Pattern.MatchString(text) {
				r.Evidence = append(r.Evidence, Evidence{Desc: sig.Desc, Weight: sig.Weight})
				r.Confidence += sig.Weight
				strongHits[p.Dialect] = true
			}
		}

		for _, sig := range p.Weak {
			if sig.Pattern.MatchString(text) {
				r.Evidence = append(r.Evidence, Evidence{Desc: sig.Desc, Weight: sig.Weight})
				r.Confidence += sig.Weight
			}
		}

		raw = append(raw, r)
	}

	// Confirmed strong signals of a different dialect subtract weight.
	for i := range raw {
		for dialect, hit := range strongHits {
			if hit && dialect != raw[i].Dialect {
				raw[i].Confidence -= crossPenalty
			}
		}
		if raw[i].Confidence < 0 {
			raw[i].Confidence = 0
		}
		if raw[i].Confidence > maxConfidence {
			raw[i].Confidence = maxConfidence
		}
	}

	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].Confidence > raw[j].Confidence
	})
	return raw
}

func matchesModule(module string, candidates []string) bool {
	for _, c := range candidates {
		if module == c || strings.HasPrefix(module, c+"/") {
			return true
		}
	}
	return false
}
