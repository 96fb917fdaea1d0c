// Package converter resolves (source, target) dialect pairs to working
// convert pipelines over an explicit registry with no ambient global
// state, so the engine is trivially testable and safe to share across
// concurrent calls.
package converter

import (
	"sync"

	"github.com/testshift/core/pkg/converter/detect"
	"github.com/testshift/core/pkg/converter/pattern"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
)

// Definition describes one dialect: its classification tables, its
// detection profile, and rule-set constructors for each target dialect
// it can convert to.
type Definition struct {
	Dialect domain.Dialect
	Syntax  *scan.Syntax
	Profile detect.Profile
	// Targets maps a target dialect to its rule-set constructor. The
	// pairwise matrix of registered combinations lives here; any pair
	// absent from it is a configuration error.
	Targets map[domain.Dialect]func() *pattern.Set
}

// Registry manages registered dialect definitions. Registration happens
// once at startup; afterwards the registry is read-only and safe for
// concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs []*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a dialect definition.
func (r *Registry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs = append(r.defs, def)
}

// Find returns the definition for a dialect, or nil.
func (r *Registry) Find(d domain.Dialect) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, def := range r.defs {
		if def.Dialect == d {
			return def
		}
	}
	return nil
}

// All returns a copy of the registered definitions.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Pairs returns every registered (source, target) combination.
func (r *Registry) Pairs() [][2]domain.Dialect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var pairs [][2]domain.Dialect
	for _, def := range r.defs {
		for target := range def.Targets {
			pairs = append(pairs, [2]domain.Dialect{def.Dialect, target})
		}
	}
	return pairs
}

// Detector builds a detector over every registered dialect's profile.
func (r *Registry) Detector() *detect.Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profiles := make([]detect.Profile, 0, len(r.defs))
	for _, def := range r.defs {
		profiles = append(profiles, def.Profile)
	}
	return detect.NewDetector(profiles)
}
