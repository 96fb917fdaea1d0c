package converter

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/testshift/core/pkg/converter/detect"
	"github.com/testshift/core/pkg/converter/emit"
	"github.com/testshift/core/pkg/converter/scan"
	"github.com/testshift/core/pkg/domain"
	"github.com/testshift/core/pkg/validate"
)

// Converter is a working convert pipeline for one (source, target) pair.
// Convert is synchronous and stateless per call: a pure function of its
// input with no suspension points, no shared mutable state, and no I/O.
// One Converter may serve concurrent calls; only the running conversion
// counter is shared, and it is atomic.
type Converter struct {
	source      domain.Dialect
	target      domain.Dialect
	syntax      *scan.Syntax
	emitter     *emit.Emitter
	detector    *detect.Detector
	conversions atomic.Int64
}

// Stats exposes running counters read by batch/report collaborators.
type Stats struct {
	Conversions int64 `json:"conversions"`
}

// New resolves a (source, target) pair against the registry's pairwise
// matrix. An unknown dialect, an unregistered pair, or source == target
// fails here, before any text is touched.
func (r *Registry) New(source, target domain.Dialect) (*Converter, error) {
	if source == target {
		return nil, fmt.Errorf("%w: %s", ErrSameDialect, source)
	}

	srcDef := r.Find(source)
	if srcDef == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, source)
	}
	if r.Find(target) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, target)
	}

	mkSet, ok := srcDef.Targets[target]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", ErrUnregisteredPair, source, target)
	}

	return &Converter{
		source:   source,
		target:   target,
		syntax:   srcDef.Syntax,
		emitter:  emit.New(mkSet()),
		detector: r.Detector(),
	}, nil
}

// Convert parses text into the IR and emits target-dialect text with
// inline annotations for unconvertible or risky constructs. It never
// fails on content: unrecognized input degrades to raw passthrough.
func (c *Converter) Convert(text string) string {
	res := c.syntax.Parse(text)
	out := c.emitter.Emit(res, text)
	c.conversions.Add(1)
	return out
}

// Parse exposes the IR for one text, for tooling that inspects structure
// without emitting.
func (c *Converter) Parse(text string) *scan.Result {
	return c.syntax.Parse(text)
}

// Detect scores text across every registered dialect and returns the
// best match. Used by callers when the source dialect is unspecified.
func (c *Converter) Detect(text string) detect.Result {
	return c.detector.Detect(text)
}

// ValidateSyntax runs the lightweight post-conversion syntax check. It
// never executes tests.
func (c *Converter) ValidateSyntax(ctx context.Context, text string) (validate.Result, error) {
	return validate.Syntax(ctx, text)
}

// SourceDialect returns the pair's source dialect.
func (c *Converter) SourceDialect() domain.Dialect { return c.source }

// TargetDialect returns the pair's target dialect.
func (c *Converter) TargetDialect() domain.Dialect { return c.target }

// GetStats returns the running conversion count.
func (c *Converter) GetStats() Stats {
	return Stats{Conversions: c.conversions.Load()}
}
