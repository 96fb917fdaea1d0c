package domain

// Confidence describes how safely a node was translated.
// It is the only per-node state shared with downstream reporting.
type Confidence string

const (
	// ConfidenceConverted indicates a mechanical, semantics-preserving rewrite.
	ConfidenceConverted Confidence = "converted"
	// ConfidenceWarning indicates a rewrite whose semantics may differ
	// (timeouts, retry policy, network interception details).
	ConfidenceWarning Confidence = "warning"
	// ConfidenceUnconvertible indicates no mechanical equivalent exists.
	// The original text is preserved inside an annotation, never dropped.
	ConfidenceUnconvertible Confidence = "unconvertible"
)

// Modifier is a tag attached to suites and tests.
type Modifier string

const (
	ModifierSkip    Modifier = "skip"
	ModifierOnly    Modifier = "only"
	ModifierPending Modifier = "pending"
)

// HookKind identifies a lifecycle callback.
type HookKind string

const (
	HookBeforeAll  HookKind = "before-all"
	HookAfterAll   HookKind = "after-all"
	HookBeforeEach HookKind = "before-each"
	HookAfterEach  HookKind = "after-each"
)
