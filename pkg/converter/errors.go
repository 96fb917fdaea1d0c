package converter

import "errors"

// Configuration errors. These fail fast, before any text is touched; the
// engine never raises for content it merely does not understand.
var (
	// ErrUnknownDialect is returned when a dialect has no registered definition.
	ErrUnknownDialect = errors.New("converter: unknown dialect")
	// ErrUnregisteredPair is returned when no rule set exists for the pair.
	ErrUnregisteredPair = errors.New("converter: no converter registered for dialect pair")
	// ErrSameDialect is returned when source and target are identical.
	ErrSameDialect = errors.New("converter: source and target dialects are identical")
)
