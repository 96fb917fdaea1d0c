package domain

// NodeKind discriminates IR node types. Emitters switch over NodeKind
// exhaustively; unrecognized input always lands on KindRawCode.
type NodeKind string

const (
	KindSuite      NodeKind = "suite"
	KindTest       NodeKind = "test"
	KindHook       NodeKind = "hook"
	KindAssertion  NodeKind = "assertion"
	KindMockCall   NodeKind = "mock"
	KindImport     NodeKind = "import"
	KindComment    NodeKind = "comment"
	KindRawCode    NodeKind = "raw"
)

// AssertionKind is the closed set of expectation families the engine
// understands. Classification picks the most specific matching kind.
type AssertionKind string

const (
	AssertEqual      AssertionKind = "equal"
	AssertStrictEq   AssertionKind = "strict-equal"
	AssertDeepEqual  AssertionKind = "deep-equal"
	AssertTruthy     AssertionKind = "truthy"
	AssertFalsy      AssertionKind = "falsy"
	AssertNull       AssertionKind = "null"
	AssertUndefined  AssertionKind = "undefined"
	AssertDefined    AssertionKind = "defined"
	AssertTypeOf     AssertionKind = "type-of"
	AssertInstanceOf AssertionKind = "instance-of"
	AssertContains   AssertionKind = "contains"
	AssertLength     AssertionKind = "length"
	AssertGreater    AssertionKind = "greater"
	AssertLess       AssertionKind = "less"
	AssertMatch      AssertionKind = "match"
	AssertThrows     AssertionKind = "throws"
	AssertCalled     AssertionKind = "called"
	AssertCallCount  AssertionKind = "call-count"
	AssertCalledWith AssertionKind = "called-with"
	AssertSnapshot   AssertionKind = "snapshot"
	AssertResolves   AssertionKind = "resolves"
	AssertRejects    AssertionKind = "rejects"

	// Browser-only expectation families.
	AssertVisible AssertionKind = "visible"
	AssertExists  AssertionKind = "exists"
	AssertText    AssertionKind = "text"
	AssertValue   AssertionKind = "value"
	AssertURL     AssertionKind = "url"
)

// MockKind is the closed set of test-double operations.
type MockKind string

const (
	MockCreate        MockKind = "create"         // bare function mock/spy/stub
	MockSpyOn         MockKind = "spy-on"         // wrap an existing method
	MockModule        MockKind = "module"         // whole-module replacement
	MockStubReturn    MockKind = "stub-return"    // configure a return/resolve value
	MockTimersInstall MockKind = "timers-install" // fake timer installation
	MockTimersAdvance MockKind = "timers-advance"
	MockTimersRestore MockKind = "timers-restore"
	MockReset         MockKind = "reset"     // clear/reset/restore all mocks
	MockIntercept     MockKind = "intercept" // network interception
	MockConfig        MockKind = "config"    // framework tuning call (timeout, retries)
)

// ImportKind distinguishes the test runtime's own import from arbitrary
// library imports, which pass through untouched.
type ImportKind string

const (
	ImportRuntime ImportKind = "runtime"
	ImportLibrary ImportKind = "library"
)

// CommentKind carries the comment sub-type used for passthrough decisions.
type CommentKind string

const (
	CommentLicense   CommentKind = "license"
	CommentDirective CommentKind = "directive"
	CommentInline    CommentKind = "inline"
)
