// Package conceptual defines the shared enumerations and value objects of the
// conceptual-DFT descriptor engine that are used across every layer of the
// ChemReactivity service.  No domain logic lives here — only plain data types
// that are safe to import from any layer without creating circular
// dependencies.
package conceptual

// ─────────────────────────────────────────────────────────────────────────────
// ModelKind — energy-model family identifier
// ─────────────────────────────────────────────────────────────────────────────

// ModelKind identifies the functional family used to interpolate the
// energy-vs-electron-count curve from the three input samples.
type ModelKind string

const (
	// KindRational is the 3-parameter rational model E(N) = (a0 + a1·N)/(1 + b1·N).
	KindRational ModelKind = "rational"

	// KindQuadratic is the parabolic model E(N) = a + b·N + c·N², the classic
	// Parr–Pearson interpolation with finite maximal electron population.
	KindQuadratic ModelKind = "quadratic"

	// KindExponential is the decay model E(N) = A·exp(−γ(N − N0)) + B.
	KindExponential ModelKind = "exponential"

	// KindLinear is the piecewise-linear model with slopes −IP below and −EA
	// above the reference electron count.
	KindLinear ModelKind = "linear"
)

// IsValid checks if the model kind is a known family.
func (k ModelKind) IsValid() bool {
	switch k {
	case KindRational, KindQuadratic, KindExponential, KindLinear:
		return true
	default:
		return false
	}
}

// String returns the string representation of the model kind.
func (k ModelKind) String() string {
	return string(k)
}

// ─────────────────────────────────────────────────────────────────────────────
// Diagnostic — non-fatal evaluation advisory
// ─────────────────────────────────────────────────────────────────────────────

// DiagnosticCode classifies a non-fatal advisory emitted during evaluation.
type DiagnosticCode string

const (
	// DiagExtrapolation is emitted when an energy or derivative is evaluated
	// outside the interpolation window [N0−1, N0+1].  The computation still
	// proceeds and returns a value.
	DiagExtrapolation DiagnosticCode = "extrapolation"
)

// Diagnostic is an advisory produced by an energy model during evaluation.
// It is delivered through a caller-supplied sink rather than a process-wide
// logger so that the "compute proceeds, but caller is informed" contract
// carries no hidden global state.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Model   ModelKind      `json:"model"`
	N       float64        `json:"n"`
	RangeLo float64        `json:"range_lo"`
	RangeHi float64        `json:"range_hi"`
	Message string         `json:"message"`
}
