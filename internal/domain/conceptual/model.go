// Package conceptual implements the conceptual-DFT energy-model engine: it
// fits parametrized energy-vs-electron-count models from three total-energy
// samples at {N0−1, N0, N0+1} and derives global, local, and alchemical
// reactivity descriptors from the fitted parameters.
//
// The design is one flat interface with one implementation per functional
// family (rational, quadratic, exponential, linear); the descriptor layers
// (GlobalTool, LocalTool) depend only on the EnergyModel interface, never on
// a concrete variant.
package conceptual

import (
	"math"

	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
	"github.com/turtacn/ChemReactivity/pkg/errors"
)

// EnergyModel is the capability set shared by every energy-model family.
// A model is immutable after construction: parameters are derived once by
// closed-form interpolation, and every evaluation is pure arithmetic on the
// frozen parameter vector.
type EnergyModel interface {
	// Kind identifies the functional family of the model.
	Kind() ctypes.ModelKind

	// ReferenceN returns N0, the middle electron count of the fitting triple.
	ReferenceN() float64

	// Params returns a copy of the fitted parameter vector.  Its length and
	// meaning depend on the family (e.g. [a0, a1, b1] for rational).
	Params() []float64

	// NMax returns the electron count at which dE/dN vanishes.  Families
	// whose derivative only vanishes asymptotically report +Inf.
	NMax() float64

	// Energy evaluates E(n).  It fails for n < 0 and emits an extrapolation
	// diagnostic (without failing) when n lies outside [N0−1, N0+1].
	// n = +Inf is evaluated as the family's asymptotic limit.
	Energy(n float64) (float64, error)

	// EnergyDerivative evaluates dᵒʳᵈᵉʳE/dNᵒʳᵈᵉʳ at n.  It fails for n < 0
	// or order < 1, with the same extrapolation policy as Energy.
	EnergyDerivative(n float64, order int) (float64, error)

	// ConvertMuToN solves dE/dN = mu for n by algebraic inversion of the
	// family's order-1 derivative.  It fails when no real root exists in the
	// model's domain, or when the family has no invertible derivative.
	ConvertMuToN(mu float64) (float64, error)
}

// DiagnosticSink receives non-fatal evaluation advisories.  Models never log;
// the caller decides what to do with diagnostics (collect, log, drop).
type DiagnosticSink func(ctypes.Diagnostic)

// Option configures an energy model at construction time.
type Option func(*modelOptions)

type modelOptions struct {
	sink DiagnosticSink
}

// WithDiagnosticSink installs sink as the receiver of evaluation advisories
// such as out-of-interpolation-range warnings.  Without it diagnostics are
// discarded.
func WithDiagnosticSink(sink DiagnosticSink) Option {
	return func(o *modelOptions) {
		o.sink = sink
	}
}

func applyOptions(opts []Option) modelOptions {
	var o modelOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewModel constructs the energy model of the requested family from the
// {electron count: energy} triple.
func NewModel(kind ctypes.ModelKind, energies map[float64]float64, opts ...Option) (EnergyModel, error) {
	switch kind {
	case ctypes.KindRational:
		return NewRationalModel(energies, opts...)
	case ctypes.KindQuadratic:
		return NewQuadraticModel(energies, opts...)
	case ctypes.KindExponential:
		return NewExponentialModel(energies, opts...)
	case ctypes.KindLinear:
		return NewLinearModel(energies, opts...)
	default:
		return nil, errors.Newf(errors.ErrCodeValidation, "unsupported energy model kind %q", kind)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared model plumbing
// ─────────────────────────────────────────────────────────────────────────────

// modelBase carries the state and checks common to every family.
type modelBase struct {
	kind ctypes.ModelKind
	n0   float64
	sink DiagnosticSink
}

func newModelBase(kind ctypes.ModelKind, n0 float64, o modelOptions) modelBase {
	return modelBase{kind: kind, n0: n0, sink: o.sink}
}

func (b *modelBase) Kind() ctypes.ModelKind { return b.kind }

func (b *modelBase) ReferenceN() float64 { return b.n0 }

// checkElectronCount rejects negative electron counts.
func (b *modelBase) checkElectronCount(n float64) error {
	if n < 0 {
		return errors.Newf(errors.ErrCodeInvalidArgument,
			"electron count cannot be negative, got n=%g", n)
	}
	return nil
}

// checkOrder rejects derivative orders below one.
func checkOrder(order int) error {
	if order < 1 {
		return errors.Newf(errors.ErrCodeInvalidArgument,
			"derivative order must be a positive integer, got %d", order)
	}
	return nil
}

// warnExtrapolation emits a diagnostic when n lies outside the interpolation
// window [N0−1, N0+1].  Infinite n is the asymptotic limit, not an
// extrapolation, and stays silent.
func (b *modelBase) warnExtrapolation(n float64) {
	if b.sink == nil || math.IsInf(n, 0) {
		return
	}
	lo, hi := b.n0-1, b.n0+1
	if n >= lo && n <= hi {
		return
	}
	b.sink(ctypes.Diagnostic{
		Code:    ctypes.DiagExtrapolation,
		Model:   b.kind,
		N:       n,
		RangeLo: lo,
		RangeHi: hi,
		Message: "evaluation outside interpolation region",
	})
}

// factorial returns n! as a float64.  Orders in this package are small, so
// overflow is not a concern.
func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
