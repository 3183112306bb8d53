package conceptual

import (
	"math"

	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
	"github.com/turtacn/ChemReactivity/pkg/errors"
)

// RationalModel approximates the energy as a 3-parameter rational function of
// the number of electrons,
//
//	E(N) = (a0 + a1·N) / (1 + b1·N)
//
// The parameters are obtained by closed-form interpolation through the three
// samples (derived by substitution, not a general linear solve).  The n-th
// derivative with respect to N at fixed external potential is
//
//	dⁿE/dNⁿ = (−b1)ⁿ⁻¹ · (a1 − a0·b1) · n! / (1 + b1·N)ⁿ⁺¹
//
// The derivative only vanishes in the N → ∞ limit, so NMax is +Inf and the
// asymptotic energy is the horizontal asymptote a1/b1.
type RationalModel struct {
	modelBase
	a0, a1, b1 float64
}

var _ EnergyModel = (*RationalModel)(nil)

// NewRationalModel fits the rational model to the energy triple.
func NewRationalModel(energies map[float64]float64, opts ...Option) (*RationalModel, error) {
	s, err := NewEnergySamples(energies)
	if err != nil {
		return nil, err
	}
	n0 := s.ReferenceN()
	eMinus, eZero, ePlus := s.EnergyMinus(), s.EnergyZero(), s.EnergyPlus()

	denom := (n0+1)*ePlus - 2*n0*eZero + (n0-1)*eMinus
	if denom == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFitInput,
			"rational model interpolation is degenerate for the given energies")
	}
	b1 := -(ePlus - 2*eZero + eMinus) / denom
	a1 := (1+b1*n0)*(ePlus-eZero) + b1*ePlus
	a0 := -a1*n0 + eZero*(1+b1*n0)

	return &RationalModel{
		modelBase: newModelBase(ctypes.KindRational, n0, applyOptions(opts)),
		a0:        a0,
		a1:        a1,
		b1:        b1,
	}, nil
}

// Params returns [a0, a1, b1].
func (m *RationalModel) Params() []float64 {
	return []float64{m.a0, m.a1, m.b1}
}

// NMax is +Inf: dE/dN only vanishes asymptotically for this family.
func (m *RationalModel) NMax() float64 {
	return math.Inf(1)
}

// Energy evaluates E(n).
func (m *RationalModel) Energy(n float64) (float64, error) {
	if err := m.checkElectronCount(n); err != nil {
		return 0, err
	}
	m.warnExtrapolation(n)
	if math.IsInf(n, 1) {
		// Limit of E(N) as N goes to infinity; direct substitution would be ∞/∞.
		return m.a1 / m.b1, nil
	}
	return (m.a0 + m.a1*n) / (1 + m.b1*n), nil
}

// EnergyDerivative evaluates the order-th derivative of E at n.
func (m *RationalModel) EnergyDerivative(n float64, order int) (float64, error) {
	if err := m.checkElectronCount(n); err != nil {
		return 0, err
	}
	if err := checkOrder(order); err != nil {
		return 0, err
	}
	m.warnExtrapolation(n)
	if math.IsInf(n, 1) {
		// The asymptote is flat: every derivative order goes to zero.
		return 0, nil
	}
	deriv := math.Pow(-m.b1, float64(order-1))
	deriv *= (m.a1 - m.a0*m.b1) * factorial(order)
	deriv /= math.Pow(1+m.b1*n, float64(order+1))
	return deriv, nil
}

// ConvertMuToN inverts dE/dN = mu.  From mu = (a1 − a0·b1)/(1 + b1·N)² the
// physical branch (1 + b1·N > 0) gives
//
//	N = (√((a1 − a0·b1)/mu) − 1) / b1
func (m *RationalModel) ConvertMuToN(mu float64) (float64, error) {
	if m.b1 == 0 {
		// The fit degenerated to a line (exactly linear energies): dE/dN is
		// the constant a1 and has no finite root.
		return 0, errors.New(errors.ErrCodeInversionFailed,
			"rational fit is linear (b1 = 0), derivative is constant and cannot be inverted")
	}
	k := m.a1 - m.a0*m.b1
	if mu == 0 {
		return 0, errors.New(errors.ErrCodeInversionFailed,
			"derivative of the rational model never vanishes at finite N")
	}
	ratio := k / mu
	if ratio <= 0 {
		return 0, errors.Newf(errors.ErrCodeInversionFailed,
			"no real root for mu=%g", mu)
	}
	n := (math.Sqrt(ratio) - 1) / m.b1
	if n < 0 {
		return 0, errors.Newf(errors.ErrCodeInversionFailed,
			"root N=%g outside domain for mu=%g", n, mu)
	}
	return n, nil
}
