package conceptual

import (
	"math"

	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
	"github.com/turtacn/ChemReactivity/pkg/errors"
)

// QuadraticModel is the classic Parr–Pearson parabolic interpolation,
//
//	E(N) = a + b·N + c·N²
//
// With the unit-spaced triple the parameters reduce to finite differences:
// c = (E₊ − 2E₀ + E₋)/2, b = (E₊ − E₋)/2 − 2c·N0, a = E₀ − b·N0 − c·N0².
// Unlike the rational family, the derivative vanishes at a finite electron
// count N = −b/(2c), so NMax is a clipped finite root.
type QuadraticModel struct {
	modelBase
	a, b, c float64
	nMax    float64
}

var _ EnergyModel = (*QuadraticModel)(nil)

// NewQuadraticModel fits the quadratic model to the energy triple.  The
// curvature must be positive (positive chemical hardness); a flat or concave
// triple is rejected.
func NewQuadraticModel(energies map[float64]float64, opts ...Option) (*QuadraticModel, error) {
	s, err := NewEnergySamples(energies)
	if err != nil {
		return nil, err
	}
	n0 := s.ReferenceN()
	eMinus, eZero, ePlus := s.EnergyMinus(), s.EnergyZero(), s.EnergyPlus()

	c := (ePlus - 2*eZero + eMinus) / 2
	if c <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidFitInput,
			"quadratic model requires positive chemical hardness, got %g", 2*c)
	}
	b := (ePlus-eMinus)/2 - 2*c*n0
	a := eZero - b*n0 - c*n0*n0

	nMax := -b / (2 * c)
	if nMax < 0 {
		nMax = 0
	}

	return &QuadraticModel{
		modelBase: newModelBase(ctypes.KindQuadratic, n0, applyOptions(opts)),
		a:         a,
		b:         b,
		c:         c,
		nMax:      nMax,
	}, nil
}

// Params returns [a, b, c].
func (m *QuadraticModel) Params() []float64 {
	return []float64{m.a, m.b, m.c}
}

// NMax is the finite root of dE/dN = 0, clipped at zero.
func (m *QuadraticModel) NMax() float64 {
	return m.nMax
}

// Energy evaluates E(n).
func (m *QuadraticModel) Energy(n float64) (float64, error) {
	if err := m.checkElectronCount(n); err != nil {
		return 0, err
	}
	m.warnExtrapolation(n)
	if math.IsInf(n, 1) {
		// Positive curvature dominates the limit.
		return math.Inf(1), nil
	}
	return m.a + m.b*n + m.c*n*n, nil
}

// EnergyDerivative evaluates the order-th derivative of E at n.  The parabola
// has only two non-zero derivative orders.
func (m *QuadraticModel) EnergyDerivative(n float64, order int) (float64, error) {
	if err := m.checkElectronCount(n); err != nil {
		return 0, err
	}
	if err := checkOrder(order); err != nil {
		return 0, err
	}
	m.warnExtrapolation(n)
	switch order {
	case 1:
		if math.IsInf(n, 1) {
			return math.Inf(1), nil
		}
		return m.b + 2*m.c*n, nil
	case 2:
		return 2 * m.c, nil
	default:
		return 0, nil
	}
}

// ConvertMuToN inverts the linear derivative: N = (mu − b)/(2c).
func (m *QuadraticModel) ConvertMuToN(mu float64) (float64, error) {
	n := (mu - m.b) / (2 * m.c)
	if n < 0 {
		return 0, errors.Newf(errors.ErrCodeInversionFailed,
			"root N=%g outside domain for mu=%g", n, mu)
	}
	return n, nil
}
