package conceptual

import (
	"math"

	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
	"github.com/turtacn/ChemReactivity/pkg/errors"
)

// ExponentialModel approximates the energy as an exponential decay towards a
// finite asymptote,
//
//	E(N) = A·exp(−γ(N − N0)) + B
//
// Substituting the three samples gives γ = ln((E₋ − E₀)/(E₀ − E₊)),
// A = (E₀ − E₊)/(1 − e^(−γ)), B = E₀ − A.  Physicality requires strictly
// decreasing energies and IP > EA so that A > 0 and γ > 0.  Like the rational
// family the derivative only vanishes asymptotically: NMax is +Inf and
// E(∞) = B.
type ExponentialModel struct {
	modelBase
	a     float64 // amplitude A
	gamma float64
	b     float64 // asymptote B
}

var _ EnergyModel = (*ExponentialModel)(nil)

// NewExponentialModel fits the exponential model to the energy triple.
func NewExponentialModel(energies map[float64]float64, opts ...Option) (*ExponentialModel, error) {
	s, err := NewEnergySamples(energies)
	if err != nil {
		return nil, err
	}
	n0 := s.ReferenceN()

	ip := s.IonizationPotential()
	ea := s.ElectronAffinity()
	if ea <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidFitInput,
			"exponential model requires strictly decreasing energies")
	}
	if ip <= ea {
		return nil, errors.Newf(errors.ErrCodeInvalidFitInput,
			"exponential model requires ionization potential above electron affinity, got IP=%g EA=%g", ip, ea)
	}

	gamma := math.Log(ip / ea)
	a := ea / (1 - math.Exp(-gamma))
	b := s.EnergyZero() - a

	return &ExponentialModel{
		modelBase: newModelBase(ctypes.KindExponential, n0, applyOptions(opts)),
		a:         a,
		gamma:     gamma,
		b:         b,
	}, nil
}

// Params returns [A, γ, B].
func (m *ExponentialModel) Params() []float64 {
	return []float64{m.a, m.gamma, m.b}
}

// NMax is +Inf: the exponential tail never flattens at finite N.
func (m *ExponentialModel) NMax() float64 {
	return math.Inf(1)
}

// Energy evaluates E(n).
func (m *ExponentialModel) Energy(n float64) (float64, error) {
	if err := m.checkElectronCount(n); err != nil {
		return 0, err
	}
	m.warnExtrapolation(n)
	if math.IsInf(n, 1) {
		return m.b, nil
	}
	return m.a*math.Exp(-m.gamma*(n-m.n0)) + m.b, nil
}

// EnergyDerivative evaluates dⁿE/dNⁿ = A(−γ)ⁿ e^(−γ(N−N0)) at n.
func (m *ExponentialModel) EnergyDerivative(n float64, order int) (float64, error) {
	if err := m.checkElectronCount(n); err != nil {
		return 0, err
	}
	if err := checkOrder(order); err != nil {
		return 0, err
	}
	m.warnExtrapolation(n)
	if math.IsInf(n, 1) {
		return 0, nil
	}
	return m.a * math.Pow(-m.gamma, float64(order)) * math.Exp(-m.gamma*(n-m.n0)), nil
}

// ConvertMuToN inverts mu = −Aγ·e^(−γ(N−N0)):
//
//	N = N0 − ln(−mu/(Aγ))/γ
//
// Only strictly negative chemical potentials are reachable.
func (m *ExponentialModel) ConvertMuToN(mu float64) (float64, error) {
	if mu >= 0 {
		return 0, errors.Newf(errors.ErrCodeInversionFailed,
			"exponential model derivative is strictly negative, cannot invert mu=%g", mu)
	}
	n := m.n0 - math.Log(-mu/(m.a*m.gamma))/m.gamma
	if n < 0 {
		return 0, errors.Newf(errors.ErrCodeInversionFailed,
			"root N=%g outside domain for mu=%g", n, mu)
	}
	return n, nil
}
