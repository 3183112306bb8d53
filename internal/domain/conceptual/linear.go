package conceptual

import (
	"math"

	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
	"github.com/turtacn/ChemReactivity/pkg/errors"
)

// LinearModel is the piecewise-linear (grand-canonical) interpolation: two
// straight segments meeting at the reference count,
//
//	E(N) = E₀ + (N0 − N)·IP   for N ≤ N0
//	E(N) = E₀ − (N − N0)·EA   for N ≥ N0
//
// The derivative is one-sided at N0, so the chemical potential there is
// undefined; the one-sided values are exposed as MuMinus/MuPlus and their
// average as MuZero.
type LinearModel struct {
	modelBase
	ip    float64
	ea    float64
	eZero float64
}

var _ EnergyModel = (*LinearModel)(nil)

// NewLinearModel fits the piecewise-linear model to the energy triple.
func NewLinearModel(energies map[float64]float64, opts ...Option) (*LinearModel, error) {
	s, err := NewEnergySamples(energies)
	if err != nil {
		return nil, err
	}
	return &LinearModel{
		modelBase: newModelBase(ctypes.KindLinear, s.ReferenceN(), applyOptions(opts)),
		ip:        s.IonizationPotential(),
		ea:        s.ElectronAffinity(),
		eZero:     s.EnergyZero(),
	}, nil
}

// Params returns [IP, EA].
func (m *LinearModel) Params() []float64 {
	return []float64{m.ip, m.ea}
}

// NMax is +Inf while the upper segment keeps descending (EA > 0); with a flat
// upper segment (EA = 0) the derivative vanishes immediately above N0.
func (m *LinearModel) NMax() float64 {
	if m.ea == 0 {
		return m.n0
	}
	return math.Inf(1)
}

// MuMinus returns the electron-removal chemical potential −IP.
func (m *LinearModel) MuMinus() float64 { return -m.ip }

// MuPlus returns the electron-addition chemical potential −EA.
func (m *LinearModel) MuPlus() float64 { return -m.ea }

// MuZero returns the averaged Mulliken chemical potential −(IP+EA)/2.
func (m *LinearModel) MuZero() float64 { return -(m.ip + m.ea) / 2 }

// Energy evaluates E(n).
func (m *LinearModel) Energy(n float64) (float64, error) {
	if err := m.checkElectronCount(n); err != nil {
		return 0, err
	}
	m.warnExtrapolation(n)
	if math.IsInf(n, 1) {
		if m.ea == 0 {
			return m.eZero, nil
		}
		return math.Inf(-1), nil
	}
	if n <= m.n0 {
		return m.eZero + (m.n0-n)*m.ip, nil
	}
	return m.eZero - (n-m.n0)*m.ea, nil
}

// EnergyDerivative evaluates the order-th one-sided derivative at n.  At
// exactly N0 every order fails: the two segments meet in a kink there.
func (m *LinearModel) EnergyDerivative(n float64, order int) (float64, error) {
	if err := m.checkElectronCount(n); err != nil {
		return 0, err
	}
	if err := checkOrder(order); err != nil {
		return 0, err
	}
	m.warnExtrapolation(n)
	if n == m.n0 {
		return 0, errors.New(errors.ErrCodeEvaluationDomain,
			"piecewise-linear derivative is undefined at the reference electron count")
	}
	if order > 1 {
		return 0, nil
	}
	if n < m.n0 {
		return -m.ip, nil
	}
	return -m.ea, nil
}

// ConvertMuToN is not defined for this family: the derivative is piecewise
// constant and has no inverse.
func (m *LinearModel) ConvertMuToN(mu float64) (float64, error) {
	return 0, errors.New(errors.ErrCodeUnsupportedOrder,
		"piecewise-linear model has no invertible derivative")
}
