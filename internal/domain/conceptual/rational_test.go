package conceptual

import (
	"math"
	"testing"

	gosymbol "github.com/njchilds90/gosymbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ChemReactivity/pkg/errors"
	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
)

// symbolicModel wraps a symbolic energy expression in the variable "ne" and
// evaluates it, its exact derivatives, and the grand potential numerically.
// Expected values in these tests come from symbolic differentiation, the same
// way they would be derived by hand.
type symbolicModel struct {
	t      *testing.T
	derivs []gosymbol.Expr // derivs[r] is the r-th derivative of the energy
}

func newSymbolicRational(t *testing.T, a0, a1, b1 gosymbol.Expr) *symbolicModel {
	ne := gosymbol.S("ne")
	energy := gosymbol.MulOf(
		gosymbol.AddOf(a0, gosymbol.MulOf(a1, ne)),
		gosymbol.PowOf(gosymbol.AddOf(gosymbol.N(1), gosymbol.MulOf(b1, ne)), gosymbol.N(-1)),
	)
	return &symbolicModel{t: t, derivs: []gosymbol.Expr{energy}}
}

func (s *symbolicModel) eval(e gosymbol.Expr, n float64) float64 {
	v, ok := e.Sub("ne", gosymbol.NFloat(n)).Eval()
	require.True(s.t, ok, "symbolic expression did not evaluate at ne=%g", n)
	return v.Float64()
}

func (s *symbolicModel) energy(n float64) float64 {
	return s.eval(s.derivs[0], n)
}

func (s *symbolicModel) deriv(n float64, order int) float64 {
	for len(s.derivs) <= order {
		s.derivs = append(s.derivs, s.derivs[len(s.derivs)-1].Diff("ne"))
	}
	return s.eval(s.derivs[order], n)
}

func (s *symbolicModel) grandPotential(n float64) float64 {
	return s.energy(n) - n*s.deriv(n, 1)
}

// The two reference parametrizations used throughout:
//
//	E(N) = (0.5 − 2.2·N) / (1 + 0.7·N)     fitted at N0 = 2
//	E(N) = (−0.15 − 4.2·N) / (1 + 0.45·N)  fitted at N0 = 6.5

func pnppEnergies() map[float64]float64 {
	return map[float64]float64{2.: -1.6250, 3.: -1.96774193, 1.: -1.0}
}

func nnppEnergies() map[float64]float64 {
	return map[float64]float64{6.5: -6.99363057, 7.5: -7.23428571, 5.5: -6.69064748}
}

func pnppSymbolic(t *testing.T) *symbolicModel {
	return newSymbolicRational(t, gosymbol.F(1, 2), gosymbol.F(-11, 5), gosymbol.F(7, 10))
}

func nnppSymbolic(t *testing.T) *symbolicModel {
	return newSymbolicRational(t, gosymbol.F(-3, 20), gosymbol.F(-21, 5), gosymbol.F(9, 20))
}

func TestRationalModel_FitParams(t *testing.T) {
	m, err := NewRationalModel(pnppEnergies())
	require.NoError(t, err)
	assert.Equal(t, ctypes.KindRational, m.Kind())
	assert.Equal(t, 2.0, m.ReferenceN())
	params := m.Params()
	require.Len(t, params, 3)
	assert.InDelta(t, 0.5, params[0], 1e-6)
	assert.InDelta(t, -2.2, params[1], 1e-6)
	assert.InDelta(t, 0.7, params[2], 1e-6)

	m, err = NewRationalModel(nnppEnergies())
	require.NoError(t, err)
	assert.Equal(t, 6.5, m.ReferenceN())
	params = m.Params()
	assert.InDelta(t, -0.15, params[0], 1e-6)
	assert.InDelta(t, -4.2, params[1], 1e-6)
	assert.InDelta(t, 0.45, params[2], 1e-6)
}

func TestRationalModel_Energy(t *testing.T) {
	sym := pnppSymbolic(t)
	m, err := NewRationalModel(pnppEnergies())
	require.NoError(t, err)

	for _, n := range []float64{0, 1, 2, 3, 4, 5, 6, 1.5, 0.8} {
		e, err := m.Energy(n)
		require.NoError(t, err)
		assert.InDelta(t, sym.energy(n), e, 1e-6, "energy at n=%g", n)
	}
}

func TestRationalModel_EnergyDerivative(t *testing.T) {
	sym := pnppSymbolic(t)
	m, err := NewRationalModel(pnppEnergies())
	require.NoError(t, err)

	tests := []struct {
		n     float64
		order int
		tol   float64
	}{
		{0, 1, 1e-6}, {1, 1, 1e-6}, {2, 1, 1e-6}, {3, 1, 1e-6}, {4, 1, 1e-6},
		{5, 1, 1e-6}, {6, 1, 1e-6}, {1.5, 1, 1e-6}, {0.8, 1, 1e-6},
		{1.5, 2, 1e-6}, {0.8, 2, 1e-6},
		{1.1, 3, 1e-6}, {3.20, 3, 1e-6},
		{2.5, 4, 1e-6},
		{0.65, 5, 1e-5},
		{1.90, 6, 1e-6},
		{4.05, 7, 1e-6},
	}
	for _, tt := range tests {
		d, err := m.EnergyDerivative(tt.n, tt.order)
		require.NoError(t, err)
		assert.InDelta(t, sym.deriv(tt.n, tt.order), d, tt.tol, "order-%d derivative at n=%g", tt.order, tt.n)
	}
}

func TestRationalModel_NNPPEnergyAndDerivatives(t *testing.T) {
	sym := nnppSymbolic(t)
	m, err := NewRationalModel(nnppEnergies())
	require.NoError(t, err)

	for _, n := range []float64{6.5, 7.5, 5.5, 5.0, 8.0} {
		e, err := m.Energy(n)
		require.NoError(t, err)
		assert.InDelta(t, sym.energy(n), e, 1e-6)
	}
	tests := []struct {
		n     float64
		order int
	}{
		{6.5, 1}, {7.5, 1}, {5.5, 1}, {4, 2}, {10, 3}, {9.5, 4},
	}
	for _, tt := range tests {
		d, err := m.EnergyDerivative(tt.n, tt.order)
		require.NoError(t, err)
		assert.InDelta(t, sym.deriv(tt.n, tt.order), d, 1e-6)
	}
}

func TestRationalModel_InvalidEvaluations(t *testing.T) {
	m, err := NewRationalModel(map[float64]float64{5.: 5.2, 6.: 4.8, 4.: 6.0})
	require.NoError(t, err)

	for _, n := range []float64{-0.005, -1.35, -2.45} {
		_, err := m.Energy(n)
		assert.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidArgument))
	}
	_, err = m.EnergyDerivative(-0.05, 1)
	assert.Error(t, err)
	_, err = m.EnergyDerivative(-1.91, 2)
	assert.Error(t, err)
	_, err = m.EnergyDerivative(5.0, 0)
	assert.Error(t, err)
	_, err = m.EnergyDerivative(5.0, -1)
	assert.Error(t, err)
	_, err = m.EnergyDerivative(5.0, -3)
	assert.Error(t, err)
}

func TestRationalModel_Asymptotics(t *testing.T) {
	m, err := NewRationalModel(pnppEnergies())
	require.NoError(t, err)

	assert.True(t, math.IsInf(m.NMax(), 1))
	e, err := m.Energy(m.NMax())
	require.NoError(t, err)
	assert.InDelta(t, -3.14285714, e, 1e-6)
	for order := 1; order <= 3; order++ {
		d, err := m.EnergyDerivative(m.NMax(), order)
		require.NoError(t, err)
		assert.Zero(t, d)
	}

	m, err = NewRationalModel(nnppEnergies())
	require.NoError(t, err)
	e, err = m.Energy(m.NMax())
	require.NoError(t, err)
	assert.InDelta(t, -9.33333333, e, 1e-6)
}

func TestRationalModel_ExtrapolationDiagnostics(t *testing.T) {
	var diags []ctypes.Diagnostic
	sink := func(d ctypes.Diagnostic) { diags = append(diags, d) }

	m, err := NewRationalModel(pnppEnergies(), WithDiagnosticSink(sink))
	require.NoError(t, err)

	// Inside the interpolation window: silent.
	_, err = m.Energy(1.5)
	require.NoError(t, err)
	assert.Empty(t, diags)

	// Outside the window: advisory, not an error.
	_, err = m.Energy(5.2)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, ctypes.DiagExtrapolation, diags[0].Code)
	assert.Equal(t, ctypes.KindRational, diags[0].Model)
	assert.Equal(t, 5.2, diags[0].N)
	assert.Equal(t, 1.0, diags[0].RangeLo)
	assert.Equal(t, 3.0, diags[0].RangeHi)

	// The asymptotic limit is not an extrapolation.
	_, err = m.Energy(m.NMax())
	require.NoError(t, err)
	assert.Len(t, diags, 1)

	_, err = m.EnergyDerivative(0.2, 1)
	require.NoError(t, err)
	assert.Len(t, diags, 2)
}

func TestGlobalTool_Rational_Descriptors(t *testing.T) {
	sym := pnppSymbolic(t)
	m, err := NewRationalModel(pnppEnergies())
	require.NoError(t, err)
	g, err := NewGlobalTool(m)
	require.NoError(t, err)

	ip, err := g.IonizationPotential()
	require.NoError(t, err)
	assert.InDelta(t, sym.energy(1)-sym.energy(2), ip, 1e-6)

	ea, err := g.ElectronAffinity()
	require.NoError(t, err)
	assert.InDelta(t, sym.energy(2)-sym.energy(3), ea, 1e-6)

	mu, err := g.ChemicalPotential()
	require.NoError(t, err)
	assert.InDelta(t, sym.deriv(2, 1), mu, 1e-6)

	eta, err := g.ChemicalHardness()
	require.NoError(t, err)
	assert.InDelta(t, sym.deriv(2, 2), eta, 1e-6)

	chi, err := g.Electronegativity()
	require.NoError(t, err)
	assert.InDelta(t, -mu, chi, 1e-12)

	softness, err := g.Softness()
	require.NoError(t, err)
	assert.InDelta(t, 1/sym.deriv(2, 2), softness, 1e-6)

	for order := 2; order <= 6; order++ {
		hh, err := g.HyperHardness(order)
		require.NoError(t, err)
		assert.InDelta(t, sym.deriv(2, order+1), hh, 1e-6, "hyper-hardness order %d", order)
	}
	_, err = g.HyperHardness(1)
	assert.Error(t, err)

	w, err := g.Electrophilicity()
	require.NoError(t, err)
	assert.InDelta(t, 1.51785714, w, 1e-6)

	nf, err := g.Nucleofugality()
	require.NoError(t, err)
	assert.InDelta(t, -1.17511520, nf, 1e-6)

	ef, err := g.Electrofugality()
	require.NoError(t, err)
	assert.InDelta(t, 2.14285714, ef, 1e-6)
}

func TestGlobalTool_Rational_NNPPDescriptors(t *testing.T) {
	sym := nnppSymbolic(t)
	m, err := NewRationalModel(nnppEnergies())
	require.NoError(t, err)
	g, err := NewGlobalTool(m)
	require.NoError(t, err)

	mu, err := g.ChemicalPotential()
	require.NoError(t, err)
	assert.InDelta(t, sym.deriv(6.5, 1), mu, 1e-6)

	eta, err := g.ChemicalHardness()
	require.NoError(t, err)
	assert.InDelta(t, sym.deriv(6.5, 2), eta, 1e-6)

	w, err := g.Electrophilicity()
	require.NoError(t, err)
	assert.InDelta(t, 2.33970276, w, 1e-6)

	nf, err := g.Nucleofugality()
	require.NoError(t, err)
	assert.InDelta(t, -2.099047619, nf, 1e-6)

	ef, err := g.Electrofugality()
	require.NoError(t, err)
	assert.InDelta(t, 2.64268585, ef, 1e-6)
}

func TestGlobalTool_Rational_GrandPotential(t *testing.T) {
	sym := pnppSymbolic(t)
	m, err := NewRationalModel(pnppEnergies())
	require.NoError(t, err)
	g, err := NewGlobalTool(m)
	require.NoError(t, err)

	for _, n := range []float64{1, 2, 3, 2.78, 5.2, 0} {
		omega, err := g.GrandPotential(n)
		require.NoError(t, err)
		assert.InDelta(t, sym.grandPotential(n), omega, 1e-6, "grand potential at n=%g", n)
	}

	// Order 1 is −N by construction.
	for _, n := range []float64{2, 1.4, 2.86, 4.67} {
		d, err := g.GrandPotentialDerivative(n, 1)
		require.NoError(t, err)
		assert.InDelta(t, -n, d, 1e-6)
	}

	d, err := g.GrandPotentialDerivative(2, 2)
	require.NoError(t, err)
	assert.InDelta(t, -3.87226890, d, 1e-6)

	d2omega := func(n float64) float64 { return -1 / sym.deriv(n, 2) }
	d3omega := func(n float64) float64 { return sym.deriv(n, 3) / math.Pow(sym.deriv(n, 2), 3) }
	for _, n := range []float64{3.5, 4.1, 4.67} {
		d, err := g.GrandPotentialDerivative(n, 2)
		require.NoError(t, err)
		assert.InDelta(t, d2omega(n), d, 1e-6)
	}
	d, err = g.GrandPotentialDerivative(2.9, 3)
	require.NoError(t, err)
	assert.InDelta(t, d3omega(2.9), d, 1e-5)
	d, err = g.GrandPotentialDerivative(4.67, 3)
	require.NoError(t, err)
	assert.InDelta(t, d3omega(4.67), d, 1e-4)

	_, err = g.GrandPotentialDerivative(2, 6)
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeUnsupportedOrder))
	_, err = g.GrandPotentialDerivative(-1, 2)
	assert.Error(t, err)
	_, err = g.GrandPotentialDerivative(2, 0)
	assert.Error(t, err)
}

func TestGlobalTool_Rational_HyperSoftness(t *testing.T) {
	// Closed forms for the fitted parametrization E(N) = (a0 + a1·N)/(1 + b1·N).
	check := func(t *testing.T, energies map[float64]float64, n0, a0, a1, b1, tol float64) {
		m, err := NewRationalModel(energies)
		require.NoError(t, err)
		g, err := NewGlobalTool(m)
		require.NoError(t, err)

		expected := 3 * math.Pow(1+b1*n0, 5) / (4 * b1 * math.Pow(a1-a0*b1, 2))
		hs, err := g.HyperSoftness(2)
		require.NoError(t, err)
		assert.InDelta(t, expected, hs, tol)
		d, err := g.GrandPotentialDerivative(n0, 3)
		require.NoError(t, err)
		assert.InDelta(t, -expected, d, tol)

		expected = -15 * math.Pow(1+b1*n0, 7) / (8 * b1 * math.Pow(a1-a0*b1, 3))
		hs, err = g.HyperSoftness(3)
		require.NoError(t, err)
		assert.InDelta(t, expected, hs, tol*10)
		d, err = g.GrandPotentialDerivative(n0, 4)
		require.NoError(t, err)
		assert.InDelta(t, -expected, d, tol*10)
	}

	check(t, pnppEnergies(), 2.0, 0.5, -2.2, 0.7, 1e-5)
	check(t, nnppEnergies(), 6.5, -0.15, -4.2, 0.45, 1e-4)
}

func TestGlobalTool_Rational_MuConversion(t *testing.T) {
	m, err := NewRationalModel(pnppEnergies())
	require.NoError(t, err)
	g, err := NewGlobalTool(m)
	require.NoError(t, err)

	tests := []struct {
		mu   float64
		want float64
	}{
		{-0.4427083333, 2.0},
		{-0.5799422391, 1.567},
		{-0.9515745573, 0.91},
		{-0.2641542934, 3.01},
	}
	for _, tt := range tests {
		n, err := g.ConvertMuToN(tt.mu)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, n, 1e-6, "mu=%g", tt.mu)
	}

	// The derivative never vanishes and never turns positive.
	_, err = g.ConvertMuToN(0)
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInversionFailed))
	_, err = g.ConvertMuToN(0.5)
	assert.Error(t, err)

	omega, err := g.GrandPotentialMu(-0.125925925)
	require.NoError(t, err)
	assert.InDelta(t, -1.70370370, omega, 1e-6)
	omega, err = g.GrandPotentialMu(-0.442708333)
	require.NoError(t, err)
	assert.InDelta(t, -0.73958333, omega, 1e-6)
	omega, err = g.GrandPotentialMu(-0.232747054)
	require.NoError(t, err)
	assert.InDelta(t, -1.27423079, omega, 1e-6)

	sym := pnppSymbolic(t)
	d, err := g.GrandPotentialMuDerivative(sym.deriv(5.81, 1), 1)
	require.NoError(t, err)
	assert.InDelta(t, -5.81, d, 1e-5)
	d, err = g.GrandPotentialMuDerivative(sym.deriv(4.67, 1), 2)
	require.NoError(t, err)
	assert.InDelta(t, -1/sym.deriv(4.67, 2), d, 1e-4)
}

func TestGlobalTool_Rational_NNPPMuConversion(t *testing.T) {
	m, err := NewRationalModel(nnppEnergies())
	require.NoError(t, err)
	g, err := NewGlobalTool(m)
	require.NoError(t, err)

	tests := []struct {
		mu   float64
		want float64
	}{
		{-0.2682461763, 6.5},
		{-0.2345757894, 7.105},
		{-0.1956803972, 7.99},
		{-0.3568526811, 5.34},
	}
	for _, tt := range tests {
		n, err := g.ConvertMuToN(tt.mu)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, n, 1e-6)
	}

	omega, err := g.GrandPotentialMu(-0.26824617)
	require.NoError(t, err)
	assert.InDelta(t, -5.2500304, omega, 1e-6)
	omega, err = g.GrandPotentialMu(-0.19153203)
	require.NoError(t, err)
	assert.InDelta(t, -5.8048876, omega, 1e-6)
	omega, err = g.GrandPotentialMu(-0.20521256)
	require.NoError(t, err)
	assert.InDelta(t, -5.6965107, omega, 1e-6)
	omega, err = g.GrandPotentialMu(-0.198782625)
	require.NoError(t, err)
	assert.InDelta(t, -5.7468530, omega, 1e-6)

	omega, err = g.GrandPotential(6.5)
	require.NoError(t, err)
	assert.InDelta(t, -5.2500304, omega, 1e-6)
	omega, err = g.GrandPotential(7.91)
	require.NoError(t, err)
	assert.InDelta(t, -5.7468530, omega, 1e-6)
	omega, err = g.GrandPotential(0)
	require.NoError(t, err)
	assert.InDelta(t, -0.15, omega, 1e-6)
}

func TestRationalModel_LinearTripleInversion(t *testing.T) {
	// Exactly linear energies fit with b1 = 0: the derivative is constant,
	// so the inversion has no finite root and must not return ±Inf or NaN.
	m, err := NewRationalModel(map[float64]float64{1.: -1, 2.: -2, 3.: -3})
	require.NoError(t, err)
	params := m.Params()
	require.Len(t, params, 3)
	assert.Zero(t, params[2])

	for _, mu := range []float64{-0.5, -1.0, 0.25} {
		n, err := m.ConvertMuToN(mu)
		require.Error(t, err, "mu=%g", mu)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInversionFailed))
		assert.False(t, math.IsInf(n, 0))
		assert.False(t, math.IsNaN(n))
	}
}

func TestNewRationalModel_InvalidInput(t *testing.T) {
	_, err := NewRationalModel(map[float64]float64{5.: 15.0, 6.: 16.5, 4.: 18.1})
	assert.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidFitInput))
}
