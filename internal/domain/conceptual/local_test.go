package conceptual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertLocal(t *testing.T, scalar float64, base []float64, got []float64, ok bool) {
	t.Helper()
	require.True(t, ok)
	require.Len(t, got, len(base))
	for i := range base {
		assert.InDelta(t, scalar*base[i], got[i], 1e-6)
	}
}

func TestLocalTool_Empty(t *testing.T) {
	loc, err := NewLocalTool()
	require.NoError(t, err)

	_, ok := loc.FukuiPlus()
	assert.False(t, ok)
	_, ok = loc.FukuiMinus()
	assert.False(t, ok)
	_, ok = loc.FukuiZero()
	assert.False(t, ok)
	_, ok = loc.DualDescriptor()
	assert.False(t, ok)
	_, ok = loc.ChemicalPotentialZero()
	assert.False(t, ok)
}

func TestLocalTool_OneSided(t *testing.T) {
	ff := []float64{0, 1, 2, 3, 4}

	loc, err := NewLocalTool(WithFukuiPlus(ff))
	require.NoError(t, err)
	got, ok := loc.FukuiPlus()
	require.True(t, ok)
	assert.Equal(t, ff, got)
	_, ok = loc.FukuiMinus()
	assert.False(t, ok)
	_, ok = loc.FukuiZero()
	assert.False(t, ok)
	_, ok = loc.DualDescriptor()
	assert.False(t, ok)

	loc, err = NewLocalTool(WithFukuiMinus(ff))
	require.NoError(t, err)
	got, ok = loc.FukuiMinus()
	require.True(t, ok)
	assert.Equal(t, ff, got)
	_, ok = loc.FukuiPlus()
	assert.False(t, ok)
}

func TestLocalTool_LengthMismatch(t *testing.T) {
	_, err := NewLocalTool(
		WithFukuiPlus([]float64{1, 2, 3}),
		WithFukuiMinus([]float64{1, 2}),
	)
	assert.Error(t, err)
}

func TestLocalTool_HydrogenDescriptors(t *testing.T) {
	m, err := NewQuadraticModel(hydrogenEnergies())
	require.NoError(t, err)
	g, err := NewGlobalTool(m)
	require.NoError(t, err)

	ffPlus := []float64{1.1, 2.3, -3.7}
	ffMinus := []float64{-4.2, 5.0, 9.4}
	loc, err := NewLocalTool(
		WithFukuiPlus(ffPlus),
		WithFukuiMinus(ffMinus),
		WithGlobalTool(g),
	)
	require.NoError(t, err)

	ffZero, ok := loc.FukuiZero()
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{-1.55, 3.65, 2.85}, ffZero, 1e-6)

	dual, ok := loc.DualDescriptor()
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{5.3, -2.7, -13.1}, dual, 1e-6)

	got, ok := loc.IonizationPotentialPlus()
	assertLocal(t, hydrogenIP, ffPlus, got, ok)
	got, ok = loc.IonizationPotentialMinus()
	assertLocal(t, hydrogenIP, ffMinus, got, ok)
	got, ok = loc.IonizationPotentialZero()
	assertLocal(t, hydrogenIP, ffZero, got, ok)

	got, ok = loc.ElectronAffinityPlus()
	assertLocal(t, hydrogenEA, ffPlus, got, ok)

	eta := hydrogenIP - hydrogenEA
	got, ok = loc.ChemicalHardnessPlus()
	assertLocal(t, eta, ffPlus, got, ok)
	got, ok = loc.ChemicalHardnessMinus()
	assertLocal(t, eta, ffMinus, got, ok)
	got, ok = loc.ChemicalHardnessZero()
	assertLocal(t, eta, ffZero, got, ok)

	mu := -(hydrogenIP + hydrogenEA) / 2
	got, ok = loc.ChemicalPotentialPlus()
	assertLocal(t, mu, ffPlus, got, ok)

	got, ok = loc.SoftnessZero()
	assertLocal(t, 1/eta, ffZero, got, ok)

	w := (hydrogenIP + hydrogenEA) * (hydrogenIP + hydrogenEA) / (8 * eta)
	got, ok = loc.ElectrophilicityPlus()
	assertLocal(t, w, ffPlus, got, ok)

	nf := -(hydrogenIP - 3*hydrogenEA) * (hydrogenIP - 3*hydrogenEA) / (8 * eta)
	got, ok = loc.NucleofugalityPlus()
	assertLocal(t, nf, ffPlus, got, ok)
	got, ok = loc.NucleofugalityMinus()
	assertLocal(t, nf, ffMinus, got, ok)
	got, ok = loc.NucleofugalityZero()
	assertLocal(t, nf, ffZero, got, ok)

	ef := (3*hydrogenIP - hydrogenEA) * (3*hydrogenIP - hydrogenEA) / (8 * eta)
	got, ok = loc.ElectrofugalityZero()
	assertLocal(t, ef, ffZero, got, ok)
}

func TestLocalTool_NoGlobal(t *testing.T) {
	loc, err := NewLocalTool(
		WithFukuiPlus([]float64{1, 2}),
		WithFukuiMinus([]float64{3, 4}),
	)
	require.NoError(t, err)

	// Pure Fukui combinations work, weighted descriptors do not.
	_, ok := loc.FukuiZero()
	assert.True(t, ok)
	_, ok = loc.ChemicalPotentialZero()
	assert.False(t, ok)
	_, ok = loc.SoftnessPlus()
	assert.False(t, ok)
}

func TestLocalTool_UnobtainableScalar(t *testing.T) {
	// The piecewise-linear kink makes μ (and everything derived from the
	// symmetric derivative) unavailable; the weighted accessors degrade to
	// ok=false rather than erroring.
	m, err := NewLinearModel(map[float64]float64{4: 6.0, 5: 5.2, 6: 4.8})
	require.NoError(t, err)
	g, err := NewGlobalTool(m)
	require.NoError(t, err)

	loc, err := NewLocalTool(
		WithFukuiPlus([]float64{1, 2}),
		WithFukuiMinus([]float64{3, 4}),
		WithGlobalTool(g),
	)
	require.NoError(t, err)

	_, ok := loc.ChemicalPotentialPlus()
	assert.False(t, ok)
	_, ok = loc.SoftnessZero()
	assert.False(t, ok)

	// Energy-difference descriptors stay available.
	got, ok := loc.IonizationPotentialPlus()
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0.8, 1.6}, got, 1e-10)
}
