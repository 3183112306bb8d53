package conceptual

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctypes "github.com/turtacn/ChemReactivity/pkg/types/conceptual"
)

func TestNewModel_Factory(t *testing.T) {
	energies := map[float64]float64{4: 6.0, 5: 5.2, 6: 4.8}

	tests := []struct {
		kind ctypes.ModelKind
	}{
		{ctypes.KindRational},
		{ctypes.KindQuadratic},
		{ctypes.KindExponential},
		{ctypes.KindLinear},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			m, err := NewModel(tt.kind, energies)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, m.Kind())
			assert.Equal(t, 5.0, m.ReferenceN())
		})
	}

	_, err := NewModel(ctypes.ModelKind("cubic"), energies)
	assert.Error(t, err)
}

func TestNewModel_AllKindsAgreeOnSamples(t *testing.T) {
	// Every family interpolates, so all reproduce the input energies.
	energies := map[float64]float64{4: 6.0, 5: 5.2, 6: 4.8}
	for _, kind := range []ctypes.ModelKind{
		ctypes.KindRational, ctypes.KindQuadratic, ctypes.KindExponential, ctypes.KindLinear,
	} {
		m, err := NewModel(kind, energies)
		require.NoError(t, err)
		for n, want := range energies {
			e, err := m.Energy(n)
			require.NoError(t, err)
			assert.InDelta(t, want, e, 1e-8, "%s energy at n=%g", kind, n)
		}
	}
}

func TestNewGlobalTool_NilModel(t *testing.T) {
	_, err := NewGlobalTool(nil)
	assert.Error(t, err)
}

func TestGlobalTool_ModelAccess(t *testing.T) {
	m, err := NewModel(ctypes.KindQuadratic, map[float64]float64{4: 6.0, 5: 5.2, 6: 4.8})
	require.NoError(t, err)
	g, err := NewGlobalTool(m)
	require.NoError(t, err)
	assert.Equal(t, m, g.Model())
	assert.Equal(t, m.NMax(), g.NMax())
}
