package conceptual

import (
	"github.com/turtacn/ChemReactivity/pkg/errors"
)

// LocalTool composes global scalar descriptors with externally supplied
// per-point Fukui arrays into local (per-grid-point) descriptors.  It is a
// pure composition layer: every descriptor is the matching global scalar
// times a Fukui array, element-wise.
//
// All inputs are optional.  Accessors use the comma-ok idiom: a descriptor
// whose required array or global scalar is unavailable reports ok=false
// rather than failing — absence is an expected state, not an error.
type LocalTool struct {
	ffPlus  []float64
	ffMinus []float64
	global  *GlobalTool
}

// LocalOption configures a LocalTool at construction time.
type LocalOption func(*LocalTool)

// WithFukuiPlus supplies the electrophilic Fukui function FF⁺.
func WithFukuiPlus(ff []float64) LocalOption {
	return func(t *LocalTool) {
		t.ffPlus = append([]float64(nil), ff...)
	}
}

// WithFukuiMinus supplies the nucleophilic Fukui function FF⁻.
func WithFukuiMinus(ff []float64) LocalOption {
	return func(t *LocalTool) {
		t.ffMinus = append([]float64(nil), ff...)
	}
}

// WithGlobalTool supplies the global descriptor source.
func WithGlobalTool(g *GlobalTool) LocalOption {
	return func(t *LocalTool) {
		t.global = g
	}
}

// NewLocalTool builds the composition layer.  The only hard requirement is
// that FF⁺ and FF⁻, when both present, have equal length.
func NewLocalTool(opts ...LocalOption) (*LocalTool, error) {
	t := &LocalTool{}
	for _, opt := range opts {
		opt(t)
	}
	if t.ffPlus != nil && t.ffMinus != nil && len(t.ffPlus) != len(t.ffMinus) {
		return nil, errors.Newf(errors.ErrCodeInvalidFitInput,
			"fukui function arrays must have equal length, got %d and %d",
			len(t.ffPlus), len(t.ffMinus))
	}
	return t, nil
}

// FukuiPlus returns FF⁺.
func (t *LocalTool) FukuiPlus() ([]float64, bool) {
	if t.ffPlus == nil {
		return nil, false
	}
	return append([]float64(nil), t.ffPlus...), true
}

// FukuiMinus returns FF⁻.
func (t *LocalTool) FukuiMinus() ([]float64, bool) {
	if t.ffMinus == nil {
		return nil, false
	}
	return append([]float64(nil), t.ffMinus...), true
}

// FukuiZero is the averaged Fukui function (FF⁺ + FF⁻)/2.
func (t *LocalTool) FukuiZero() ([]float64, bool) {
	if t.ffPlus == nil || t.ffMinus == nil {
		return nil, false
	}
	out := make([]float64, len(t.ffPlus))
	for i := range out {
		out[i] = (t.ffPlus[i] + t.ffMinus[i]) / 2
	}
	return out, true
}

// DualDescriptor is FF⁺ − FF⁻.
func (t *LocalTool) DualDescriptor() ([]float64, bool) {
	if t.ffPlus == nil || t.ffMinus == nil {
		return nil, false
	}
	out := make([]float64, len(t.ffPlus))
	for i := range out {
		out[i] = t.ffPlus[i] - t.ffMinus[i]
	}
	return out, true
}

// weighted multiplies a Fukui array by a global scalar.  Absence of the
// array, the global tool, or the scalar itself (a model family that cannot
// produce it) all report ok=false.
func (t *LocalTool) weighted(scalar func(*GlobalTool) (float64, error), arr []float64, present bool) ([]float64, bool) {
	if !present || t.global == nil {
		return nil, false
	}
	v, err := scalar(t.global)
	if err != nil {
		return nil, false
	}
	out := make([]float64, len(arr))
	for i := range arr {
		out[i] = v * arr[i]
	}
	return out, true
}

func (t *LocalTool) plus() ([]float64, bool)  { return t.ffPlus, t.ffPlus != nil }
func (t *LocalTool) minus() ([]float64, bool) { return t.ffMinus, t.ffMinus != nil }

// Local descriptor catalog: each global scalar times FF⁺, FF⁻, and FF⁰.

func (t *LocalTool) IonizationPotentialPlus() ([]float64, bool) {
	arr, ok := t.plus()
	return t.weighted((*GlobalTool).IonizationPotential, arr, ok)
}

func (t *LocalTool) IonizationPotentialMinus() ([]float64, bool) {
	arr, ok := t.minus()
	return t.weighted((*GlobalTool).IonizationPotential, arr, ok)
}

func (t *LocalTool) IonizationPotentialZero() ([]float64, bool) {
	arr, ok := t.FukuiZero()
	return t.weighted((*GlobalTool).IonizationPotential, arr, ok)
}

func (t *LocalTool) ElectronAffinityPlus() ([]float64, bool) {
	arr, ok := t.plus()
	return t.weighted((*GlobalTool).ElectronAffinity, arr, ok)
}

func (t *LocalTool) ElectronAffinityMinus() ([]float64, bool) {
	arr, ok := t.minus()
	return t.weighted((*GlobalTool).ElectronAffinity, arr, ok)
}

func (t *LocalTool) ElectronAffinityZero() ([]float64, bool) {
	arr, ok := t.FukuiZero()
	return t.weighted((*GlobalTool).ElectronAffinity, arr, ok)
}

func (t *LocalTool) ChemicalPotentialPlus() ([]float64, bool) {
	arr, ok := t.plus()
	return t.weighted((*GlobalTool).ChemicalPotential, arr, ok)
}

func (t *LocalTool) ChemicalPotentialMinus() ([]float64, bool) {
	arr, ok := t.minus()
	return t.weighted((*GlobalTool).ChemicalPotential, arr, ok)
}

func (t *LocalTool) ChemicalPotentialZero() ([]float64, bool) {
	arr, ok := t.FukuiZero()
	return t.weighted((*GlobalTool).ChemicalPotential, arr, ok)
}

func (t *LocalTool) ChemicalHardnessPlus() ([]float64, bool) {
	arr, ok := t.plus()
	return t.weighted((*GlobalTool).ChemicalHardness, arr, ok)
}

func (t *LocalTool) ChemicalHardnessMinus() ([]float64, bool) {
	arr, ok := t.minus()
	return t.weighted((*GlobalTool).ChemicalHardness, arr, ok)
}

func (t *LocalTool) ChemicalHardnessZero() ([]float64, bool) {
	arr, ok := t.FukuiZero()
	return t.weighted((*GlobalTool).ChemicalHardness, arr, ok)
}

func (t *LocalTool) SoftnessPlus() ([]float64, bool) {
	arr, ok := t.plus()
	return t.weighted((*GlobalTool).Softness, arr, ok)
}

func (t *LocalTool) SoftnessMinus() ([]float64, bool) {
	arr, ok := t.minus()
	return t.weighted((*GlobalTool).Softness, arr, ok)
}

func (t *LocalTool) SoftnessZero() ([]float64, bool) {
	arr, ok := t.FukuiZero()
	return t.weighted((*GlobalTool).Softness, arr, ok)
}

func (t *LocalTool) ElectrophilicityPlus() ([]float64, bool) {
	arr, ok := t.plus()
	return t.weighted((*GlobalTool).Electrophilicity, arr, ok)
}

func (t *LocalTool) ElectrophilicityMinus() ([]float64, bool) {
	arr, ok := t.minus()
	return t.weighted((*GlobalTool).Electrophilicity, arr, ok)
}

func (t *LocalTool) ElectrophilicityZero() ([]float64, bool) {
	arr, ok := t.FukuiZero()
	return t.weighted((*GlobalTool).Electrophilicity, arr, ok)
}

func (t *LocalTool) NucleofugalityPlus() ([]float64, bool) {
	arr, ok := t.plus()
	return t.weighted((*GlobalTool).Nucleofugality, arr, ok)
}

func (t *LocalTool) NucleofugalityMinus() ([]float64, bool) {
	arr, ok := t.minus()
	return t.weighted((*GlobalTool).Nucleofugality, arr, ok)
}

func (t *LocalTool) NucleofugalityZero() ([]float64, bool) {
	arr, ok := t.FukuiZero()
	return t.weighted((*GlobalTool).Nucleofugality, arr, ok)
}

func (t *LocalTool) ElectrofugalityPlus() ([]float64, bool) {
	arr, ok := t.plus()
	return t.weighted((*GlobalTool).Electrofugality, arr, ok)
}

func (t *LocalTool) ElectrofugalityMinus() ([]float64, bool) {
	arr, ok := t.minus()
	return t.weighted((*GlobalTool).Electrofugality, arr, ok)
}

func (t *LocalTool) ElectrofugalityZero() ([]float64, bool) {
	arr, ok := t.FukuiZero()
	return t.weighted((*GlobalTool).Electrofugality, arr, ok)
}
