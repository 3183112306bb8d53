package conceptual

import (
	"fmt"
	"math"
	"sort"

	"github.com/turtacn/ChemReactivity/pkg/errors"
)

// spacingTol is the tolerance used when checking that the three electron
// counts form a unit-spaced triple.  Counts may be non-integer (conceptual
// DFT treats N as continuous), so the comparison cannot be exact-integer.
const spacingTol = 1e-8

// EnergySamples is the validated fitting input: three energies at the
// contiguous electron counts {N0−1, N0, N0+1}.
type EnergySamples struct {
	n0     float64
	eMinus float64
	eZero  float64
	ePlus  float64
}

// NewEnergySamples validates the {electron count: energy} mapping and returns
// the ordered triple.  Each violated condition yields a distinct
// ErrCodeInvalidFitInput error so callers can tell which invariant failed.
func NewEnergySamples(energies map[float64]float64) (*EnergySamples, error) {
	if len(energies) != 3 {
		return nil, errors.Newf(errors.ErrCodeInvalidFitInput,
			"fitting requires exactly 3 energy values, got %d", len(energies))
	}

	counts := make([]float64, 0, 3)
	for n := range energies {
		if n < 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidFitInput,
				"electron counts must be non-negative, got %g", n)
		}
		counts = append(counts, n)
	}
	sort.Float64s(counts)

	n0 := counts[1]
	if n0 < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidFitInput,
			"reference electron count must be at least one, got N0=%g", n0)
	}
	if math.Abs(counts[0]-(n0-1)) > spacingTol || math.Abs(counts[2]-(n0+1)) > spacingTol {
		return nil, errors.Newf(errors.ErrCodeInvalidFitInput,
			"electron counts must differ by one, got %v", counts)
	}

	s := &EnergySamples{
		n0:     n0,
		eMinus: energies[counts[0]],
		eZero:  energies[counts[1]],
		ePlus:  energies[counts[2]],
	}
	if !(s.eMinus > s.eZero && s.eZero >= s.ePlus) {
		return nil, errors.New(errors.ErrCodeInvalidFitInput,
			"energy values for consecutive electron counts must be monotonic, "+
				"expected E(N0-1) > E(N0) >= E(N0+1)").
			WithDetail(fmt.Sprintf("E=[%g, %g, %g]", s.eMinus, s.eZero, s.ePlus))
	}
	return s, nil
}

// ReferenceN returns N0, the middle electron count.
func (s *EnergySamples) ReferenceN() float64 { return s.n0 }

// EnergyMinus returns E(N0−1).
func (s *EnergySamples) EnergyMinus() float64 { return s.eMinus }

// EnergyZero returns E(N0).
func (s *EnergySamples) EnergyZero() float64 { return s.eZero }

// EnergyPlus returns E(N0+1).
func (s *EnergySamples) EnergyPlus() float64 { return s.ePlus }

// IonizationPotential returns the vertical IP of the triple, E(N0−1) − E(N0).
func (s *EnergySamples) IonizationPotential() float64 { return s.eMinus - s.eZero }

// ElectronAffinity returns the vertical EA of the triple, E(N0) − E(N0+1).
func (s *EnergySamples) ElectronAffinity() float64 { return s.eZero - s.ePlus }
