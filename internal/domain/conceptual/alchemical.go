package conceptual

import (
	"math"

	"github.com/turtacn/ChemReactivity/pkg/errors"
)

// alchemicalShift is the finite displacement, per cartesian axis, applied to
// grid points when probing the electrostatic potential response.
const alchemicalShift = 1.0e-3

// DensityProvider abstracts the electronic-structure backend an
// AlchemicalTool samples.  Points are cartesian coordinates, one [3]float64
// per grid point; returned slices are parallel to the input points.
type DensityProvider interface {
	ComputeDensity(points [][3]float64) ([]float64, error)
	ComputeESP(points [][3]float64) ([]float64, error)
	AtomicNumbers() []float64
}

// AlchemicalTool probes the response of a molecular system to nuclear-charge
// perturbation on a fixed grid.  The electron density on the grid is
// computed eagerly at construction so that repeated derivative calls do not
// re-sample it.
type AlchemicalTool struct {
	provider DensityProvider
	points   [][3]float64
	density  []float64
}

// NewAlchemicalTool samples the density at the given grid points and returns
// a tool bound to them.
func NewAlchemicalTool(provider DensityProvider, points [][3]float64) (*AlchemicalTool, error) {
	if provider == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "density provider must not be nil")
	}
	if len(points) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "at least one grid point is required")
	}
	pts := append([][3]float64(nil), points...)
	density, err := provider.ComputeDensity(pts)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "computing density on grid")
	}
	if len(density) != len(pts) {
		return nil, errors.Newf(errors.ErrCodeInternal,
			"density provider returned %d values for %d points", len(density), len(pts))
	}
	return &AlchemicalTool{provider: provider, points: pts, density: density}, nil
}

// Points returns the grid the tool is bound to.
func (t *AlchemicalTool) Points() [][3]float64 {
	return append([][3]float64(nil), t.points...)
}

// Density returns the electron density sampled at the grid points.
func (t *AlchemicalTool) Density() []float64 {
	return append([]float64(nil), t.density...)
}

// FirstDerivative evaluates the first-order alchemical derivative of the
// energy on the grid: the electrostatic potential at points displaced by
// shift/√3 along each axis, minus the nuclear self-interaction Z/shift of
// the nucleus sitting at each point.  The grid must therefore hold one
// point per nucleus, in atom order.
func (t *AlchemicalTool) FirstDerivative() ([]float64, error) {
	numbers := t.provider.AtomicNumbers()
	if len(numbers) != len(t.points) {
		return nil, errors.Newf(errors.ErrCodeInvalidArgument,
			"alchemical derivative needs one grid point per nucleus, got %d points for %d atoms",
			len(t.points), len(numbers))
	}
	delta := alchemicalShift / math.Sqrt(3)
	shifted := make([][3]float64, len(t.points))
	for i, p := range t.points {
		shifted[i] = [3]float64{p[0] + delta, p[1] + delta, p[2] + delta}
	}
	esp, err := t.provider.ComputeESP(shifted)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "computing electrostatic potential on shifted grid")
	}
	if len(esp) != len(t.points) {
		return nil, errors.Newf(errors.ErrCodeInternal,
			"density provider returned %d potential values for %d points", len(esp), len(t.points))
	}
	out := make([]float64, len(esp))
	for i, v := range esp {
		out[i] = v - numbers[i]/alchemicalShift
	}
	return out, nil
}
