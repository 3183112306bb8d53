package conceptual

import (
	"math"

	"github.com/turtacn/ChemReactivity/pkg/errors"
)

// GlobalTool derives the full catalog of global reactivity descriptors from a
// single fitted energy model.  It owns the model by exclusive reference and
// carries no other state; every descriptor is computed on demand from the
// immutable parameters.
type GlobalTool struct {
	model EnergyModel
}

// NewGlobalTool wraps a fitted energy model.
func NewGlobalTool(model EnergyModel) (*GlobalTool, error) {
	if model == nil {
		return nil, errors.New(errors.ErrCodeValidation, "global tool requires a fitted energy model")
	}
	return &GlobalTool{model: model}, nil
}

// Model returns the wrapped energy model.
func (g *GlobalTool) Model() EnergyModel { return g.model }

// NMax returns the model's maximal electron population (possibly +Inf).
func (g *GlobalTool) NMax() float64 { return g.model.NMax() }

// IonizationPotential is E(N0−1) − E(N0).
func (g *GlobalTool) IonizationPotential() (float64, error) {
	n0 := g.model.ReferenceN()
	eMinus, err := g.model.Energy(n0 - 1)
	if err != nil {
		return 0, err
	}
	eZero, err := g.model.Energy(n0)
	if err != nil {
		return 0, err
	}
	return eMinus - eZero, nil
}

// IP is shorthand for IonizationPotential.
func (g *GlobalTool) IP() (float64, error) { return g.IonizationPotential() }

// ElectronAffinity is E(N0) − E(N0+1).
func (g *GlobalTool) ElectronAffinity() (float64, error) {
	n0 := g.model.ReferenceN()
	eZero, err := g.model.Energy(n0)
	if err != nil {
		return 0, err
	}
	ePlus, err := g.model.Energy(n0 + 1)
	if err != nil {
		return 0, err
	}
	return eZero - ePlus, nil
}

// EA is shorthand for ElectronAffinity.
func (g *GlobalTool) EA() (float64, error) { return g.ElectronAffinity() }

// ChemicalPotential is dE/dN at N0.
func (g *GlobalTool) ChemicalPotential() (float64, error) {
	return g.model.EnergyDerivative(g.model.ReferenceN(), 1)
}

// Mu is shorthand for ChemicalPotential.
func (g *GlobalTool) Mu() (float64, error) { return g.ChemicalPotential() }

// Electronegativity is −μ.
func (g *GlobalTool) Electronegativity() (float64, error) {
	mu, err := g.ChemicalPotential()
	if err != nil {
		return 0, err
	}
	return -mu, nil
}

// ChemicalHardness is d²E/dN² at N0.
func (g *GlobalTool) ChemicalHardness() (float64, error) {
	return g.model.EnergyDerivative(g.model.ReferenceN(), 2)
}

// Eta is shorthand for ChemicalHardness.
func (g *GlobalTool) Eta() (float64, error) { return g.ChemicalHardness() }

// Softness is 1/η.
func (g *GlobalTool) Softness() (float64, error) {
	eta, err := g.ChemicalHardness()
	if err != nil {
		return 0, err
	}
	if eta == 0 {
		return 0, errors.New(errors.ErrCodeEvaluationDomain,
			"softness is undefined where chemical hardness vanishes")
	}
	return 1 / eta, nil
}

// HyperHardness is the (order+1)-th energy derivative at N0, for order ≥ 2.
func (g *GlobalTool) HyperHardness(order int) (float64, error) {
	if order < 2 {
		return 0, errors.Newf(errors.ErrCodeInvalidArgument,
			"hyper-hardness order must be at least 2, got %d", order)
	}
	return g.model.EnergyDerivative(g.model.ReferenceN(), order+1)
}

// HyperSoftness is −dⁿΩ/dμⁿ at N0 with n = order+1, for order ≥ 2.
func (g *GlobalTool) HyperSoftness(order int) (float64, error) {
	if order < 2 {
		return 0, errors.Newf(errors.ErrCodeInvalidArgument,
			"hyper-softness order must be at least 2, got %d", order)
	}
	d, err := g.GrandPotentialDerivative(g.model.ReferenceN(), order+1)
	if err != nil {
		return 0, err
	}
	return -d, nil
}

// Electrophilicity is E(N0) − E(NMax), the stabilization gained by filling up
// to the maximal population.  For asymptotic families E(NMax) is the finite
// asymptotic energy, so the value stays finite.
func (g *GlobalTool) Electrophilicity() (float64, error) {
	eZero, err := g.model.Energy(g.model.ReferenceN())
	if err != nil {
		return 0, err
	}
	eMax, err := g.model.Energy(g.model.NMax())
	if err != nil {
		return 0, err
	}
	return eZero - eMax, nil
}

// Nucleofugality is E(NMax) − E(N0+1).
func (g *GlobalTool) Nucleofugality() (float64, error) {
	eMax, err := g.model.Energy(g.model.NMax())
	if err != nil {
		return 0, err
	}
	ePlus, err := g.model.Energy(g.model.ReferenceN() + 1)
	if err != nil {
		return 0, err
	}
	return eMax - ePlus, nil
}

// Electrofugality is E(N0−1) − E(NMax).
func (g *GlobalTool) Electrofugality() (float64, error) {
	eMinus, err := g.model.Energy(g.model.ReferenceN() - 1)
	if err != nil {
		return 0, err
	}
	eMax, err := g.model.Energy(g.model.NMax())
	if err != nil {
		return 0, err
	}
	return eMinus - eMax, nil
}

// GrandPotential is the Legendre transform Ω(N) = E(N) − N·dE/dN(N).  At
// N = +∞ the N·E′(N) term vanishes in the limit for the asymptotic families,
// leaving the asymptotic energy.
func (g *GlobalTool) GrandPotential(n float64) (float64, error) {
	if math.IsInf(n, 1) {
		return g.model.Energy(n)
	}
	e, err := g.model.Energy(n)
	if err != nil {
		return 0, err
	}
	d1, err := g.model.EnergyDerivative(n, 1)
	if err != nil {
		return 0, err
	}
	return e - n*d1, nil
}

// GrandPotentialDerivative is dᵒʳᵈᵉʳΩ/dμᵒʳᵈᵉʳ evaluated at μ(n).  Order 1 is
// −N by construction.  Higher orders follow from the derivatives of the
// inverse function N(μ):
//
//	d²Ω/dμ² = −1/E″
//	d³Ω/dμ³ = E‴/E″³
//	d⁴Ω/dμ⁴ = E⁗/E″⁴ − 3E‴²/E″⁵
//	d⁵Ω/dμ⁵ = E⁽⁵⁾/E″⁵ − 10E‴E⁗/E″⁶ + 15E‴³/E″⁷
//
// all evaluated at n.  Orders above five are not supported.
func (g *GlobalTool) GrandPotentialDerivative(n float64, order int) (float64, error) {
	if err := checkOrder(order); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidArgument,
			"electron count cannot be negative, got n=%g", n)
	}
	if order == 1 {
		return -n, nil
	}
	if order > 5 {
		return 0, errors.Newf(errors.ErrCodeUnsupportedOrder,
			"grand potential derivatives are available in closed form up to order 5, got %d", order)
	}

	d2, err := g.model.EnergyDerivative(n, 2)
	if err != nil {
		return 0, err
	}
	if d2 == 0 {
		return 0, errors.New(errors.ErrCodeEvaluationDomain,
			"grand potential derivative is undefined where chemical hardness vanishes")
	}
	if order == 2 {
		return -1 / d2, nil
	}

	d3, err := g.model.EnergyDerivative(n, 3)
	if err != nil {
		return 0, err
	}
	if order == 3 {
		return d3 / math.Pow(d2, 3), nil
	}

	d4, err := g.model.EnergyDerivative(n, 4)
	if err != nil {
		return 0, err
	}
	if order == 4 {
		return d4/math.Pow(d2, 4) - 3*d3*d3/math.Pow(d2, 5), nil
	}

	d5, err := g.model.EnergyDerivative(n, 5)
	if err != nil {
		return 0, err
	}
	return d5/math.Pow(d2, 5) - 10*d3*d4/math.Pow(d2, 6) + 15*math.Pow(d3, 3)/math.Pow(d2, 7), nil
}

// ConvertMuToN solves dE/dN = mu for N via the model's closed-form inversion.
func (g *GlobalTool) ConvertMuToN(mu float64) (float64, error) {
	return g.model.ConvertMuToN(mu)
}

// GrandPotentialMu is Ω as a function of the chemical potential,
// Ω(μ) = Ω(N(μ)).
func (g *GlobalTool) GrandPotentialMu(mu float64) (float64, error) {
	n, err := g.ConvertMuToN(mu)
	if err != nil {
		return 0, err
	}
	return g.GrandPotential(n)
}

// GrandPotentialMuDerivative is dᵒʳᵈᵉʳΩ/dμᵒʳᵈᵉʳ at the given chemical
// potential.
func (g *GlobalTool) GrandPotentialMuDerivative(mu float64, order int) (float64, error) {
	n, err := g.ConvertMuToN(mu)
	if err != nil {
		return 0, err
	}
	return g.GrandPotentialDerivative(n, order)
}
