package conceptual

// EnergyTriple is the wire/storage form of the three finite-difference energy
// samples a descriptor set is fitted from.  Counts and Values are parallel
// slices ordered N0−1, N0, N0+1.
type EnergyTriple struct {
	Counts []float64 `json:"counts"`
	Values []float64 `json:"values"`
}

// DescriptorValues carries the global reactivity descriptors derived from a
// fitted energy model.  Fields are pointers because not every model family can
// produce every descriptor: the piecewise-linear model has no two-sided
// chemical potential or hardness at the reference count, and descriptors that
// diverge (an unbounded maximal electron population, for example) are stored
// as nil rather than as a non-encodable infinity.
type DescriptorValues struct {
	IonizationPotential *float64 `json:"ionization_potential,omitempty"`
	ElectronAffinity    *float64 `json:"electron_affinity,omitempty"`
	ChemicalPotential   *float64 `json:"chemical_potential,omitempty"`
	ChemicalHardness    *float64 `json:"chemical_hardness,omitempty"`
	Softness            *float64 `json:"softness,omitempty"`
	Electronegativity   *float64 `json:"electronegativity,omitempty"`
	Electrophilicity    *float64 `json:"electrophilicity,omitempty"`
	Nucleofugality      *float64 `json:"nucleofugality,omitempty"`
	Electrofugality     *float64 `json:"electrofugality,omitempty"`
	NMax                *float64 `json:"n_max,omitempty"`
}
