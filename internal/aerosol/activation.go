package aerosol

// CheckActivation compares the ambient supersaturation s against the critical
// supersaturation of p at temperature t. It returns a copy of p with
// Activated set to s >= Sc, the same flag, and Sc. p itself is not modified.
func CheckActivation(s float64, p Population, t float64) (Population, bool, float64) {
	sc := CriticalSupersaturation(p.Diameter(), p.Kappa, DefaultSurfaceTension, t)
	p.Activated = s >= sc
	return p, p.Activated, sc
}

// AnyActivated reports whether at least one population is activated.
func AnyActivated(pops []Population) bool {
	for _, p := range pops {
		if p.Activated {
			return true
		}
	}
	return false
}

// ActivatedSurface sums SurfaceProxy over the activated populations.
func ActivatedSurface(pops []Population) float64 {
	sum := 0.0
	for _, p := range pops {
		if p.Activated {
			sum += p.SurfaceProxy()
		}
	}
	return sum
}
