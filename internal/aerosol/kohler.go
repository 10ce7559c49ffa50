package aerosol

import (
	"math"

	"github.com/san-kum/cloudparcel/internal/thermo"
)

// DefaultSurfaceTension of water in N/m.
const DefaultSurfaceTension = 0.072

// NeverActivates is the critical supersaturation of a particle with no
// hygroscopicity. No finite S reaches it.
var NeverActivates = math.Inf(1)

// KelvinParameter returns A = 4*sigma*Mw / (R*T*rho_w) in m.
func KelvinParameter(sigma, t float64) float64 {
	return 4 * sigma * thermo.Mw / (thermo.R * t * thermo.RhoWater)
}

// CriticalSupersaturation returns the kappa-Köhler critical supersaturation
// (dimensionless, 0.001 = 0.1%) of a dry particle with diameter dp (m) and
// hygroscopicity kappa at temperature t (K). kappa <= 0 returns
// NeverActivates.
func CriticalSupersaturation(dp, kappa, sigma, t float64) float64 {
	if kappa <= 0 {
		return NeverActivates
	}
	a := KelvinParameter(sigma, t)
	return 4 * a * a * a / (27 * dp * dp * dp * kappa)
}
