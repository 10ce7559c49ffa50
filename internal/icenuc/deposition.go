package icenuc

import "fmt"

// DepositionParams configures DepositionSink.
type DepositionParams struct {
	// K0 is the base sink rate in 1/s.
	K0 float64 `json:"k0" yaml:"k0"`
	// Alpha scales the growth enhancement with accumulated qi.
	Alpha float64 `json:"alpha" yaml:"alpha"`
	// Yield converts removed vapor pressure (Pa) into qi units. The default
	// is a small fixed coupling that keeps qi growth stable, not a derived
	// coefficient.
	Yield float64 `json:"yield" yaml:"yield"`
	// QiRate grows qi directly with S*es, independent of the vapor removed.
	QiRate float64 `json:"qi_rate,omitempty" yaml:"qi_rate,omitempty"`
}

// DefaultDeposition returns the reference deposition coefficients.
func DefaultDeposition() DepositionParams {
	return DepositionParams{K0: 1e-5, Alpha: 50, Yield: 1e-8}
}

// LinearDeposition expresses a constant-rate sink e -= kIce*S*es*dt with
// qi += qiGrowth*S*es*dt in terms of DepositionParams.
func LinearDeposition(kIce, qiGrowth float64) DepositionParams {
	return DepositionParams{K0: kIce, QiRate: qiGrowth}
}

// Validate rejects negative coefficients.
func (p DepositionParams) Validate() error {
	if p.K0 < 0 || p.Alpha < 0 || p.Yield < 0 || p.QiRate < 0 {
		return fmt.Errorf("%w: k0=%g alpha=%g yield=%g qi_rate=%g", ErrInvalidDeposition, p.K0, p.Alpha, p.Yield, p.QiRate)
	}
	return nil
}

// DepositionSink returns the vapor pressure removed by deposition onto ice
// over dt and the updated ice proxy. Subsaturated air (s <= 0) removes
// nothing and leaves qi unchanged.
func DepositionSink(s, es, qi, dt float64, p DepositionParams) (float64, float64) {
	if s <= 0 {
		return 0, qi
	}
	removed := p.K0 * (1 + p.Alpha*qi) * s * es * dt
	return removed, qi + p.Yield*removed + p.QiRate*s*es*dt
}
