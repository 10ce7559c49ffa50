package icenuc

import (
	"errors"
	"math"
	"testing"
)

func TestDepositionSinkSubsaturated(t *testing.T) {
	for _, s := range []float64{0, -1e-6, -0.5} {
		removed, qi := DepositionSink(s, 600, 0.3, 1, DefaultDeposition())
		if removed != 0 || qi != 0.3 {
			t.Errorf("S=%g: got (%g, %g), want (0, 0.3)", s, removed, qi)
		}
	}
}

func TestDepositionSinkDefaults(t *testing.T) {
	p := DefaultDeposition()
	s, es, dt := 1e-3, 600.0, 1.0

	removed, qi := DepositionSink(s, es, 0, dt, p)
	want := 1e-5 * s * es * dt
	if math.Abs(removed-want) > 1e-18 {
		t.Errorf("removed = %g, want %g", removed, want)
	}
	if math.Abs(qi-1e-8*want) > 1e-24 {
		t.Errorf("qi = %g, want %g", qi, 1e-8*want)
	}
}

func TestDepositionSinkGrowthEnhancement(t *testing.T) {
	p := DefaultDeposition()
	r0, _ := DepositionSink(1e-3, 600, 0, 1, p)
	r1, _ := DepositionSink(1e-3, 600, 0.1, 1, p)
	if math.Abs(r1/r0-6) > 1e-9 {
		t.Errorf("expected 1+alpha*qi = 6x enhancement, got %g", r1/r0)
	}
}

func TestDepositionSinkQiMonotone(t *testing.T) {
	p := DefaultDeposition()
	qi := 0.0
	for i := 0; i < 100; i++ {
		s := 1e-3 * math.Sin(float64(i))
		_, next := DepositionSink(s, 600, qi, 1, p)
		if next < qi {
			t.Fatalf("qi decreased at step %d: %g < %g", i, next, qi)
		}
		qi = next
	}
}

func TestLinearDeposition(t *testing.T) {
	s, es, dt := 2e-3, 611.0, 0.5
	kIce, qiGrowth := 0.4, 5e-12

	removed, qi := DepositionSink(s, es, 0, dt, LinearDeposition(kIce, qiGrowth))
	if want := kIce * s * es * dt; math.Abs(removed-want) > 1e-12 {
		t.Errorf("removed = %g, want %g", removed, want)
	}
	if want := qiGrowth * s * es * dt; math.Abs(qi-want) > 1e-20 {
		t.Errorf("qi = %g, want %g", qi, want)
	}

	removed, qi = DepositionSink(s, es, 0, dt, LinearDeposition(0, qiGrowth))
	if removed != 0 {
		t.Errorf("zero k_ice removed %g, want 0", removed)
	}
	if want := qiGrowth * s * es * dt; math.Abs(qi-want) > 1e-20 {
		t.Errorf("zero k_ice: qi = %g, want %g", qi, want)
	}

	removed, qi = DepositionSink(-s, es, 1, dt, LinearDeposition(0, qiGrowth))
	if removed != 0 || qi != 1 {
		t.Errorf("subsaturated: got (%g, %g), want (0, 1)", removed, qi)
	}
}

func TestDepositionParamsValidate(t *testing.T) {
	if err := DefaultDeposition().Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}
	err := DepositionParams{K0: -1}.Validate()
	if !errors.Is(err, ErrInvalidDeposition) {
		t.Errorf("expected ErrInvalidDeposition, got %v", err)
	}
	if err := (DepositionParams{QiRate: -1}).Validate(); !errors.Is(err, ErrInvalidDeposition) {
		t.Errorf("negative qi rate: expected ErrInvalidDeposition, got %v", err)
	}
}
