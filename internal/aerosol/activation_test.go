package aerosol

import (
	"errors"
	"math"
	"testing"
)

func sulfate() Population {
	return Population{Name: "sulfate", N: 500e6, Radius: 30e-9, Kappa: 1.0, RhoP: 1770}
}

func TestCheckActivationMatchesCriticalSupersaturation(t *testing.T) {
	p := sulfate()
	temp := 273.15
	sc := CriticalSupersaturation(2*p.Radius, p.Kappa, DefaultSurfaceTension, temp)

	tests := []struct {
		name string
		s    float64
		want bool
	}{
		{"below", sc * 0.5, false},
		{"exactly critical", sc, true},
		{"above", sc * 2, true},
		{"subsaturated", -0.05, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, activated, gotSc := CheckActivation(tt.s, p, temp)
			if activated != tt.want || got.Activated != tt.want {
				t.Errorf("activated = %v (record %v), want %v", activated, got.Activated, tt.want)
			}
			if gotSc != sc {
				t.Errorf("Sc = %g, want %g", gotSc, sc)
			}
		})
	}
}

func TestCheckActivationNotSticky(t *testing.T) {
	p := sulfate()
	p, activated, _ := CheckActivation(0.01, p, 273.15)
	if !activated {
		t.Fatal("expected activation at S=0.01")
	}
	p, activated, _ = CheckActivation(-0.01, p, 273.15)
	if activated || p.Activated {
		t.Error("activation should clear when S drops below Sc")
	}
}

func TestCheckActivationDoesNotMutateInput(t *testing.T) {
	p := sulfate()
	_, activated, _ := CheckActivation(0.01, p, 273.15)
	if !activated {
		t.Fatal("expected activation")
	}
	if p.Activated {
		t.Error("input population was mutated")
	}
}

func TestCheckActivationIdempotent(t *testing.T) {
	p := sulfate()
	a1, f1, sc1 := CheckActivation(1e-5, p, 270)
	a2, f2, sc2 := CheckActivation(1e-5, a1, 270)
	if f1 != f2 || sc1 != sc2 || a1 != a2 {
		t.Errorf("repeated calls differ: (%v, %g) vs (%v, %g)", f1, sc1, f2, sc2)
	}
}

func TestCheckActivationNeverForNonHygroscopic(t *testing.T) {
	p := sulfate()
	p.Kappa = 0
	for _, s := range []float64{0, 1e-3, 1, 1e6, math.MaxFloat64} {
		if _, activated, _ := CheckActivation(s, p, 273.15); activated {
			t.Errorf("kappa=0 activated at S=%g", s)
		}
	}
}

func TestPopulationValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Population)
		wantErr bool
	}{
		{"valid", func(p *Population) {}, false},
		{"zero kappa", func(p *Population) { p.Kappa = 0 }, false},
		{"empty name", func(p *Population) { p.Name = "" }, true},
		{"zero n", func(p *Population) { p.N = 0 }, true},
		{"negative radius", func(p *Population) { p.Radius = -1e-9 }, true},
		{"zero density", func(p *Population) { p.RhoP = 0 }, true},
		{"nan n", func(p *Population) { p.N = math.NaN() }, true},
		{"inf radius", func(p *Population) { p.Radius = math.Inf(1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sulfate()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPopulation) {
				t.Errorf("expected ErrInvalidPopulation, got %v", err)
			}
		})
	}
}

func TestActivatedSurface(t *testing.T) {
	pops := []Population{
		{Name: "a", N: 100, Radius: 2, Activated: true},
		{Name: "b", N: 10, Radius: 3, Activated: false},
		{Name: "c", N: 1, Radius: 1, Activated: true},
	}
	if got := ActivatedSurface(pops); got != 401 {
		t.Errorf("ActivatedSurface = %v, want 401", got)
	}
	if !AnyActivated(pops) {
		t.Error("AnyActivated = false, want true")
	}
	if AnyActivated(pops[1:2]) {
		t.Error("AnyActivated = true for inactive population")
	}
}
