package icenuc

import (
	"errors"
	"math"
	"testing"
)

func bioIN() BiologicalIN {
	return BiologicalIN{Name: "bioIN", N: 50, T50: 263.15, Width: 2}
}

func TestIceActiveFractionAtT50(t *testing.T) {
	b := bioIN()
	if f := b.IceActiveFraction(b.T50); f != 0.5 {
		t.Errorf("fraction at T50 = %v, want exactly 0.5", f)
	}
}

func TestIceActiveFractionMonotoneAndBounded(t *testing.T) {
	for _, width := range []float64{0.1, 1, 2, 10} {
		b := bioIN()
		b.Width = width
		prev := -1.0
		for temp := 300.0; temp >= 200; temp -= 0.25 {
			f := b.IceActiveFraction(temp)
			if f < 0 || f > 1 {
				t.Fatalf("width %g: fraction %g out of [0,1] at T=%g", width, f, temp)
			}
			if f < prev {
				t.Fatalf("width %g: fraction decreased on cooling at T=%g: %g < %g", width, temp, f, prev)
			}
			prev = f
		}
	}
}

func TestIceActiveFractionZeroWidthFloored(t *testing.T) {
	b := bioIN()
	b.Width = 0
	if f := b.IceActiveFraction(b.T50 - 0.1); f != 1 {
		t.Errorf("zero width below T50: got %g, want 1", f)
	}
	if f := b.IceActiveFraction(b.T50 + 0.1); f != 0 {
		t.Errorf("zero width above T50: got %g, want 0", f)
	}
	if f := b.IceActiveFraction(b.T50); math.IsNaN(f) {
		t.Error("zero width at T50 produced NaN")
	}
}

func TestActiveNumber(t *testing.T) {
	b := bioIN()
	if got := b.ActiveNumber(b.T50); got != 25 {
		t.Errorf("ActiveNumber(T50) = %v, want 25", got)
	}
}

func TestCheckNucleation(t *testing.T) {
	b := bioIN()
	tests := []struct {
		name      string
		temp      float64
		threshold float64
		want      bool
	}{
		{"warm", 273.15, DefaultThreshold, false},
		{"at T50", 263.15, DefaultThreshold, true},
		{"at T50 high threshold", 263.15, 30, false},
		{"cold", 250, DefaultThreshold, true},
		{"exact threshold", 263.15, 25, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, nActive := CheckNucleation(tt.temp, b, tt.threshold)
			if got != tt.want {
				t.Errorf("nucleated = %v (N_active %g), want %v", got, nActive, tt.want)
			}
			if got != (b.ActiveNumber(tt.temp) >= tt.threshold) {
				t.Error("nucleation flag disagrees with ActiveNumber")
			}
		})
	}
}

func TestCheckNucleationPure(t *testing.T) {
	b := bioIN()
	before := b
	n1, a1 := CheckNucleation(270, b, 1)
	n2, a2 := CheckNucleation(270, b, 1)
	if n1 != n2 || a1 != a2 {
		t.Error("repeated calls differ")
	}
	if b != before {
		t.Error("population mutated")
	}
}

func TestOnsetTemperatureAboveT50(t *testing.T) {
	// N=50 needs only a 2% active fraction to reach one active IN per m^3,
	// so onset happens near T50 + width*ln(49).
	b := bioIN()
	want := b.T50 + b.Width*math.Log(49)
	if ok, _ := CheckNucleation(want+1e-6, b, 1); ok {
		t.Error("nucleated above analytic onset temperature")
	}
	if ok, _ := CheckNucleation(want-1e-6, b, 1); !ok {
		t.Error("did not nucleate below analytic onset temperature")
	}
}

func TestBiologicalINValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BiologicalIN)
		wantErr bool
	}{
		{"valid", func(b *BiologicalIN) {}, false},
		{"zero n", func(b *BiologicalIN) { b.N = 0 }, true},
		{"zero width", func(b *BiologicalIN) { b.Width = 0 }, true},
		{"negative width", func(b *BiologicalIN) { b.Width = -1 }, true},
		{"nan t50", func(b *BiologicalIN) { b.T50 = math.NaN() }, true},
		{"empty name", func(b *BiologicalIN) { b.Name = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bioIN()
			tt.mutate(&b)
			err := b.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidNuclei) {
				t.Errorf("expected ErrInvalidNuclei, got %v", err)
			}
		})
	}
}
