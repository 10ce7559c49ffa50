package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cloudparcel/internal/parcel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.TEnd <= 0 {
		t.Error("t_end should be positive")
	}
	sc, err := cfg.ToScenario()
	if err != nil {
		t.Fatalf("default config should convert: %v", err)
	}
	if sc.CoolingRate != 0.01 {
		t.Errorf("expected 1 m/s updraft to map to 0.01 K/s, got %v", sc.CoolingRate)
	}
	if len(sc.Aerosols) != 2 || len(sc.IceNuclei) != 1 {
		t.Errorf("unexpected populations: %d aerosols, %d nuclei", len(sc.Aerosols), len(sc.IceNuclei))
	}
}

func TestCoolingPolicy(t *testing.T) {
	tests := []struct {
		policy CoolingPolicy
		w      float64
		want   float64
	}{
		{PolicyLinear, 1.0, 0.01},
		{"", 2.0, 0.02},
		{PolicyDryAdiabatic, 1.0, 9.81 / 1004},
	}
	for _, tt := range tests {
		got, err := tt.policy.Rate(tt.w)
		if err != nil {
			t.Fatalf("%q: %v", tt.policy, err)
		}
		if math.Abs(got-tt.want) > 1e-15 {
			t.Errorf("%q: expected %v, got %v", tt.policy, tt.want, got)
		}
	}

	if _, err := CoolingPolicy("moist").Rate(1); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestExplicitCoolingRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Updraft = 0
	cfg.CoolingRate = 0.003

	sc, err := cfg.ToScenario()
	if err != nil {
		t.Fatal(err)
	}
	if sc.CoolingRate != 0.003 {
		t.Errorf("expected explicit cooling rate, got %v", sc.CoolingRate)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("simple")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.T0 != 288.0 {
		t.Errorf("expected T0 288, got %f", cfg.T0)
	}

	cfg.Aerosols[0].N = 1
	if Presets["simple"].Aerosols[0].N == 1 {
		t.Error("GetPreset must not share population slices")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if _, err := LookupPreset("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestPresetsConvert(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			if _, err := GetPreset(name).ToScenario(); err != nil {
				t.Errorf("preset %s: %v", name, err)
			}
		})
	}
}

func TestPresetParameters(t *testing.T) {
	tests := []struct {
		name    string
		cooling float64
		kIce    float64
		ice     bool
		sink    parcel.LiquidSink
		nAero   int
	}{
		{"simple", 0.01, 0.4, false, parcel.LiquidRelax, 2},
		{"competition", 0.01, 0.4, false, parcel.LiquidCompetition, 2},
		{"mixed_ice", 0.01, 0.4, true, parcel.LiquidRelax, 2},
		{"mixed_sweep", 0.01, 2.0, true, parcel.LiquidRelax, 2},
		{"bio_onset", 0.01, 0.4, true, parcel.LiquidRelax, 0},
		{"updraft", 0.005, 0.4, false, parcel.LiquidRelax, 1},
	}
	for _, tt := range tests {
		sc, err := GetPreset(tt.name).ToScenario()
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if math.Abs(sc.CoolingRate-tt.cooling) > 1e-15 {
			t.Errorf("%s: cooling %v, want %v", tt.name, sc.CoolingRate, tt.cooling)
		}
		if sc.KIce != tt.kIce || sc.IceEnabled != tt.ice || sc.LiquidSink != tt.sink {
			t.Errorf("%s: unexpected ice/sink settings %+v", tt.name, sc)
		}
		if len(sc.Aerosols) != tt.nAero {
			t.Errorf("%s: expected %d aerosols, got %d", tt.name, tt.nAero, len(sc.Aerosols))
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	cfg := GetPreset("competition")
	cfg.Aerosols[1].N = 300

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Liquid.Sink != "competition" || loaded.Liquid.SinkReference != "sulfate" {
		t.Errorf("liquid settings lost: %+v", loaded.Liquid)
	}
	if len(loaded.Aerosols) != 2 || loaded.Aerosols[1].N != 300 {
		t.Errorf("aerosols lost: %+v", loaded.Aerosols)
	}
	if len(loaded.IceNuclei) != 0 {
		t.Errorf("expected no ice nuclei, got %+v", loaded.IceNuclei)
	}
}

func TestLoadPartialOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	doc := []byte("name: cold\nt0: 268.15\nice:\n  enabled: true\n")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.T0 != 268.15 || !cfg.Ice.Enabled {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Ice.KIce != DefaultKIce || cfg.Dt != DefaultDt {
		t.Errorf("defaults not kept: k_ice=%v dt=%v", cfg.Ice.KIce, cfg.Dt)
	}
	if len(cfg.Aerosols) != 2 {
		t.Errorf("expected default aerosols, got %d", len(cfg.Aerosols))
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dt: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestToScenarioInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0
	_, err := cfg.ToScenario()
	if !errors.Is(err, parcel.ErrInvalidScenario) {
		t.Errorf("expected ErrInvalidScenario, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.CoolingPolicy = "bogus"
	if _, err := cfg.ToScenario(); !errors.Is(err, ErrUnknownPolicy) {
		t.Errorf("expected ErrUnknownPolicy, got %v", err)
	}
}
