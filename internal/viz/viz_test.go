package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/cloudparcel/internal/parcel"
)

func newSim(t *testing.T, tEnd float64) *parcel.Simulator {
	t.Helper()
	sc := parcel.DefaultScenario()
	sc.IceEnabled = true
	sc.TEnd = tEnd
	sim, err := parcel.New(sc)
	if err != nil {
		t.Fatal(err)
	}
	return sim
}

func tickN(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelAdvancesOnTick(t *testing.T) {
	m := NewModel(newSim(t, 100))
	m = tickN(m, 3)
	if len(m.samples) != 3*m.stepsPerTick {
		t.Errorf("expected %d samples, got %d", 3*m.stepsPerTick, len(m.samples))
	}
	if m.last.Time != float64(len(m.samples)-1) {
		t.Errorf("last sample time %v does not match count %d", m.last.Time, len(m.samples))
	}
}

func TestModelPause(t *testing.T) {
	m := NewModel(newSim(t, 100))
	next, _ := m.Update(key(" "))
	m = next.(Model)
	m = tickN(m, 5)
	if len(m.samples) != 0 {
		t.Errorf("paused model should not step, got %d samples", len(m.samples))
	}
}

func TestModelCompletesAndMatchesRun(t *testing.T) {
	sim := newSim(t, 400)
	m := NewModel(sim)
	m = tickN(m, 200)

	if !m.done {
		t.Fatal("expected model to reach the horizon")
	}
	res := m.Result()
	if len(res.Samples) != 401 {
		t.Fatalf("expected 401 samples, got %d", len(res.Samples))
	}
	if res.IceOnset == nil || res.IceOnset.Time != 222 {
		t.Errorf("expected onset at 222 s, got %+v", res.IceOnset)
	}
	if !strings.Contains(m.View(), "COMPLETE") {
		t.Error("view should report completion")
	}
}

func TestModelResetAndSpeed(t *testing.T) {
	m := NewModel(newSim(t, 100))
	m = tickN(m, 2)

	next, _ := m.Update(key("+"))
	m = next.(Model)
	if m.stepsPerTick != 8 {
		t.Errorf("expected 8 steps per tick, got %d", m.stepsPerTick)
	}

	next, _ = m.Update(key("r"))
	m = next.(Model)
	if len(m.samples) != 0 || m.done {
		t.Error("reset should clear recorded samples")
	}
}

func TestSparklineWindow(t *testing.T) {
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i)
	}
	if got := SparklineChart(vals, 20); got == "" {
		t.Error("expected sparkline output")
	}
	if got := SparklineChart(nil, 5); got != "─────" {
		t.Errorf("expected placeholder, got %q", got)
	}
}

func TestCanvasTrajectory(t *testing.T) {
	c := NewCanvas(10, 4)
	c.Trajectory([]float64{0, 1, 2}, []float64{-1, 0, 1})
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > brailleBase && r <= brailleBase+0xff }) {
		t.Error("expected lit pixels")
	}
	c.Clear()
	c.Trajectory(nil, nil)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != brailleBase {
				t.Fatal("empty trajectory should draw nothing")
			}
		}
	}
}

func TestPickerStart(t *testing.T) {
	p := NewPicker(logrus.New())
	var m tea.Model = *p
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(Picker).state != stateConfig {
		t.Fatal("enter should open the parameter screen")
	}
	m, cmd := m.Update(key("s"))
	if m.(Picker).state != stateSim || cmd == nil {
		t.Fatalf("s should start the run, err=%v", m.(Picker).err)
	}
}

func TestThemeCycle(t *testing.T) {
	start := CurrentTheme.Name
	for range Themes {
		NextTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("expected to cycle back to %s, got %s", start, CurrentTheme.Name)
	}
}
