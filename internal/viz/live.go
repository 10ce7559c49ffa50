package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cloudparcel/internal/metrics"
	"github.com/san-kum/cloudparcel/internal/parcel"
)

const (
	canvasWidth     = 40
	canvasHeight    = 10
	historyCapacity = 600
	frameRate       = time.Second / 30
	maxStepsPerTick = 64
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model steps a parcel a few samples per frame and renders its state.
type Model struct {
	sim          *parcel.Simulator
	stepper      *parcel.Stepper
	last         parcel.Sample
	populations  []string
	sHist        []float64
	tHist        []float64
	qiHist       []float64
	samples      []parcel.Sample
	peakS        float64
	peakTime     float64
	stepsPerTick int
	running      bool
	done         bool
	err          error
	canvas       *Canvas
	showHelp     bool
	width        int
}

func NewModel(sim *parcel.Simulator) Model {
	m := Model{
		sim:          sim,
		stepsPerTick: 4,
		running:      true,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		width:        80,
	}
	m.reset()
	return m
}

func (m *Model) reset() {
	m.stepper = m.sim.Stepper()
	m.populations = m.populations[:0]
	for _, p := range m.stepper.Populations() {
		m.populations = append(m.populations, p.Name)
	}
	m.last = parcel.Sample{}
	m.sHist = make([]float64, 0, historyCapacity)
	m.tHist = make([]float64, 0, historyCapacity)
	m.qiHist = make([]float64, 0, historyCapacity)
	m.samples = make([]parcel.Sample, 0, m.sim.Scenario().Steps())
	m.peakS, m.peakTime = 0, 0
	m.done, m.err = false, nil
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		if m.running && !m.done {
			m.advance(m.stepsPerTick)
		}
		return m, tick()
	}
	return m, nil
}

// advance records up to n samples.
func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		sample, err := m.stepper.Next()
		if errors.Is(err, parcel.ErrHorizonReached) {
			m.done = true
			return
		}
		if err != nil {
			m.err, m.done = err, true
			return
		}

		if len(m.samples) == 0 || sample.S > m.peakS {
			m.peakS, m.peakTime = sample.S, sample.Time
		}
		m.last = sample
		m.samples = append(m.samples, sample)
		m.sHist = appendCapped(m.sHist, sample.S)
		m.tHist = appendCapped(m.tHist, sample.T)
		m.qiHist = appendCapped(m.qiHist, sample.Qi)

		if m.stepper.Done() {
			m.done = true
			return
		}
	}
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// Result assembles what has been recorded so far.
func (m Model) Result() *parcel.Result {
	r := &parcel.Result{
		Scenario:    m.sim.Scenario().Name,
		Populations: append([]string(nil), m.populations...),
		Samples:     m.samples,
		PeakS:       m.peakS,
		PeakTime:    m.peakTime,
		IceOnset:    m.stepper.Onset(),
		Final:       m.stepper.Populations(),
	}
	for _, s := range m.samples {
		if s.Clamped {
			r.ClampCount++
		}
	}
	return r
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return fg(CurrentTheme.Alert).Bold(true).Render("ERROR " + m.err.Error())
	case m.done:
		return fg(CurrentTheme.Liquid).Bold(true).Render("COMPLETE")
	case !m.running:
		return fg(CurrentTheme.Warn).Bold(true).Render("PAUSED")
	default:
		return fg(CurrentTheme.Liquid).Bold(true).Render(fmt.Sprintf("RUNNING x%d", m.stepsPerTick))
	}
}

func (m Model) View() string {
	sc := m.sim.Scenario()

	var left strings.Builder
	left.WriteString(titleStyle().Render(strings.ToUpper(sc.Name)) + "  " + m.status() + "\n")
	left.WriteString(ProgressBar(m.stepper.Progress(), canvasWidth) + "\n\n")

	if len(m.sHist) > 1 {
		chart := asciigraph.Plot(m.sHist,
			asciigraph.Height(6),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption("supersaturation"))
		left.WriteString(fg(CurrentTheme.Liquid).Render(chart) + "\n\n")
	}

	m.canvas.Clear()
	m.canvas.Trajectory(m.tHist, m.sHist)
	left.WriteString(hintStyle().Render("S vs T") + "\n")
	left.WriteString(fg(CurrentTheme.Ice).Render(m.canvas.String()))

	var right strings.Builder
	row := func(label, value string) {
		right.WriteString(labelStyle().Render(label) + valueStyle().Render(value) + "\n")
	}
	row("time", fmt.Sprintf("%.0f / %.0f s", m.last.Time, sc.TEnd))
	row("T", fmt.Sprintf("%.3f K", m.last.T))
	row("S", fmt.Sprintf("% .3e", m.last.S))
	row("e", fmt.Sprintf("%.2f Pa", m.last.E))
	row("qi", fmt.Sprintf("%.3e", m.last.Qi))
	row("peak S", fmt.Sprintf("% .3e @ %.0f s", m.peakS, m.peakTime))
	right.WriteString("\n")

	for i, name := range m.populations {
		on := i < len(m.last.Activated) && m.last.Activated[i]
		right.WriteString(Flag(on, name, CurrentTheme.Liquid) + "\n")
	}
	right.WriteString(Flag(m.last.IceActive, "ice active", CurrentTheme.Ice) + "\n")
	if onset := m.stepper.Onset(); onset != nil {
		right.WriteString(hintStyle().Render(fmt.Sprintf("  onset %.0f s, %.2f K", onset.Time, onset.Temperature)) + "\n")
	}
	right.WriteString("\n" + SparklineChart(m.qiHist, 30) + "\n")

	if m.done {
		c := metrics.Classify(m.Result())
		color := CurrentTheme.Liquid
		if !c.Stable() {
			color = CurrentTheme.Alert
		}
		right.WriteString("\n" + fg(color).Bold(true).Render(c.String()) + "\n")
	}
	right.WriteString("\n" + Separator(30) + "\n")
	right.WriteString(hintStyle().Render("SP:Pause R:Restart Q:Quit\n+/-:Speed T:Theme ?:Help"))

	view := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), "  ", panelStyle.Render(right.String()))
	if m.showHelp {
		return panelStyle.Render(helpText) + "\n" + view
	}
	return view
}

const helpText = `Space   pause/resume
R       restart the parcel
+ / -   steps per frame
T       cycle theme
?       toggle this help
Q       quit`
