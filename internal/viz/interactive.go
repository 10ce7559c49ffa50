package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/cloudparcel/internal/config"
	"github.com/san-kum/cloudparcel/internal/parcel"
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type param struct {
	name string
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var params = []param{
	{"updraft", func(c *config.Config) float64 { return c.Updraft }, func(c *config.Config, v float64) { c.Updraft = v }},
	{"cooling_rate", func(c *config.Config) float64 { return c.CoolingRate }, func(c *config.Config, v float64) { c.CoolingRate = v }},
	{"t0", func(c *config.Config) float64 { return c.T0 }, func(c *config.Config, v float64) { c.T0 = v }},
	{"rh0", func(c *config.Config) float64 { return c.RH0 }, func(c *config.Config, v float64) { c.RH0 = v }},
	{"dt", func(c *config.Config) float64 { return c.Dt }, func(c *config.Config, v float64) { c.Dt = v }},
	{"t_end", func(c *config.Config) float64 { return c.TEnd }, func(c *config.Config, v float64) { c.TEnd = v }},
	{"k_relax", func(c *config.Config) float64 { return c.Liquid.KRelax }, func(c *config.Config, v float64) { c.Liquid.KRelax = v }},
	{"k_ice", func(c *config.Config) float64 { return c.Ice.KIce }, func(c *config.Config, v float64) { c.Ice.KIce = v }},
}

// Picker lets the user choose a preset, tweak it and watch it run.
type Picker struct {
	state       int
	cursor      int
	presets     []string
	cfg         *config.Config
	paramCursor int
	editing     bool
	editBuf     string
	err         error
	log         logrus.FieldLogger
	live        Model
}

func NewPicker(log logrus.FieldLogger) *Picker {
	return &Picker{presets: config.ListPresets(), log: log}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.state == stateSim {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			p.state = stateConfig
			return p, nil
		}
		live, cmd := p.live.Update(msg)
		p.live = live.(Model)
		return p, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch p.state {
	case stateMenu:
		return p.menuKey(k)
	case stateConfig:
		return p.configKey(k)
	}
	return p, nil
}

func (p Picker) menuKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		p.cfg = config.GetPreset(p.presets[p.cursor])
		p.state, p.paramCursor, p.err = stateConfig, 0, nil
	}
	return p, nil
}

func (p Picker) configKey(msg tea.KeyMsg) (Picker, tea.Cmd) {
	if p.editing {
		switch msg.String() {
		case "enter":
			v, err := strconv.ParseFloat(p.editBuf, 64)
			if err != nil {
				p.err = fmt.Errorf("%s: %w", params[p.paramCursor].name, err)
			} else {
				params[p.paramCursor].set(p.cfg, v)
				p.err = nil
			}
			p.editing, p.editBuf = false, ""
		case "esc":
			p.editing, p.editBuf = false, ""
		case "backspace":
			if len(p.editBuf) > 0 {
				p.editBuf = p.editBuf[:len(p.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-e") {
				p.editBuf += s
			}
		}
		return p, nil
	}

	switch msg.String() {
	case "q", "esc":
		p.state = stateMenu
	case "up", "k":
		if p.paramCursor > 0 {
			p.paramCursor--
		}
	case "down", "j":
		if p.paramCursor < len(params)-1 {
			p.paramCursor++
		}
	case "enter", " ":
		p.editing = true
		p.editBuf = strconv.FormatFloat(params[p.paramCursor].get(p.cfg), 'g', -1, 64)
	case "i":
		p.cfg.Ice.Enabled = !p.cfg.Ice.Enabled
	case "s":
		return p.start()
	}
	return p, nil
}

func (p Picker) start() (Picker, tea.Cmd) {
	sc, err := p.cfg.ToScenario()
	if err != nil {
		p.err = err
		return p, nil
	}
	sim, err := parcel.New(sc, parcel.WithLogger(p.log))
	if err != nil {
		p.err = err
		return p, nil
	}
	p.live = NewModel(sim)
	p.state, p.err = stateSim, nil
	return p, p.live.Init()
}

func (p Picker) View() string {
	switch p.state {
	case stateConfig:
		return p.viewConfig()
	case stateSim:
		return p.live.View() + "\n" + hintStyle().Render("esc: back to parameters")
	}
	return p.viewMenu()
}

func (p Picker) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle().Render("PARCELSIM") + "\n  " + hintStyle().Render("cloud parcel microphysics") + "\n  " + Separator(27) + "\n\n")
	for i, name := range p.presets {
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				fg(CurrentTheme.Title).Bold(true).Render("▸"),
				fg(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-12s", name)),
				fg(CurrentTheme.Ice).Render(describe(name))))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n",
				fg(CurrentTheme.Muted).Render(fmt.Sprintf("%-12s", name)),
				fg(CurrentTheme.Muted).Render(describe(name))))
		}
	}
	b.WriteString("\n  " + hintStyle().Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (p Picker) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle().Render(strings.ToUpper(p.cfg.Name)) + "\n  " + hintStyle().Render(p.cfg.Description) + "\n  " + Separator(27) + "\n\n")
	for i, pr := range params {
		val := strconv.FormatFloat(pr.get(p.cfg), 'g', 6, 64)
		if p.editing && i == p.paramCursor {
			val = p.editBuf + "_"
		}
		if i == p.paramCursor {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				fg(CurrentTheme.Title).Bold(true).Render("▸"),
				fg(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-13s", pr.name)),
				fg(CurrentTheme.Ice).Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n",
				fg(CurrentTheme.Muted).Render(fmt.Sprintf("%-13s", pr.name)),
				fg(CurrentTheme.Muted).Render(val)))
		}
	}
	b.WriteString("\n  " + Flag(p.cfg.Ice.Enabled, "ice physics", CurrentTheme.Ice) + "\n")
	if p.err != nil {
		b.WriteString("\n  " + fg(CurrentTheme.Alert).Render(p.err.Error()) + "\n")
	}
	b.WriteString("\n  " + hintStyle().Render("j/k select  enter edit  i ice  s start  esc back") + "\n")
	return b.String()
}

func describe(preset string) string {
	if cfg, ok := config.Presets[preset]; ok {
		return cfg.Description
	}
	return ""
}

// RunInteractive opens the preset picker.
func RunInteractive(log logrus.FieldLogger) error {
	_, err := tea.NewProgram(NewPicker(log), tea.WithAltScreen()).Run()
	return err
}

// RunLive runs one simulator in the live view.
func RunLive(sim *parcel.Simulator) error {
	_, err := tea.NewProgram(NewModel(sim), tea.WithAltScreen()).Run()
	return err
}
