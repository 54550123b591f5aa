package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/FatCoding3/walton-machine/internal/ladder"
	"github.com/FatCoding3/walton-machine/internal/render"
)

const (
	sparkWidth  = 60
	sparkHeight = 6
	fastForward = 10
)

type TickMsg time.Time

// Model steps a ladder interactively and replays its history.
type Model struct {
	ladder   *ladder.Ladder
	stages   int
	voltage  float64
	layout   render.Layout
	interval time.Duration
	running  bool
	playHead int // -1 follows the latest step
	showHelp bool
}

func NewModel(l *ladder.Ladder, layout render.Layout, fps int) Model {
	if fps <= 0 {
		fps = 10
	}
	return Model{
		ladder:   l,
		stages:   l.Stages(),
		voltage:  l.Voltage(),
		layout:   layout,
		interval: time.Second / time.Duration(fps),
		playHead: -1,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the ladder.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.running = !m.running
		case " ", "n":
			m.playHead = -1
			m.ladder.AdvanceOne()
		case "f":
			m.playHead = -1
			m.ladder.Advance(fastForward)
		case "r":
			m.reset()
		case "[", "left", "h":
			m.scrub(-1)
		case "]", "right", "l":
			m.scrub(1)
		case "home", "g":
			m.running = false
			m.playHead = 0
		case "end", "G":
			m.playHead = -1
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.ladder.AdvanceOne()
			} else {
				m.playHead++
				if m.playHead >= m.ladder.Len() {
					m.playHead = -1
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// scrub moves the playback position; stepping past the end resumes
// following the latest step.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		m.playHead = m.ladder.Len() - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= m.ladder.Len() {
		m.playHead = -1
	}
}

// reset starts a fresh ladder with the same configuration.
func (m *Model) reset() {
	l, err := ladder.New(m.stages, m.voltage)
	if err != nil {
		return
	}
	m.ladder = l
	m.playHead = -1
}

// Step is the history index currently on screen.
func (m Model) Step() int {
	if m.playHead >= 0 {
		return m.playHead
	}
	return m.ladder.Len() - 1
}

func (m Model) Ladder() *ladder.Ladder { return m.ladder }

// View renders the TUI interface.
func (m Model) View() string {
	step := m.Step()
	s, err := m.ladder.Snapshot(step, false)
	if err != nil {
		return err.Error()
	}

	status := statusPaused.Render("PAUSED")
	switch {
	case m.running && m.playHead == -1:
		status = statusRunning.Render("RUNNING")
	case m.running:
		status = statusRunning.Render("REPLAYING")
	case m.playHead != -1:
		status = statusPaused.Render("REPLAY PAUSED")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("WALTON LADDER  %d stages @ %g V", m.stages, m.voltage)))
	b.WriteString("  " + status + "\n")
	b.WriteString(panelStyle.Render(strings.TrimRight(render.DiagramState(s, step, m.layout), "\n")))
	b.WriteString("\n")

	stats := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("step")+valueStyle.Render(fmt.Sprintf("%d / %d", step, m.ladder.Len()-1)),
		labelStyle.Render("sum")+valueStyle.Render(fmt.Sprintf("%.6g V", s.Sum())),
		labelStyle.Render("ceiling")+valueStyle.Render(fmt.Sprintf("%.6g V", m.ladder.Ceiling())),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stats, "   ", graphStyle.Render(m.sparkline(step))))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(helpStyle.Render("p: play/pause  space/n: step  f: +10 steps  [/]: scrub  g/G: first/latest  r: reset  q: quit"))
	} else {
		b.WriteString(helpStyle.Render("?: help  q: quit"))
	}
	return b.String()
}

// sparkline plots the sum voltage of up to sparkWidth steps ending at step.
func (m Model) sparkline(step int) string {
	from := step - sparkWidth + 1
	if from < 0 {
		from = 0
	}
	data := make([]float64, 0, step-from+1)
	for i := from; i <= step; i++ {
		v, err := m.ladder.SumVoltage(i)
		if err != nil {
			break
		}
		data = append(data, v)
	}
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(sparkHeight),
		asciigraph.Width(sparkWidth),
		asciigraph.Precision(2),
		asciigraph.Caption("sum voltage"),
	)
}
