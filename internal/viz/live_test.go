package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FatCoding3/walton-machine/internal/ladder"
	"github.com/FatCoding3/walton-machine/internal/render"
)

func newModel(t *testing.T) Model {
	t.Helper()
	l, err := ladder.New(2, 1.0)
	if err != nil {
		t.Fatalf("new ladder failed: %v", err)
	}
	return NewModel(l, render.DefaultLayout(), 30)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelStepKeys(t *testing.T) {
	m := newModel(t)

	m = update(m, key("n"))
	m = update(m, key(" "))
	if m.Ladder().Len() != 3 {
		t.Errorf("expected 3 snapshots after two steps, got %d", m.Ladder().Len())
	}

	m = update(m, key("f"))
	if m.Ladder().Len() != 3+fastForward {
		t.Errorf("expected %d snapshots after f, got %d", 3+fastForward, m.Ladder().Len())
	}
	if m.Step() != fastForward+2 {
		t.Errorf("expected view on latest step, got %d", m.Step())
	}
}

func TestModelTickAdvancesWhenRunning(t *testing.T) {
	m := newModel(t)

	m = update(m, TickMsg(time.Now()))
	if m.Ladder().Len() != 1 {
		t.Error("paused model should not advance on tick")
	}

	m = update(m, key("p"))
	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	if m.Ladder().Len() != 3 {
		t.Errorf("expected 3 snapshots, got %d", m.Ladder().Len())
	}
}

func TestModelScrub(t *testing.T) {
	m := newModel(t)
	m = update(m, key("f"))

	m = update(m, key("left"))
	if m.Step() != fastForward-1 {
		t.Errorf("expected step %d, got %d", fastForward-1, m.Step())
	}

	m = update(m, key("g"))
	m = update(m, key("["))
	if m.Step() != 0 {
		t.Errorf("scrub should stop at step 0, got %d", m.Step())
	}

	for i := 0; i <= fastForward; i++ {
		m = update(m, key("]"))
	}
	if m.playHead != -1 {
		t.Errorf("expected to follow latest after scrubbing past the end, got %d", m.playHead)
	}
	if m.Ladder().Len() != fastForward+1 {
		t.Error("scrubbing must not advance the ladder")
	}
}

func TestModelReset(t *testing.T) {
	m := newModel(t)
	m = update(m, key("f"))
	m = update(m, key("r"))

	if m.Ladder().Len() != 1 {
		t.Errorf("expected fresh ladder after reset, got len %d", m.Ladder().Len())
	}
	if m.Ladder().Stages() != 2 || m.Ladder().Voltage() != 1.0 {
		t.Error("reset changed the ladder configuration")
	}
}

func TestModelView(t *testing.T) {
	m := newModel(t)
	m = update(m, key("f"))

	out := m.View()
	for _, want := range []string{"WALTON LADDER", "System in step 10", "ceiling", "sum voltage"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestModelQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
