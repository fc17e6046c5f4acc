package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-quest/internal/calendar"
	"github.com/vovakirdan/flappy-quest/internal/config"
	"github.com/vovakirdan/flappy-quest/internal/session"
	"github.com/vovakirdan/flappy-quest/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.Default()
	p, err := session.OpenProfile("test", storage.NewMemory(), cfg, session.ProfileOptions{
		Clock:  calendar.NewFixedClock(calendar.NewDate(2024, 3, 4), 12),
		Logger: log.New(io.Discard),
		Seed:   1,
	})
	if err != nil {
		t.Fatalf("OpenProfile() failed: %v", err)
	}
	return NewModel(p, Options{Config: cfg, Logger: log.New(io.Discard), Width: 80, Height: 24})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return nm, cmd
}

func TestModelStartsRoundFromHub(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame {
		t.Fatalf("view = %v, want game", m.view)
	}
	if cmd == nil {
		t.Error("starting a round should schedule a tick")
	}
	if m.ctrl.State() != session.StatePlaying {
		t.Errorf("state = %v, want playing", m.ctrl.State())
	}
	if !strings.Contains(m.View(), "GET READY") {
		t.Error("first frame should show the ready overlay")
	}
}

func TestModelDropsStaleTicks(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	gen := m.ctrl.Generation()

	_, cmd := update(t, m, TickMsg{Gen: gen + 7})
	if cmd != nil {
		t.Error("stale tick should not be rescheduled")
	}

	_, cmd = update(t, m, TickMsg{Gen: gen})
	if cmd == nil {
		t.Error("live tick should be rescheduled")
	}
}

func TestModelSettleNotice(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	s, ok := m.ctrl.Forfeit()
	if !ok {
		t.Fatal("Forfeit() should end the active round")
	}

	m, _ = update(t, m, SettleMsg{Game: s.Game})
	if !strings.Contains(m.notice, "+0 XP") {
		t.Errorf("notice = %q, want XP summary", m.notice)
	}
	if m.prog.Stats().TotalGames != 1 {
		t.Errorf("TotalGames = %d, want 1", m.prog.Stats().TotalGames)
	}

	// A second delivery of the same settlement is ignored
	m.notice = ""
	m, _ = update(t, m, SettleMsg{Game: s.Game})
	if m.notice != "" || m.prog.Stats().TotalGames != 1 {
		t.Error("duplicate settle must not apply twice")
	}
}

func TestModelCheckIn(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runes("c"))
	if !strings.Contains(m.notice, "Day 1 streak! +50 XP") {
		t.Errorf("notice = %q", m.notice)
	}
	if m.panel != panelTasks {
		t.Errorf("panel = %v, want tasks", m.panel)
	}

	m, _ = update(t, m, runes("c"))
	if !strings.Contains(m.notice, "Already checked in") {
		t.Errorf("second check-in notice = %q", m.notice)
	}
	if m.prog.Stats().XP != 50 {
		t.Errorf("XP = %d, want 50", m.prog.Stats().XP)
	}
}

func TestModelSetName(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, runes("n"))
	if m.panel != panelName {
		t.Fatalf("panel = %v, want name", m.panel)
	}

	// Hub shortcuts are typed into the field while it has focus
	m, _ = update(t, m, runes("qa"))
	if m.quitting {
		t.Fatal("typing q into the name field must not quit")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.prog.PlayerName(); got != "qa" {
		t.Errorf("PlayerName() = %q, want qa", got)
	}
	if m.panel != panelNone {
		t.Errorf("panel = %v, want none after saving", m.panel)
	}
}

func TestModelRejectsEmptyName(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, runes("n"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.panel != panelName {
		t.Error("empty name should keep the field open")
	}
	if m.prog.PlayerName() != "" {
		t.Errorf("PlayerName() = %q, want empty", m.prog.PlayerName())
	}
}

func TestModelAcceptInvite(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, runes("f"))
	m, _ = update(t, m, runes("abc123"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	friends := m.prog.Friends()
	if len(friends) != 1 {
		t.Fatalf("len(Friends()) = %d, want 1", len(friends))
	}
	if !strings.Contains(m.notice, "+200 XP") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestModelQuitClosesController(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, cmd := update(t, m, runes("q"))

	if !m.quitting || cmd == nil {
		t.Fatal("q should quit the program")
	}
	if m.ctrl.State() == session.StatePlaying {
		t.Error("quit should abandon the active round")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestHubViewPanels(t *testing.T) {
	m := newTestModel(t)

	if !strings.Contains(m.View(), "F L A P P Y") {
		t.Error("hub should show the title")
	}

	m, _ = update(t, m, runes("t"))
	if !strings.Contains(m.View(), "Weekly challenges") {
		t.Error("tasks panel missing")
	}

	m, _ = update(t, m, runes("l"))
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("empty leaderboard message missing")
	}

	m, _ = update(t, m, runes("s"))
	if !strings.Contains(m.View(), "Share") {
		t.Error("share panel missing")
	}
}
